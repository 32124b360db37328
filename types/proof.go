package types

import (
	"fmt"
	"math/big"

	"github.com/IronJam11/injective-hack/proof"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ProofRaw is the JSON form of a checksum proof. Integers are decimal strings.
type ProofRaw struct {
	Witness    []string `json:"witness"`
	Commitment string   `json:"commitment"`
}

func FromProof(p *proof.Proof) ProofRaw {
	raw := ProofRaw{Witness: make([]string, len(p.Witness))}
	for i, w := range p.Witness {
		raw.Witness[i] = w.String()
	}
	if p.Commitment != nil {
		raw.Commitment = p.Commitment.String()
	} else {
		raw.Commitment = "0"
	}
	return raw
}

func parseNonNegative(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	if x.Sign() < 0 {
		return nil, fmt.Errorf("negative integer %q", s)
	}
	return x, nil
}

// ToProof parses the integers. Negative values are rejected since the binary form cannot carry
// them.
func (r ProofRaw) ToProof() (*proof.Proof, error) {
	p := &proof.Proof{Witness: make([]*big.Int, len(r.Witness))}
	for i, s := range r.Witness {
		x, err := parseNonNegative(s)
		if err != nil {
			return nil, fmt.Errorf("witness %d: %w", i, err)
		}
		p.Witness[i] = x
	}
	c, err := parseNonNegative(r.Commitment)
	if err != nil {
		return nil, fmt.Errorf("commitment: %w", err)
	}
	p.Commitment = c
	return p, nil
}

func (r ProofRaw) Export(file string) error {
	return writeJSON(file, r)
}

func ReadProof(path string) (ProofRaw, error) {
	var raw ProofRaw
	err := readJSON(path, &raw)
	return raw, err
}

// Groth16Proof is the calldata friendly form of a gnark groth16 proof: the eight base field
// coordinates of A, B and C as decimal strings, plus the public inputs.
type Groth16Proof struct {
	A      [2]*big.Int    `json:"a"`
	B      [2][2]*big.Int `json:"b"`
	C      [2]*big.Int    `json:"c"`
	Inputs []string       `json:"inputs"`
	Raw    hexutil.Bytes  `json:"raw,omitempty"`
}

func (g *Groth16Proof) Export(file string) error {
	return writeJSON(file, g)
}

type PlonkProof struct {
	Proof  hexutil.Bytes `json:"proof"`
	Inputs []string      `json:"inputs"`
}

func (g *PlonkProof) Export(file string) error {
	return writeJSON(file, g)
}
