package proof

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/rlp"
)

// The binary form is an RLP list [[w0, w1, ...], commitment]. Every integer is a length
// prefixed big-endian byte string, so values of any size round trip.
type encodedProof struct {
	Witness    []*big.Int
	Commitment *big.Int
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	enc := encodedProof{
		Witness:    make([]*big.Int, len(p.Witness)),
		Commitment: intOrZero(p.Commitment),
	}
	for i, w := range p.Witness {
		enc.Witness[i] = intOrZero(w)
	}
	data, err := rlp.EncodeToBytes(&enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode proof: %w", err)
	}
	return data, nil
}

func (p *Proof) UnmarshalBinary(data []byte) error {
	var enc encodedProof
	if err := rlp.DecodeBytes(data, &enc); err != nil {
		return fmt.Errorf("failed to decode proof: %w", err)
	}
	p.Witness = enc.Witness
	if p.Witness == nil {
		p.Witness = []*big.Int{}
	}
	p.Commitment = intOrZero(enc.Commitment)
	return nil
}

// Decode parses the binary form produced by MarshalBinary.
func Decode(data []byte) (*Proof, error) {
	p := new(Proof)
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveToBinary writes the binary form to filename, truncating any existing content. File system
// errors are returned as is.
func (p *Proof) SaveToBinary(filename string) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadFromBinary reads a proof written by SaveToBinary.
func LoadFromBinary(filename string) (*Proof, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
