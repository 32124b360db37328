package verifier

import (
	"bytes"
	"fmt"
	"math/big"
	"time"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/types"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	plonk_bn254 "github.com/consensys/gnark/backend/plonk/bn254"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
)

const fpSize = 4 * 8

// FullWitness is the gnark witness for the live bindings of cs.
func FullWitness(cs *circuit.R1CS) (witness.Witness, error) {
	w, err := frontend.NewWitness(Assign(cs), ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to generate witness: %w", err)
	}
	return w, nil
}

// PublicWitness holds only the values of the public variables of cs.
func PublicWitness(cs *circuit.R1CS) (witness.Witness, error) {
	w, err := frontend.NewWitness(Assign(cs), ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to generate public witness: %w", err)
	}
	return w, nil
}

// PublicInputs lists the public variable values of cs as decimal strings.
func PublicInputs(cs *circuit.R1CS) []string {
	inputs := []string{}
	for _, v := range cs.Variables() {
		if v.Public {
			inputs = append(inputs, v.Value.String())
		}
	}
	return inputs
}

func ProveGroth16(ccs constraint.ConstraintSystem, pk groth16.ProvingKey, cs *circuit.R1CS) (groth16.Proof, error) {
	log := logger.Logger()
	w, err := FullWitness(cs)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	proof, err := groth16.Prove(ccs, pk, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create proof: %w", err)
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully created proof, time: " + elapsed.String())
	return proof, nil
}

// VerifyGroth16 checks proof against the public variables currently bound in cs.
func VerifyGroth16(proof groth16.Proof, vk groth16.VerifyingKey, cs *circuit.R1CS) error {
	publicWitness, err := PublicWitness(cs)
	if err != nil {
		return err
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return fmt.Errorf("failed to verify proof: %w", err)
	}
	return nil
}

func ProvePlonk(ccs constraint.ConstraintSystem, pk plonk.ProvingKey, cs *circuit.R1CS) (plonk.Proof, error) {
	log := logger.Logger()
	w, err := FullWitness(cs)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	proof, err := plonk.Prove(ccs, pk, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create proof: %w", err)
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully created proof, time: " + elapsed.String())
	return proof, nil
}

func VerifyPlonk(proof plonk.Proof, vk plonk.VerifyingKey, cs *circuit.R1CS) error {
	publicWitness, err := PublicWitness(cs)
	if err != nil {
		return err
	}
	if err := plonk.Verify(proof, vk, publicWitness); err != nil {
		return fmt.Errorf("failed to verify proof: %w", err)
	}
	return nil
}

// SerializeGroth16Proof splits the raw encoding of proof into the coordinates of A, B and C, in
// the order WriteRawTo emits them.
func SerializeGroth16Proof(proof groth16.Proof, cs *circuit.R1CS) (*types.Groth16Proof, error) {
	buf := new(bytes.Buffer)
	if _, err := proof.WriteRawTo(buf); err != nil {
		return nil, fmt.Errorf("failed to encode proof: %w", err)
	}
	proofBytes := buf.Bytes()
	if len(proofBytes) < 8*fpSize {
		return nil, fmt.Errorf("proof encoding too short: %d bytes", len(proofBytes))
	}

	var coords [8]*big.Int
	for i := 0; i < 8; i++ {
		coords[i] = new(big.Int).SetBytes(proofBytes[i*fpSize : (i+1)*fpSize])
	}
	return &types.Groth16Proof{
		A:      [2]*big.Int{coords[0], coords[1]},
		B:      [2][2]*big.Int{{coords[2], coords[3]}, {coords[4], coords[5]}},
		C:      [2]*big.Int{coords[6], coords[7]},
		Inputs: PublicInputs(cs),
		Raw:    proofBytes,
	}, nil
}

// SerializePlonkProof returns the Solidity calldata encoding of a BN254 plonk proof.
func SerializePlonkProof(proof plonk.Proof, cs *circuit.R1CS) (*types.PlonkProof, error) {
	_proof, ok := proof.(*plonk_bn254.Proof)
	if !ok {
		return nil, fmt.Errorf("unexpected plonk proof type %T", proof)
	}
	return &types.PlonkProof{
		Proof:  _proof.MarshalSolidity(),
		Inputs: PublicInputs(cs),
	}, nil
}
