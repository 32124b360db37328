package verifier

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/test"
)

// Proof systems understood by Compile and CompileCircuit.
const (
	Groth16 = "groth16"
	Plonk   = "plonk"
)

// Compile builds the gnark constraint system for cs over BN254: an R1CS for groth16, a sparse
// R1CS for plonk.
func Compile(cs *circuit.R1CS, system string) (constraint.ConstraintSystem, error) {
	var builder frontend.NewBuilder
	switch system {
	case Groth16:
		builder = r1cs.NewBuilder
	case Plonk:
		builder = scs.NewBuilder
	default:
		return nil, fmt.Errorf("unknown proof system %q", system)
	}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), builder, NewCircuit(cs))
	if err != nil {
		return nil, fmt.Errorf("failed to compile circuit: %w", err)
	}
	return ccs, nil
}

// CompileCircuit compiles cs, runs the setup for system and saves constraints, keys and the
// Solidity verifier under path.
func CompileCircuit(cs *circuit.R1CS, system string, path string) error {
	log := logger.Logger()
	ccs, err := Compile(cs, system)
	if err != nil {
		return err
	}
	log.Info().Int("constraints", ccs.GetNbConstraints()).Msg("Running circuit setup")
	start := time.Now()
	switch system {
	case Plonk:
		srs, err := test.NewKZGSRS(ccs)
		if err != nil {
			return fmt.Errorf("failed to create srs: %w", err)
		}
		pk, vk, err := plonk.Setup(ccs, srs)
		if err != nil {
			return err
		}
		if err := SaveVerifierCircuitPlonk(path, ccs, pk, vk); err != nil {
			return fmt.Errorf("failed to save circuit: %w", err)
		}
	case Groth16:
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			return err
		}
		if err := SaveVerifierCircuitGroth(path, ccs, pk, vk); err != nil {
			return fmt.Errorf("failed to save circuit: %w", err)
		}
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully ran circuit setup, time: " + elapsed.String())
	return nil
}

func writeTo(path string, what string, w io.WriterTo) error {
	log := logger.Logger()
	log.Info().Msg("Saving " + what + " to " + path)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer file.Close()
	start := time.Now()
	if _, err := w.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", what, err)
	}
	elapsed := time.Since(start)
	log.Debug().Msg("Successfully saved " + what + ", time: " + elapsed.String())
	return nil
}

type rawWriter interface {
	WriteRawTo(w io.Writer) (int64, error)
}

type rawWriterTo struct{ rawWriter }

func (r rawWriterTo) WriteTo(w io.Writer) (int64, error) { return r.WriteRawTo(w) }

func SaveVerifierCircuitPlonk(path string, ccs constraint.ConstraintSystem, pk plonk.ProvingKey, vk plonk.VerifyingKey) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	if err := writeTo(path+"/r1cs.bin", "circuit constraints", ccs); err != nil {
		return err
	}
	if err := writeTo(path+"/pk.bin", "proving key", rawWriterTo{pk}); err != nil {
		return err
	}
	if err := writeTo(path+"/vk.bin", "verifying key", rawWriterTo{vk}); err != nil {
		return err
	}
	if err := ExportPlonkVerifierSolidity(path, vk); err != nil {
		return fmt.Errorf("failed to create solidity file: %w", err)
	}
	return nil
}

func SaveVerifierCircuitGroth(path string, ccs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	if err := writeTo(path+"/r1cs.bin", "circuit constraints", ccs); err != nil {
		return err
	}
	if err := writeTo(path+"/pk.bin", "proving key", rawWriterTo{pk}); err != nil {
		return err
	}
	if err := writeTo(path+"/vk.bin", "verifying key", rawWriterTo{vk}); err != nil {
		return err
	}
	if err := ExportGrothVerifierSolidity(path, vk); err != nil {
		return fmt.Errorf("failed to create solidity file: %w", err)
	}
	return nil
}

type solidityExporter interface {
	ExportSolidity(w io.Writer) error
}

func exportSolidity(file string, vk solidityExporter) error {
	log := logger.Logger()
	start := time.Now()
	// Export the VerifyingKey into a buffer first so a failed export leaves no partial file.
	buf := new(bytes.Buffer)
	if err := vk.ExportSolidity(buf); err != nil {
		log.Err(err).Msg("failed to export verifying key to solidity")
		return err
	}

	contractFile, err := os.Create(file)
	if err != nil {
		return err
	}
	defer contractFile.Close()
	w := bufio.NewWriter(contractFile)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Info().Msg("Successfully saved solidity file, time: " + elapsed.String())
	return nil
}

func ExportPlonkVerifierSolidity(path string, vk plonk.VerifyingKey) error {
	return exportSolidity(path+"/PlonkVerifier.sol", vk)
}

func ExportGrothVerifierSolidity(path string, vk groth16.VerifyingKey) error {
	return exportSolidity(path+"/GrothVerifier.sol", vk)
}

func readFrom(path string, what string, r io.ReaderFrom) error {
	log := logger.Logger()
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", what, err)
	}
	defer file.Close()
	start := time.Now()
	if _, err := r.ReadFrom(bufio.NewReader(file)); err != nil {
		return fmt.Errorf("failed to read %s file: %w", what, err)
	}
	elapsed := time.Since(start)
	log.Debug().Msg("Successfully loaded " + what + ", time: " + elapsed.String())
	return nil
}

func LoadPlonkVerifierKey(path string) (plonk.VerifyingKey, error) {
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if err := readFrom(path+"/vk.bin", "verifying key", vk); err != nil {
		return nil, err
	}
	return vk, nil
}

func LoadPlonkProverData(path string) (constraint.ConstraintSystem, plonk.ProvingKey, error) {
	ccs := plonk.NewCS(ecc.BN254)
	if err := readFrom(path+"/r1cs.bin", "constraint system", ccs); err != nil {
		return nil, nil, err
	}
	pk := plonk.NewProvingKey(ecc.BN254)
	if err := readFrom(path+"/pk.bin", "proving key", pk); err != nil {
		return nil, nil, err
	}
	return ccs, pk, nil
}

func LoadGroth16VerifierKey(path string) (groth16.VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := readFrom(path+"/vk.bin", "verifying key", vk); err != nil {
		return nil, err
	}
	return vk, nil
}

func LoadGroth16ProverData(path string) (constraint.ConstraintSystem, groth16.ProvingKey, error) {
	ccs := groth16.NewCS(ecc.BN254)
	if err := readFrom(path+"/r1cs.bin", "constraint system", ccs); err != nil {
		return nil, nil, err
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	if err := readFrom(path+"/pk.bin", "proving key", pk); err != nil {
		return nil, nil, err
	}
	return ccs, pk, nil
}
