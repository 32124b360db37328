package cmd

import (
	"fmt"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/proof"
	"github.com/IronJam11/injective-hack/types"
	"github.com/IronJam11/injective-hack/verifier"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const systemChecksum = "checksum"

var (
	fCircuit  string
	fWitness  string
	fProofOut string
	fJSONOut  string
	fSystem   string
	fBuildDir string
)

// proveCmd represents the proof command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "generates a proof for a circuit and witness, writing the binary proof and an optional json file",
	RunE:  prove,
}

// loadBoundCircuit reads the circuit description and binds the witness file to it.
func loadBoundCircuit(circuitFile, witnessFile string) (*circuit.R1CS, circuit.Witness, error) {
	raw, err := types.ReadCircuit(circuitFile)
	if err != nil {
		return nil, nil, err
	}
	cs, err := types.DeserializeCircuit(raw)
	if err != nil {
		return nil, nil, err
	}
	if witnessFile == "" {
		return cs, nil, nil
	}
	wRaw, err := types.ReadWitness(witnessFile)
	if err != nil {
		return nil, nil, err
	}
	w, err := types.DeserializeWitness(wRaw)
	if err != nil {
		return nil, nil, err
	}
	if err := cs.Bind(w); err != nil {
		return nil, nil, err
	}
	return cs, w, nil
}

func buildDir() string {
	if fBuildDir != "" {
		return fBuildDir
	}
	return cfg.BuildDir
}

func prove(cmd *cobra.Command, args []string) error {
	cs, w, err := loadBoundCircuit(fCircuit, fWitness)
	if err != nil {
		return err
	}

	switch fSystem {
	case systemChecksum:
		p := proof.GenerateProof(cs, w)
		if err := proof.NewEngine().Check(p, cs); err != nil {
			log.Warn().Err(err).Msg("witness does not satisfy the circuit, the proof will not verify")
		}
		log.Info().Msg("Saving proof to " + fProofOut)
		if err := p.SaveToBinary(fProofOut); err != nil {
			return err
		}
		if fJSONOut != "" {
			if err := types.FromProof(p).Export(fJSONOut); err != nil {
				return err
			}
		}
		log.Info().Str("commitment", p.Commitment.String()).Msg("Successfully saved proof")
	case verifier.Groth16:
		ccs, pk, err := verifier.LoadGroth16ProverData(buildDir())
		if err != nil {
			return err
		}
		p, err := verifier.ProveGroth16(ccs, pk, cs)
		if err != nil {
			return err
		}
		serialized, err := verifier.SerializeGroth16Proof(p, cs)
		if err != nil {
			return err
		}
		log.Info().Msg("Saving proof to " + jsonOut())
		return serialized.Export(jsonOut())
	case verifier.Plonk:
		ccs, pk, err := verifier.LoadPlonkProverData(buildDir())
		if err != nil {
			return err
		}
		p, err := verifier.ProvePlonk(ccs, pk, cs)
		if err != nil {
			return err
		}
		serialized, err := verifier.SerializePlonkProof(p, cs)
		if err != nil {
			return err
		}
		log.Printf("Proof len: %d", len(serialized.Proof))
		log.Info().Msg("Saving proof to " + jsonOut())
		return serialized.Export(jsonOut())
	default:
		return fmt.Errorf("unknown proof system %q", fSystem)
	}
	return nil
}

func jsonOut() string {
	if fJSONOut != "" {
		return fJSONOut
	}
	return "proof_with_witness.json"
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&fCircuit, "circuit", "", "circuit description (json)")
	proveCmd.Flags().StringVar(&fWitness, "witness", "", "witness values (json)")
	proveCmd.Flags().StringVar(&fProofOut, "out", "proof.bin", "binary proof output")
	proveCmd.Flags().StringVar(&fJSONOut, "json", "", "json proof output")
	proveCmd.Flags().StringVar(&fSystem, "system", systemChecksum, "proof system (checksum, groth16 or plonk)")
	proveCmd.Flags().StringVar(&fBuildDir, "build", "", "directory with compiled circuit data, defaults to R1CS_BUILD_DIR")
	proveCmd.MarkFlagRequired("circuit")
	proveCmd.MarkFlagRequired("witness")
}
