package cmd

import (
	"errors"
	"strings"

	"github.com/IronJam11/injective-hack/proof"
	"github.com/IronJam11/injective-hack/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errInvalidProof = errors.New("proof is invalid")

var fProofIn string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verifies a checksum proof against a circuit",
	Long: "verifies a checksum proof against a circuit. The circuit is bound to the proof's own " +
		"witness unless --witness names another assignment.",
	RunE: verify,
}

func verify(cmd *cobra.Command, args []string) error {
	cs, w, err := loadBoundCircuit(fCircuit, fWitness)
	if err != nil {
		return err
	}
	p, err := loadProof(fProofIn)
	if err != nil {
		return err
	}
	if w == nil {
		if err := cs.BindBigInts(p.Witness); err != nil {
			return err
		}
	}

	if err := proof.NewEngine().Check(p, cs); err != nil {
		log.Error().Err(err).Msg("proof rejected")
		return errInvalidProof
	}
	log.Info().Msg("Proof is valid")
	return nil
}

// loadProof reads a json proof for .json files and the binary form otherwise.
func loadProof(path string) (*proof.Proof, error) {
	if strings.HasSuffix(path, ".json") {
		raw, err := types.ReadProof(path)
		if err != nil {
			return nil, err
		}
		return raw.ToProof()
	}
	return proof.LoadFromBinary(path)
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fCircuit, "circuit", "", "circuit description (json)")
	verifyCmd.Flags().StringVar(&fWitness, "witness", "", "witness to bind instead of the proof's")
	verifyCmd.Flags().StringVar(&fProofIn, "proof", "proof.bin", "binary proof, or a json proof when the name ends in .json")
	verifyCmd.MarkFlagRequired("circuit")
}
