package cmd

import (
	"errors"
	"os"

	"github.com/IronJam11/injective-hack/eligibility"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNotEligible = errors.New("not eligible")

var (
	fStats       eligibility.Stats
	fAmount      uint64
	fEligibility string
)

var eligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "scores lending statistics and checks eligibility proofs",
}

var eligibilityScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "computes the eligibility score and writes its binary proof",
	RunE: func(cmd *cobra.Command, args []string) error {
		score, data, err := eligibility.NewWeightedPipeline(nil).Evaluate(fStats)
		if err != nil {
			return err
		}
		if err := os.WriteFile(fEligibility, data, 0644); err != nil {
			return err
		}
		log.Info().Str("score", score.String()).Str("proof", fEligibility).Msg("Successfully scored")
		return nil
	},
}

var eligibilityCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "checks that a proof shows the statistics are eligible for an amount",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(fEligibility)
		if err != nil {
			return err
		}
		ok, err := eligibility.NewWeightedPipeline(nil).Check(fStats, fAmount, data)
		if err != nil {
			return err
		}
		if !ok {
			return errNotEligible
		}
		log.Info().Uint64("amount", fAmount).Msg("Eligible")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{eligibilityScoreCmd, eligibilityCheckCmd} {
		f := c.Flags()
		f.Uint64Var(&fStats.ReputationScore, "reputation", 0, "reputation score")
		f.Uint64Var(&fStats.CarbonCredits, "carbon-credits", 0, "carbon credits")
		f.Uint64Var(&fStats.Debt, "debt", 0, "outstanding debt")
		f.Uint64Var(&fStats.TimesBorrowed, "times-borrowed", 0, "number of loans taken")
		f.Uint64Var(&fStats.TotalBorrowed, "total-borrowed", 0, "total amount borrowed")
		f.Uint64Var(&fStats.TotalReturned, "total-returned", 0, "total amount returned")
		f.Uint64Var(&fStats.Emissions, "emissions", 0, "reported emissions")
		f.StringVar(&fEligibility, "proof", "eligibility.bin", "binary eligibility proof")
	}
	eligibilityCheckCmd.Flags().Uint64Var(&fAmount, "amount", 0, "requested amount")
	eligibilityCmd.AddCommand(eligibilityScoreCmd, eligibilityCheckCmd)
	rootCmd.AddCommand(eligibilityCmd)
}
