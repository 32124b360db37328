package cmd

import (
	"os"

	"github.com/IronJam11/injective-hack/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg       config.Config
	fEnvFile  string
	fLogLevel string
	fPretty   bool
)

var rootCmd = &cobra.Command{
	Use:           "r1cs-prover",
	Short:         "generate and verify checksum proofs over rank-1 constraint systems",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(fEnvFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = fLogLevel
		}
		if cmd.Flags().Changed("pretty") {
			cfg.LogPretty = fPretty
		}
		return config.SetupLogger(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fEnvFile, "env", ".env", "env file with R1CS_* settings")
	rootCmd.PersistentFlags().StringVar(&fLogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&fPretty, "pretty", false, "human readable log output")
}
