package cmd

import (
	"github.com/IronJam11/injective-hack/api"
	"github.com/IronJam11/injective-hack/proof"
	"github.com/IronJam11/injective-hack/proofstore"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var fListenAddr string

var webApiCmd = &cobra.Command{
	Use:   "web-api",
	Short: "runs a web server for proof generation and verification, storing generated proofs",
	RunE:  runApi,
}

func runApi(cmd *cobra.Command, args []string) error {
	addr := cfg.ListenAddr
	if fListenAddr != "" {
		addr = fListenAddr
	}
	store, err := proofstore.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewServer(proof.NewEngine(), store).Router()
	log.Info().Str("addr", addr).Msg("Starting web api")
	return router.Run(addr)
}

func init() {
	rootCmd.AddCommand(webApiCmd)
	webApiCmd.Flags().StringVar(&fListenAddr, "addr", "", "listen address, defaults to R1CS_LISTEN_ADDR")
}
