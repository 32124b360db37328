package cmd

import (
	"github.com/IronJam11/injective-hack/verifier"
	"github.com/spf13/cobra"
)

var fCompileSystem string

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "compile build circuit data(pk, vk, solidity contract) for a circuit description",
	RunE:  compile,
}

func compile(cmd *cobra.Command, args []string) error {
	cs, _, err := loadBoundCircuit(fCircuit, "")
	if err != nil {
		return err
	}
	return verifier.CompileCircuit(cs, fCompileSystem, buildDir())
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVar(&fCircuit, "circuit", "", "circuit description (json)")
	compileCmd.Flags().StringVar(&fCompileSystem, "system", verifier.Groth16, "proof system (groth16 or plonk)")
	compileCmd.Flags().StringVar(&fBuildDir, "build", "", "output directory, defaults to R1CS_BUILD_DIR")
	compileCmd.MarkFlagRequired("circuit")
}
