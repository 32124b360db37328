package cmd

import (
	"path/filepath"
	"testing"

	"github.com/IronJam11/injective-hack/proof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestProveAndVerify(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "proof.bin")
	jsonOut := filepath.Join(dir, "proof.json")
	require.NoError(t, run("prove",
		"--circuit", "../testdata/add_mul_circuit.json",
		"--witness", "../testdata/add_mul_witness.json",
		"--out", out, "--json", jsonOut))

	p, err := proof.LoadFromBinary(out)
	require.NoError(t, err)
	assert.Equal(t, "26", p.Commitment.String())

	require.NoError(t, run("verify", "--circuit", "../testdata/add_mul_circuit.json", "--proof", out, "--witness", ""))
	require.NoError(t, run("verify", "--circuit", "../testdata/add_mul_circuit.json", "--proof", jsonOut))
	err = run("verify", "--circuit", "../testdata/add_mul_circuit.json", "--proof", out,
		"--witness", "../testdata/add_mul_witness_bad.json")
	assert.ErrorIs(t, err, errInvalidProof)
}

func TestEligibilityCommands(t *testing.T) {
	out := filepath.Join(t.TempDir(), "eligibility.bin")
	stats := []string{"--reputation", "50", "--total-returned", "10", "--debt", "20", "--proof", out}

	require.NoError(t, run(append([]string{"eligibility", "score"}, stats...)...))
	require.NoError(t, run(append([]string{"eligibility", "check", "--amount", "490"}, stats...)...))
	err := run(append([]string{"eligibility", "check", "--amount", "491"}, stats...)...)
	assert.ErrorIs(t, err, errNotEligible)
}
