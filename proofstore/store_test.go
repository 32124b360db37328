package proofstore

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/proof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := proof.GenerateProof(nil, circuit.WitnessFromUint64s(3, 4, 7))

	rec, err := s.Save(ctx, p, "0xabc", true)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "14", rec.Commitment)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got.CircuitDigest)
	assert.True(t, got.Verified)

	decoded, err := got.Proof()
	require.NoError(t, err)
	assert.True(t, p.Equal(decoded))
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := int64(0); i < 3; i++ {
		p := &proof.Proof{Witness: []*big.Int{big.NewInt(i)}, Commitment: big.NewInt(i)}
		_, err := s.Save(ctx, p, "", false)
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, some, 2)
}

func TestFileDatabasePersists(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "proofs.db")
	ctx := context.Background()

	s, err := Open(dsn)
	require.NoError(t, err)
	rec, err := s.Save(ctx, proof.GenerateProof(nil, circuit.WitnessFromUint64s(1)), "", true)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dsn)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", got.Commitment)
}

func TestCanceledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Save(ctx, proof.GenerateProof(nil, circuit.WitnessFromUint64s(1)), "", true)
	assert.Error(t, err)
}
