package commitment

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ints(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func TestChecksumHash(t *testing.T) {
	c := Checksum{}
	assert.Equal(t, "7", c.Hash(big.NewInt(3), big.NewInt(4)).String())
	assert.Equal(t, "0", c.Hash(big.NewInt(ChecksumModulus), big.NewInt(0)).String())
	assert.Equal(t, "1", c.Hash(big.NewInt(ChecksumModulus), big.NewInt(1)).String())
}

func TestChecksumCommit(t *testing.T) {
	c := Checksum{}
	assert.Equal(t, "14", c.Commit(ints(3, 4, 7)).String())
	assert.Equal(t, "0", c.Commit(nil).String())

	// accumulation is not reduced: only the final sum is
	big1 := new(big.Int).Lsh(big.NewInt(1), 200)
	expected := new(big.Int).Add(big1, big.NewInt(5))
	expected.Mod(expected, big.NewInt(ChecksumModulus))
	assert.Equal(t, expected.String(), c.Commit([]*big.Int{big1, big.NewInt(5)}).String())
}

func TestChecksumIsOrderInsensitive(t *testing.T) {
	c := Checksum{}
	assert.Equal(t, c.Commit(ints(1, 2, 3)).String(), c.Commit(ints(3, 2, 1)).String())
}

func TestSumSkipsNil(t *testing.T) {
	assert.Equal(t, "5", Sum([]*big.Int{big.NewInt(2), nil, big.NewInt(3)}).String())
}

func TestDefaultScheme(t *testing.T) {
	assert.Equal(t, "checksum", Default().Name())
}
