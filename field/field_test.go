package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldArithmetic(t *testing.T) {
	a := NewElement(3)
	b := NewElement(4)

	assert.Equal(t, "7", a.Add(b).String())
	assert.Equal(t, "12", a.Mul(b).String())
	assert.Equal(t, "1", b.Sub(a).String())

	// 3 - 4 wraps to p - 1
	pMinusOne := new(big.Int).Sub(Modulus(), big.NewInt(1))
	assert.Equal(t, 0, a.Sub(b).Value().Cmp(pMinusOne))
	assert.True(t, a.Add(a.Neg()).IsZero())
}

func TestFieldReduction(t *testing.T) {
	p := Modulus()

	assert.True(t, FromBig(p).IsZero())
	assert.Equal(t, "5", FromBig(new(big.Int).Add(p, big.NewInt(5))).String())
	assert.Equal(t, 0, FromBig(big.NewInt(-1)).Value().Cmp(new(big.Int).Sub(p, big.NewInt(1))))

	// (p-1) * (p-1) = 1
	pMinusOne := FromBig(new(big.Int).Sub(p, big.NewInt(1)))
	assert.True(t, pMinusOne.Mul(pMinusOne).Equal(One()))

	// (p-1) + 2 = 1
	assert.True(t, pMinusOne.Add(NewElement(2)).Equal(One()))
}

func TestFieldZeroValue(t *testing.T) {
	var e Element
	assert.True(t, e.IsZero())
	assert.True(t, e.Equal(Zero()))
	assert.Equal(t, "0", e.String())
	assert.Equal(t, "9", e.Add(NewElement(9)).String())
}

func TestFieldImmutable(t *testing.T) {
	a := NewElement(10)
	v := a.Value()
	v.SetInt64(99)
	assert.Equal(t, "10", a.String())

	src := big.NewInt(42)
	b := FromBig(src)
	src.SetInt64(0)
	assert.Equal(t, "42", b.String())

	_ = a.Add(NewElement(1))
	assert.Equal(t, "10", a.String())
}

func TestFieldFromString(t *testing.T) {
	e, err := FromString("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", e.String())

	e, err = FromString("0xff")
	require.NoError(t, err)
	assert.Equal(t, "255", e.String())

	_, err = FromString("not-a-number")
	assert.Error(t, err)
}

func TestFieldFunctionForm(t *testing.T) {
	assert.True(t, Add(NewElement(2), NewElement(3)).Equal(NewElement(5)))
	assert.True(t, Sub(NewElement(5), NewElement(3)).Equal(NewElement(2)))
	assert.True(t, Mul(NewElement(5), NewElement(3)).Equal(NewElement(15)))
}
