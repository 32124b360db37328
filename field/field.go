// Package field implements arbitrary precision arithmetic modulo the BN254 scalar field prime.
// Elements are immutable: every operation returns a fresh, fully reduced element, so an Element
// can never hold a value outside [0, p).
package field

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// The modulus of the field. Shared with gnark so that circuits exported by the verifier package
// live over the same prime.
var modulus = fr.Modulus()

// Modulus returns a copy of the field prime.
func Modulus() *big.Int {
	return new(big.Int).Set(modulus)
}

// Element is a value in Z_p. The zero value is the additive identity.
type Element struct {
	v *big.Int
}

// Creates a new field element from a small integer.
func NewElement(x uint64) Element {
	return FromBig(new(big.Int).SetUint64(x))
}

// FromBig reduces x into [0, p). Negative inputs map to their canonical residue. x is not
// retained.
func FromBig(x *big.Int) Element {
	if x == nil {
		return Element{}
	}
	return Element{v: new(big.Int).Mod(x, modulus)}
}

// FromString parses a decimal or 0x-prefixed hexadecimal integer and reduces it.
func FromString(s string) (Element, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	x, ok := new(big.Int).SetString(s, base)
	if !ok {
		return Element{}, fmt.Errorf("field: invalid integer %q", s)
	}
	return FromBig(x), nil
}

// The zero element.
func Zero() Element {
	return Element{}
}

// The one element.
func One() Element {
	return NewElement(1)
}

func (e Element) big() *big.Int {
	if e.v == nil {
		return new(big.Int)
	}
	return e.v
}

func reduce(x *big.Int) Element {
	return Element{v: x.Mod(x, modulus)}
}

// Add returns e + b mod p.
func (e Element) Add(b Element) Element {
	return reduce(new(big.Int).Add(e.big(), b.big()))
}

// Sub returns e - b mod p.
func (e Element) Sub(b Element) Element {
	return reduce(new(big.Int).Sub(e.big(), b.big()))
}

// Mul returns e * b mod p.
func (e Element) Mul(b Element) Element {
	return reduce(new(big.Int).Mul(e.big(), b.big()))
}

// Neg returns -e mod p.
func (e Element) Neg() Element {
	return reduce(new(big.Int).Neg(e.big()))
}

// Value returns a copy of the underlying integer, always in [0, p).
func (e Element) Value() *big.Int {
	return new(big.Int).Set(e.big())
}

func (e Element) IsZero() bool {
	return e.big().Sign() == 0
}

func (e Element) Equal(b Element) bool {
	return e.big().Cmp(b.big()) == 0
}

func (e Element) String() string {
	return e.big().String()
}

// Add, Sub and Mul in function form, for callers that fold over slices.

func Add(a, b Element) Element { return a.Add(b) }

func Sub(a, b Element) Element { return a.Sub(b) }

func Mul(a, b Element) Element { return a.Mul(b) }
