package circuit

import (
	"math/big"

	"github.com/IronJam11/injective-hack/field"
)

// Witness is an ordered assignment of field values, one per circuit variable.
type Witness []field.Element

func WitnessFromBigInts(values []*big.Int) Witness {
	w := make(Witness, len(values))
	for i, x := range values {
		w[i] = field.FromBig(x)
	}
	return w
}

func WitnessFromUint64s(values ...uint64) Witness {
	w := make(Witness, len(values))
	for i, x := range values {
		w[i] = field.NewElement(x)
	}
	return w
}

// BigInts returns the integer representation of every value, preserving order.
func (w Witness) BigInts() []*big.Int {
	out := make([]*big.Int, len(w))
	for i, e := range w {
		out[i] = e.Value()
	}
	return out
}
