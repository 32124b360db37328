// Package commitment defines how a proof binds its revealed witness to a single value.
//
// The only implementation, Checksum, is a placeholder: a modular sum that neither hides nor
// cryptographically binds the witness. It is kept bit-for-bit stable because stored proofs
// depend on it. A sound scheme can be swapped in through the Scheme interface without touching
// the proof engine.
package commitment

import "math/big"

// ChecksumModulus is the small prime the checksum reduces by. It is unrelated to the field
// modulus.
const ChecksumModulus = 1_000_000_007

var checksumModulus = big.NewInt(ChecksumModulus)

// Scheme commits to an ordered witness.
type Scheme interface {
	Name() string
	Commit(witness []*big.Int) *big.Int
}

// Checksum commits to hash(sum(witness), 0).
type Checksum struct{}

func (Checksum) Name() string {
	return "checksum"
}

// Hash combines two integers as (left + right) mod ChecksumModulus.
func (Checksum) Hash(left, right *big.Int) *big.Int {
	combined := new(big.Int).Add(left, right)
	return combined.Mod(combined, checksumModulus)
}

// Commit sums the witness as plain integers, without reducing during accumulation.
func (c Checksum) Commit(witness []*big.Int) *big.Int {
	return c.Hash(Sum(witness), new(big.Int))
}

// Sum adds the values as unbounded integers. nil entries count as zero.
func Sum(values []*big.Int) *big.Int {
	acc := new(big.Int)
	for _, v := range values {
		if v != nil {
			acc.Add(acc, v)
		}
	}
	return acc
}

// Default is the scheme used when none is configured.
func Default() Scheme {
	return Checksum{}
}
