package proof

import (
	"errors"
	"math/big"
	"testing"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/commitment"
	"github.com/IronJam11/injective-hack/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xyz builds {x <op> y == z} with unit coefficients.
func xyz(op circuit.Operation) *circuit.R1CS {
	cs := circuit.New()
	x := cs.NewVariable("x")
	y := cs.NewVariable("y")
	z := cs.NewVariable("z")
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{circuit.NewTerm(x, field.One())},
		Right:     circuit.LinearCombination{circuit.NewTerm(y, field.One())},
		Output:    circuit.LinearCombination{circuit.NewTerm(z, field.One())},
		Operation: op,
	})
	return cs
}

func proveBound(t *testing.T, cs *circuit.R1CS, values ...uint64) *Proof {
	t.Helper()
	w := circuit.WitnessFromUint64s(values...)
	require.NoError(t, cs.Bind(w))
	return GenerateProof(cs, w)
}

func TestGenerateProof(t *testing.T) {
	cs := xyz(circuit.Add)
	p := proveBound(t, cs, 3, 4, 7)

	require.Len(t, p.Witness, 3)
	assert.Equal(t, "3", p.Witness[0].String())
	assert.Equal(t, "4", p.Witness[1].String())
	assert.Equal(t, "7", p.Witness[2].String())
	assert.Equal(t, "14", p.Commitment.String())
}

func TestAddConstraintProof(t *testing.T) {
	cs := xyz(circuit.Add)
	assert.True(t, VerifyProof(proveBound(t, cs, 3, 4, 7), cs))
	assert.False(t, VerifyProof(proveBound(t, cs, 3, 4, 8), cs))
}

func TestMulConstraintProof(t *testing.T) {
	cs := xyz(circuit.Mul)
	assert.True(t, VerifyProof(proveBound(t, cs, 3, 4, 12), cs))
	assert.False(t, VerifyProof(proveBound(t, cs, 3, 4, 11), cs))
}

func TestRoundTripSoundness(t *testing.T) {
	cs := circuit.New()
	a := cs.NewVariable("a")
	b := cs.NewVariable("b")
	c := cs.NewVariable("c")
	d := cs.NewVariable("d")
	// 2a + b = c ; c * a = d
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{circuit.NewTerm(a, field.NewElement(2))},
		Right:     circuit.LinearCombination{circuit.NewTerm(b, field.One())},
		Output:    circuit.LinearCombination{circuit.NewTerm(c, field.One())},
		Operation: circuit.Add,
	})
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{circuit.NewTerm(c, field.One())},
		Right:     circuit.LinearCombination{circuit.NewTerm(a, field.One())},
		Output:    circuit.LinearCombination{circuit.NewTerm(d, field.One())},
		Operation: circuit.Mul,
	})

	for _, av := range []uint64{0, 1, 5, 1 << 40} {
		bv := av + 17
		cv := 2*av + bv
		w := circuit.Witness{field.NewElement(av), field.NewElement(bv), field.NewElement(cv), field.NewElement(cv).Mul(field.NewElement(av))}
		require.NoError(t, cs.Bind(w))
		assert.True(t, VerifyProof(GenerateProof(cs, w), cs), "a=%d", av)
	}
}

func TestCommitmentSensitivity(t *testing.T) {
	cs := xyz(circuit.Add)
	p := proveBound(t, cs, 3, 4, 7)

	for i := range p.Witness {
		tampered := p.Clone()
		tampered.Witness[i].Add(tampered.Witness[i], big.NewInt(1))
		assert.False(t, VerifyProof(tampered, cs), "witness %d", i)

		err := NewEngine().Check(tampered, cs)
		assert.ErrorIs(t, err, ErrCommitmentMismatch)
	}

	tampered := p.Clone()
	tampered.Commitment.Add(tampered.Commitment, big.NewInt(1))
	assert.False(t, VerifyProof(tampered, cs))

	// the original is untouched by the clones
	assert.True(t, VerifyProof(p, cs))
}

func TestCommitmentBlindToChecksumModulusShift(t *testing.T) {
	cs := xyz(circuit.Add)
	p := proveBound(t, cs, 3, 4, 7)

	shifted := p.Clone()
	shifted.Witness[0].Add(shifted.Witness[0], big.NewInt(commitment.ChecksumModulus))
	assert.NoError(t, NewEngine().Check(shifted, cs))
}

func TestVacuousCircuit(t *testing.T) {
	cs := circuit.New()
	v := cs.NewVariable("v")
	v.Set(field.NewElement(99))

	p := GenerateProof(cs, circuit.WitnessFromUint64s(1, 2, 3))
	assert.True(t, VerifyProof(p, cs))

	p.Commitment = big.NewInt(0)
	assert.False(t, VerifyProof(p, cs))
}

// Constraint evaluation reads the circuit's live bindings, never the proof's revealed witness.
func TestVerifyReadsLiveVariableBindings(t *testing.T) {
	cs := xyz(circuit.Add)

	// proof of a bad witness verifies while the circuit is bound to good values
	require.NoError(t, cs.Bind(circuit.WitnessFromUint64s(3, 4, 7)))
	bad := GenerateProof(cs, circuit.WitnessFromUint64s(3, 4, 8))
	assert.True(t, VerifyProof(bad, cs))

	// and a proof of a good witness fails while the circuit is bound to bad values
	good := GenerateProof(cs, circuit.WitnessFromUint64s(3, 4, 7))
	require.NoError(t, cs.Bind(circuit.WitnessFromUint64s(3, 4, 8)))
	assert.False(t, VerifyProof(good, cs))

	// re-binding from the revealed witness restores the meaningful check
	require.NoError(t, cs.BindBigInts(good.Witness))
	assert.True(t, VerifyProof(good, cs))
	require.NoError(t, cs.BindBigInts(bad.Witness))
	assert.False(t, VerifyProof(bad, cs))
}

func TestGenerateIgnoresCircuit(t *testing.T) {
	w := circuit.WitnessFromUint64s(3, 4, 7)
	a := GenerateProof(xyz(circuit.Add), w)
	b := GenerateProof(xyz(circuit.Mul), w)
	c := GenerateProof(nil, w)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c))
}

func TestGenerateDeterministic(t *testing.T) {
	cs := xyz(circuit.Mul)
	w := circuit.WitnessFromUint64s(3, 4, 12)

	p1, err := GenerateProof(cs, w).MarshalBinary()
	require.NoError(t, err)
	p2, err := GenerateProof(cs, w).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestHashConstraintPanics(t *testing.T) {
	cs := xyz(circuit.Hash)
	p := proveBound(t, cs, 1, 2, 3)

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, circuit.ErrUnsupportedOperation)
		}()
		VerifyProof(p, cs)
	}()

	var cErr *circuit.ConstraintError
	err := NewEngine().Check(p, cs)
	require.True(t, errors.As(err, &cErr))
	assert.ErrorIs(t, err, circuit.ErrUnsupportedOperation)
}

func TestHashNotReachedOnCommitmentMismatch(t *testing.T) {
	cs := xyz(circuit.Hash)
	p := proveBound(t, cs, 1, 2, 3)
	p.Commitment = big.NewInt(1)

	assert.NotPanics(t, func() {
		assert.False(t, VerifyProof(p, cs))
	})
}

type xorScheme struct{}

func (xorScheme) Name() string { return "xor" }

func (xorScheme) Commit(w []*big.Int) *big.Int {
	acc := new(big.Int)
	for _, x := range w {
		acc.Xor(acc, x)
	}
	return acc
}

func TestEngineWithScheme(t *testing.T) {
	cs := xyz(circuit.Add)
	w := circuit.WitnessFromUint64s(3, 4, 7)
	require.NoError(t, cs.Bind(w))

	e := NewEngine(WithScheme(xorScheme{}))
	assert.Equal(t, "xor", e.Scheme().Name())

	p := e.Generate(cs, w)
	assert.Equal(t, "0", p.Commitment.String()) // 3 ^ 4 ^ 7
	assert.True(t, e.Verify(p, cs))

	// a checksum engine rejects the xor commitment
	assert.False(t, VerifyProof(p, cs))
}

func TestProofEqual(t *testing.T) {
	a := &Proof{Witness: []*big.Int{big.NewInt(1)}, Commitment: big.NewInt(1)}
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(&Proof{Witness: []*big.Int{big.NewInt(2)}, Commitment: big.NewInt(1)}))
	assert.False(t, a.Equal(&Proof{Commitment: big.NewInt(1)}))
	assert.False(t, a.Equal(nil))
	var nilProof *Proof
	assert.True(t, nilProof.Equal(nil))
}
