// Package proof generates and verifies checksum proofs over an R1CS.
//
// A Proof carries the full revealed witness and a commitment to it. Verification recomputes the
// commitment from the revealed witness and then evaluates every constraint of the circuit
// against the circuit's own live variable bindings. The revealed witness is never written back
// into the circuit: callers that want the proof's values checked must re-bind the circuit first
// (see circuit.R1CS.BindBigInts).
package proof

import (
	"errors"
	"math/big"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/commitment"
	"github.com/rs/zerolog/log"
)

// ErrCommitmentMismatch is returned when a proof's commitment does not match its witness.
var ErrCommitmentMismatch = errors.New("commitment mismatch")

type Proof struct {
	Witness    []*big.Int
	Commitment *big.Int
}

func intOrZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}

// Equal reports whether both proofs carry the same witness values and commitment.
func (p *Proof) Equal(o *Proof) bool {
	if p == nil || o == nil {
		return p == o
	}
	if len(p.Witness) != len(o.Witness) {
		return false
	}
	for i := range p.Witness {
		if intOrZero(p.Witness[i]).Cmp(intOrZero(o.Witness[i])) != 0 {
			return false
		}
	}
	return intOrZero(p.Commitment).Cmp(intOrZero(o.Commitment)) == 0
}

// Clone returns a deep copy, so callers can tamper with a proof without touching the original.
func (p *Proof) Clone() *Proof {
	c := &Proof{
		Witness:    make([]*big.Int, len(p.Witness)),
		Commitment: new(big.Int).Set(intOrZero(p.Commitment)),
	}
	for i, w := range p.Witness {
		c.Witness[i] = new(big.Int).Set(intOrZero(w))
	}
	return c
}

// Engine generates and verifies proofs with a fixed commitment scheme. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	scheme commitment.Scheme
}

type Option func(*Engine)

// WithScheme replaces the default checksum commitment.
func WithScheme(s commitment.Scheme) Option {
	return func(e *Engine) {
		e.scheme = s
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{scheme: commitment.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Scheme() commitment.Scheme {
	return e.scheme
}

// Generate packs the witness into a proof. The circuit is accepted for symmetry with Verify but
// is not consulted: the commitment depends on the witness alone.
func (e *Engine) Generate(_ *circuit.R1CS, w circuit.Witness) *Proof {
	values := w.BigInts()
	return &Proof{
		Witness:    values,
		Commitment: e.scheme.Commit(values),
	}
}

// Check verifies p against cs and explains a failure. It returns ErrCommitmentMismatch,
// a *circuit.ConstraintError, or nil.
func (e *Engine) Check(p *Proof, cs *circuit.R1CS) error {
	expected := e.scheme.Commit(p.Witness)
	if intOrZero(p.Commitment).Cmp(expected) != 0 {
		log.Debug().
			Str("expected", expected.String()).
			Str("got", intOrZero(p.Commitment).String()).
			Msg("proof commitment mismatch")
		return ErrCommitmentMismatch
	}

	if err := cs.Check(); err != nil {
		log.Debug().Err(err).Msg("proof constraint check failed")
		return err
	}
	return nil
}

// Verify reports whether p is valid for cs. A Hash constraint is a programming error and panics
// rather than being folded into false.
func (e *Engine) Verify(p *Proof, cs *circuit.R1CS) bool {
	err := e.Check(p, cs)
	if errors.Is(err, circuit.ErrUnsupportedOperation) {
		panic(err)
	}
	return err == nil
}

var defaultEngine = NewEngine()

// GenerateProof uses the default checksum engine.
func GenerateProof(cs *circuit.R1CS, w circuit.Witness) *Proof {
	return defaultEngine.Generate(cs, w)
}

// VerifyProof uses the default checksum engine.
func VerifyProof(p *Proof, cs *circuit.R1CS) bool {
	return defaultEngine.Verify(p, cs)
}
