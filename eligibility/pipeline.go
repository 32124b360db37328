// Package eligibility turns lending statistics into an eligibility score and a checksum proof of
// the computation, and checks such proofs against a requested amount.
package eligibility

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/proof"
	"github.com/rs/zerolog/log"
)

// ErrMalformedProof is returned by Check when the proof bytes cannot be decoded or do not fit
// the scoring circuit.
var ErrMalformedProof = errors.New("malformed eligibility proof")

// Stats are the lending statistics of a user.
type Stats struct {
	ReputationScore uint64 `json:"reputation_score"`
	CarbonCredits   uint64 `json:"carbon_credits"`
	Debt            uint64 `json:"debt"`
	TimesBorrowed   uint64 `json:"times_borrowed"`
	TotalBorrowed   uint64 `json:"total_borrowed"`
	TotalReturned   uint64 `json:"total_returned"`
	Emissions       uint64 `json:"emissions"`
}

// Pipeline produces an eligibility score for stats together with the binary proof of it.
type Pipeline interface {
	Evaluate(stats Stats) (*big.Int, []byte, error)
}

// Checker decides whether a proof shows that stats are eligible for amount.
type Checker interface {
	Check(stats Stats, amount uint64, proofBytes []byte) (bool, error)
}

// WeightedPipeline scores stats with the reference circuit and proves the witness with a
// checksum engine.
type WeightedPipeline struct {
	engine *proof.Engine
}

var (
	_ Pipeline = (*WeightedPipeline)(nil)
	_ Checker  = (*WeightedPipeline)(nil)
)

func NewWeightedPipeline(engine *proof.Engine) *WeightedPipeline {
	if engine == nil {
		engine = proof.NewEngine()
	}
	return &WeightedPipeline{engine: engine}
}

func (p *WeightedPipeline) Evaluate(stats Stats) (*big.Int, []byte, error) {
	c := NewCircuit()
	score, w := c.Assign(stats)
	if err := c.R1CS.Check(); err != nil {
		return nil, nil, fmt.Errorf("scoring circuit not satisfied: %w", err)
	}
	prf := p.engine.Generate(c.R1CS, w)
	data, err := prf.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Str("score", score.String()).
		Str("commitment", prf.Commitment.String()).
		Msg("eligibility evaluated")
	return score, data, nil
}

// Check decodes proofBytes, binds its witness to a fresh scoring circuit and verifies it. The
// proof must carry exactly stats and a score of at least amount. A proof that decodes but fails
// any of these yields false with a nil error.
func (p *WeightedPipeline) Check(stats Stats, amount uint64, proofBytes []byte) (bool, error) {
	prf, err := proof.Decode(proofBytes)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	c := NewCircuit()
	if err := c.R1CS.BindBigInts(prf.Witness); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	if !c.matches(stats) {
		log.Debug().Msg("eligibility proof is for different stats")
		return false, nil
	}
	if err := p.engine.Check(prf, c.R1CS); err != nil {
		if errors.Is(err, circuit.ErrUnsupportedOperation) {
			return false, err
		}
		log.Debug().Err(err).Msg("eligibility proof rejected")
		return false, nil
	}
	score := c.Score.Value.Value()
	return score.Cmp(new(big.Int).SetUint64(amount)) >= 0, nil
}
