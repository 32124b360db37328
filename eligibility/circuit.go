package eligibility

import (
	"math/big"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/field"
)

// Weights of the reference scoring circuit.
const (
	ReputationWeight    = 10
	CarbonCreditWeight  = 2
	BorrowPenaltyWeight = 5
)

// Circuit is the reference scoring circuit:
//
//	one * one = one
//	times_borrowed * (5 one) = borrow_penalty
//	10 reputation + 2 carbon_credits + total_returned = gross
//	emissions + debt + total_borrowed + borrow_penalty = penalty
//	score + penalty = gross + deficit
//
// score and deficit are max(0, gross - penalty) and max(0, penalty - gross), so the last
// constraint holds for any statistics and a zero score means not eligible.
type Circuit struct {
	R1CS *circuit.R1CS

	One           *circuit.Variable
	Reputation    *circuit.Variable
	CarbonCredits *circuit.Variable
	TotalReturned *circuit.Variable
	Emissions     *circuit.Variable
	Debt          *circuit.Variable
	TotalBorrowed *circuit.Variable
	TimesBorrowed *circuit.Variable
	BorrowPenalty *circuit.Variable
	Gross         *circuit.Variable
	Penalty       *circuit.Variable
	Score         *circuit.Variable
	Deficit       *circuit.Variable
}

func term(v *circuit.Variable, coeff uint64) circuit.Term {
	return circuit.NewTerm(v, field.NewElement(coeff))
}

func NewCircuit() *Circuit {
	cs := circuit.New()
	c := &Circuit{
		R1CS:          cs,
		One:           cs.NewPublicVariable("one"),
		Reputation:    cs.NewPublicVariable("reputation_score"),
		CarbonCredits: cs.NewPublicVariable("carbon_credits"),
		TotalReturned: cs.NewPublicVariable("total_returned"),
		Emissions:     cs.NewPublicVariable("emissions"),
		Debt:          cs.NewPublicVariable("debt"),
		TotalBorrowed: cs.NewPublicVariable("total_borrowed"),
		TimesBorrowed: cs.NewPublicVariable("times_borrowed"),
		BorrowPenalty: cs.NewVariable("borrow_penalty"),
		Gross:         cs.NewVariable("gross"),
		Penalty:       cs.NewVariable("penalty"),
		Score:         cs.NewPublicVariable("score"),
		Deficit:       cs.NewVariable("deficit"),
	}

	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{term(c.One, 1)},
		Right:     circuit.LinearCombination{term(c.One, 1)},
		Output:    circuit.LinearCombination{term(c.One, 1)},
		Operation: circuit.Mul,
	})
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{term(c.TimesBorrowed, 1)},
		Right:     circuit.LinearCombination{term(c.One, BorrowPenaltyWeight)},
		Output:    circuit.LinearCombination{term(c.BorrowPenalty, 1)},
		Operation: circuit.Mul,
	})
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{term(c.Reputation, ReputationWeight), term(c.CarbonCredits, CarbonCreditWeight)},
		Right:     circuit.LinearCombination{term(c.TotalReturned, 1)},
		Output:    circuit.LinearCombination{term(c.Gross, 1)},
		Operation: circuit.Add,
	})
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{term(c.Emissions, 1), term(c.Debt, 1)},
		Right:     circuit.LinearCombination{term(c.TotalBorrowed, 1), term(c.BorrowPenalty, 1)},
		Output:    circuit.LinearCombination{term(c.Penalty, 1)},
		Operation: circuit.Add,
	})
	cs.AddConstraint(circuit.Constraint{
		Left:      circuit.LinearCombination{term(c.Score, 1)},
		Right:     circuit.LinearCombination{term(c.Penalty, 1)},
		Output:    circuit.LinearCombination{term(c.Gross, 1), term(c.Deficit, 1)},
		Operation: circuit.Add,
	})
	return c
}

func u(x uint64) *big.Int {
	return new(big.Int).SetUint64(x)
}

// Assign computes the derived values for stats, binds every variable and returns the score and
// the witness in allocation order.
func (c *Circuit) Assign(stats Stats) (*big.Int, circuit.Witness) {
	borrowPenalty := new(big.Int).Mul(u(stats.TimesBorrowed), u(BorrowPenaltyWeight))

	gross := new(big.Int).Mul(u(stats.ReputationScore), u(ReputationWeight))
	gross.Add(gross, new(big.Int).Mul(u(stats.CarbonCredits), u(CarbonCreditWeight)))
	gross.Add(gross, u(stats.TotalReturned))

	penalty := new(big.Int).Add(u(stats.Emissions), u(stats.Debt))
	penalty.Add(penalty, u(stats.TotalBorrowed))
	penalty.Add(penalty, borrowPenalty)

	score, deficit := new(big.Int), new(big.Int)
	if gross.Cmp(penalty) >= 0 {
		score.Sub(gross, penalty)
	} else {
		deficit.Sub(penalty, gross)
	}

	bindings := []struct {
		v *circuit.Variable
		x *big.Int
	}{
		{c.One, big.NewInt(1)},
		{c.Reputation, u(stats.ReputationScore)},
		{c.CarbonCredits, u(stats.CarbonCredits)},
		{c.TotalReturned, u(stats.TotalReturned)},
		{c.Emissions, u(stats.Emissions)},
		{c.Debt, u(stats.Debt)},
		{c.TotalBorrowed, u(stats.TotalBorrowed)},
		{c.TimesBorrowed, u(stats.TimesBorrowed)},
		{c.BorrowPenalty, borrowPenalty},
		{c.Gross, gross},
		{c.Penalty, penalty},
		{c.Score, score},
		{c.Deficit, deficit},
	}
	for _, b := range bindings {
		b.v.Set(field.FromBig(b.x))
	}
	return score, c.R1CS.Witness()
}

// matches reports whether the statistics currently bound to the circuit are stats.
func (c *Circuit) matches(stats Stats) bool {
	expected := map[*circuit.Variable]uint64{
		c.Reputation:    stats.ReputationScore,
		c.CarbonCredits: stats.CarbonCredits,
		c.TotalReturned: stats.TotalReturned,
		c.Emissions:     stats.Emissions,
		c.Debt:          stats.Debt,
		c.TotalBorrowed: stats.TotalBorrowed,
		c.TimesBorrowed: stats.TimesBorrowed,
	}
	for v, x := range expected {
		if !v.Value.Equal(field.NewElement(x)) {
			return false
		}
	}
	return c.One.Value.Equal(field.One())
}
