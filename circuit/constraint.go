package circuit

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/IronJam11/injective-hack/field"
)

var (
	// ErrNotSatisfied is returned when a constraint's relation does not hold.
	ErrNotSatisfied = errors.New("constraint not satisfied")
	// ErrUnsupportedOperation is returned for operations the engine reserves but does not
	// evaluate (Hash). Reaching it means the circuit was built wrong.
	ErrUnsupportedOperation = errors.New("unsupported constraint operation")
)

// Operation selects the relation between the three linear combinations of a constraint.
type Operation uint8

const (
	Add Operation = iota
	Mul
	// Hash is reserved. No circuit is expected to use it and evaluating it is an error.
	Hash
)

func (op Operation) String() string {
	switch op {
	case Add:
		return "add"
	case Mul:
		return "mul"
	case Hash:
		return "hash"
	default:
		return fmt.Sprintf("operation(%d)", uint8(op))
	}
}

// ParseOperation accepts the names printed by Operation.String, case insensitive.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return Add, nil
	case "mul":
		return Mul, nil
	case "hash":
		return Hash, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}

// Term is one (variable, coefficient) pair of a linear combination.
type Term struct {
	Variable *Variable
	Coeff    field.Element
}

func NewTerm(v *Variable, coeff field.Element) Term {
	return Term{Variable: v, Coeff: coeff}
}

// LinearCombination is an ordered list of terms.
type LinearCombination []Term

// Evaluate computes sum(variable.Value * coeff) in the field and returns the integer
// representative. An empty combination evaluates to 0. The live variable values are read, so the
// result changes whenever the circuit is re-bound.
func Evaluate(lc LinearCombination) *big.Int {
	acc := field.Zero()
	for _, t := range lc {
		acc = acc.Add(t.Variable.Value.Mul(t.Coeff))
	}
	return acc.Value()
}

// Constraint is a single rank-1 relation: Left <Op> Right == Output.
type Constraint struct {
	Left      LinearCombination
	Right     LinearCombination
	Output    LinearCombination
	Operation Operation
}

// Check evaluates the three sides against the current variable bindings. The evaluated sides are
// compared as plain integers: Add requires L + R == O and Mul requires L * R == O, with no
// reduction applied to the sum or product.
func (c Constraint) Check() error {
	l := Evaluate(c.Left)
	r := Evaluate(c.Right)
	o := Evaluate(c.Output)

	var lhs *big.Int
	switch c.Operation {
	case Add:
		lhs = l.Add(l, r)
	case Mul:
		lhs = l.Mul(l, r)
	case Hash:
		return ErrUnsupportedOperation
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOperation, c.Operation)
	}

	if lhs.Cmp(o) != 0 {
		return ErrNotSatisfied
	}
	return nil
}

// ConstraintError reports which constraint of an R1CS failed.
type ConstraintError struct {
	Index     int
	Operation Operation
	Err       error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %d (%s): %v", e.Index, e.Operation, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
