// Package circuit is the declarative model of an arithmetic circuit: variables holding field
// values, and an ordered list of rank-1 constraints over them.
package circuit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/IronJam11/injective-hack/field"
)

// ErrWitnessLength is returned when a witness does not assign exactly one value per variable.
var ErrWitnessLength = errors.New("witness length does not match circuit variables")

// Variable is a slot of the circuit. Value is the live witness assignment; verification reads it
// directly.
type Variable struct {
	ID     int
	Name   string
	Public bool
	Value  field.Element
}

// Set binds a new value to the variable.
func (v *Variable) Set(value field.Element) {
	v.Value = value
}

func (v *Variable) String() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("v%d", v.ID)
}

// R1CS is an ordered sequence of constraints together with the variables they reference, in
// allocation order.
type R1CS struct {
	variables   []*Variable
	byName      map[string]*Variable
	constraints []Constraint
}

func New() *R1CS {
	return &R1CS{byName: make(map[string]*Variable)}
}

func (cs *R1CS) allocate(name string, public bool) *Variable {
	v := &Variable{ID: len(cs.variables), Name: name, Public: public}
	cs.variables = append(cs.variables, v)
	if name != "" {
		cs.byName[name] = v
	}
	return v
}

// NewVariable allocates a secret variable. Names are optional but must be unique when set.
func (cs *R1CS) NewVariable(name string) *Variable {
	return cs.allocate(name, false)
}

// NewPublicVariable allocates a variable exposed as a public input by the gnark export.
func (cs *R1CS) NewPublicVariable(name string) *Variable {
	return cs.allocate(name, true)
}

// Variable looks a variable up by name.
func (cs *R1CS) Variable(name string) (*Variable, bool) {
	v, ok := cs.byName[name]
	return v, ok
}

// Variables returns the variables in allocation order. The pointers are live: setting a value
// through them re-binds the circuit.
func (cs *R1CS) Variables() []*Variable {
	return append([]*Variable(nil), cs.variables...)
}

func (cs *R1CS) NumVariables() int {
	return len(cs.variables)
}

func (cs *R1CS) AddConstraint(c Constraint) {
	cs.constraints = append(cs.constraints, c)
}

// Constraints returns a copy of the constraint list.
func (cs *R1CS) Constraints() []Constraint {
	return append([]Constraint(nil), cs.constraints...)
}

func (cs *R1CS) NumConstraints() int {
	return len(cs.constraints)
}

// Check evaluates every constraint in order against the live variable bindings and reports the
// first failure as a *ConstraintError.
func (cs *R1CS) Check() error {
	for i, c := range cs.constraints {
		if err := c.Check(); err != nil {
			return &ConstraintError{Index: i, Operation: c.Operation, Err: err}
		}
	}
	return nil
}

// IsSatisfied is Check folded into a boolean. It panics on an unsupported operation.
func (cs *R1CS) IsSatisfied() bool {
	err := cs.Check()
	if errors.Is(err, ErrUnsupportedOperation) {
		panic(err)
	}
	return err == nil
}

// Bind assigns w[i] to the i-th allocated variable.
func (cs *R1CS) Bind(w Witness) error {
	if len(w) != len(cs.variables) {
		return fmt.Errorf("%w: got %d values for %d variables", ErrWitnessLength, len(w), len(cs.variables))
	}
	for i, v := range cs.variables {
		v.Set(w[i])
	}
	return nil
}

// BindBigInts re-binds the circuit from raw integers, e.g. the revealed witness of a proof.
func (cs *R1CS) BindBigInts(values []*big.Int) error {
	return cs.Bind(WitnessFromBigInts(values))
}

// Witness returns the current bindings in allocation order.
func (cs *R1CS) Witness() Witness {
	w := make(Witness, len(cs.variables))
	for i, v := range cs.variables {
		w[i] = v.Value
	}
	return w
}
