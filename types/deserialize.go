package types

import (
	"fmt"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/IronJam11/injective-hack/field"
)

func deserializeTerms(cs *circuit.R1CS, terms []TermRaw) (circuit.LinearCombination, error) {
	lc := make(circuit.LinearCombination, 0, len(terms))
	for _, t := range terms {
		v, ok := cs.Variable(t.Variable)
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", t.Variable)
		}
		coeff := field.One()
		if t.Coeff != "" {
			var err error
			coeff, err = field.FromString(t.Coeff)
			if err != nil {
				return nil, fmt.Errorf("coefficient of %q: %w", t.Variable, err)
			}
		}
		lc = append(lc, circuit.NewTerm(v, coeff))
	}
	return lc, nil
}

// DeserializeCircuit builds an R1CS whose variables are allocated in the order they are listed.
// All variables start bound to zero.
func DeserializeCircuit(raw CircuitRaw) (*circuit.R1CS, error) {
	cs := circuit.New()
	for i, v := range raw.Variables {
		if v.Name == "" {
			return nil, fmt.Errorf("variable %d has no name", i)
		}
		if _, dup := cs.Variable(v.Name); dup {
			return nil, fmt.Errorf("duplicate variable %q", v.Name)
		}
		if v.Public {
			cs.NewPublicVariable(v.Name)
		} else {
			cs.NewVariable(v.Name)
		}
	}

	for i, c := range raw.Constraints {
		op, err := circuit.ParseOperation(c.Operation)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		left, err := deserializeTerms(cs, c.Left)
		if err != nil {
			return nil, fmt.Errorf("constraint %d left: %w", i, err)
		}
		right, err := deserializeTerms(cs, c.Right)
		if err != nil {
			return nil, fmt.Errorf("constraint %d right: %w", i, err)
		}
		output, err := deserializeTerms(cs, c.Output)
		if err != nil {
			return nil, fmt.Errorf("constraint %d output: %w", i, err)
		}
		cs.AddConstraint(circuit.Constraint{Left: left, Right: right, Output: output, Operation: op})
	}
	return cs, nil
}

func DeserializeWitness(raw WitnessRaw) (circuit.Witness, error) {
	w := make(circuit.Witness, len(raw))
	for i, s := range raw {
		e, err := field.FromString(s)
		if err != nil {
			return nil, fmt.Errorf("witness %d: %w", i, err)
		}
		w[i] = e
	}
	return w, nil
}

// SerializeCircuit is the inverse of DeserializeCircuit.
func SerializeCircuit(cs *circuit.R1CS) CircuitRaw {
	var raw CircuitRaw
	for _, v := range cs.Variables() {
		raw.Variables = append(raw.Variables, VariableRaw{Name: v.String(), Public: v.Public})
	}
	terms := func(lc circuit.LinearCombination) []TermRaw {
		out := make([]TermRaw, len(lc))
		for i, t := range lc {
			out[i] = TermRaw{Variable: t.Variable.String(), Coeff: t.Coeff.String()}
		}
		return out
	}
	for _, c := range cs.Constraints() {
		raw.Constraints = append(raw.Constraints, ConstraintRaw{
			Operation: c.Operation.String(),
			Left:      terms(c.Left),
			Right:     terms(c.Right),
			Output:    terms(c.Output),
		})
	}
	return raw
}

func SerializeWitness(w circuit.Witness) WitnessRaw {
	raw := make(WitnessRaw, len(w))
	for i, e := range w {
		raw[i] = e.String()
	}
	return raw
}
