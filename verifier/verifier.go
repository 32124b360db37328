// Package verifier exports an R1CS to gnark. The exported circuit re-states every Add and Mul
// constraint over the BN254 scalar field, which lets gnark's solver cross-check the checksum
// engine and lets the groth16 and plonk backends produce a succinct companion proof for the same
// circuit.
//
// gnark reduces every relation modulo p, whereas the checksum engine compares the projected sums
// as plain integers. The two agree whenever no evaluated side wraps the modulus.
package verifier

import (
	"fmt"

	"github.com/IronJam11/injective-hack/circuit"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

type slot struct {
	public bool
	index  int
}

// Circuit is the gnark view of an R1CS. Variables flagged public land in Public, the rest in
// Secret, both in allocation order.
type Circuit struct {
	Public []frontend.Variable `gnark:",public"`
	Secret []frontend.Variable `gnark:",secret"`

	// This is configuration for the circuit, it is a constant not a variable
	constraints []circuit.Constraint `gnark:"-"`
	slots       []slot               `gnark:"-"`
}

func newCircuit(cs *circuit.R1CS) *Circuit {
	c := &Circuit{constraints: cs.Constraints()}
	for _, v := range cs.Variables() {
		if v.Public {
			c.slots = append(c.slots, slot{public: true, index: len(c.Public)})
			c.Public = append(c.Public, nil)
		} else {
			c.slots = append(c.slots, slot{index: len(c.Secret)})
			c.Secret = append(c.Secret, nil)
		}
	}
	return c
}

// NewCircuit returns the compile-time template for cs.
func NewCircuit(cs *circuit.R1CS) *Circuit {
	return newCircuit(cs)
}

// Assign returns an assignment holding the live variable values of cs.
func Assign(cs *circuit.R1CS) *Circuit {
	c := newCircuit(cs)
	for i, v := range cs.Variables() {
		value := frontend.Variable(v.Value.Value())
		if s := c.slots[i]; s.public {
			c.Public[s.index] = value
		} else {
			c.Secret[s.index] = value
		}
	}
	return c
}

func (c *Circuit) variable(id int) frontend.Variable {
	s := c.slots[id]
	if s.public {
		return c.Public[s.index]
	}
	return c.Secret[s.index]
}

func (c *Circuit) linearCombination(api frontend.API, lc circuit.LinearCombination) frontend.Variable {
	acc := frontend.Variable(0)
	for _, t := range lc {
		acc = api.Add(acc, api.Mul(c.variable(t.Variable.ID), t.Coeff.Value()))
	}
	return acc
}

func (c *Circuit) Define(api frontend.API) error {
	for i, cons := range c.constraints {
		l := c.linearCombination(api, cons.Left)
		r := c.linearCombination(api, cons.Right)
		o := c.linearCombination(api, cons.Output)

		switch cons.Operation {
		case circuit.Add:
			api.AssertIsEqual(api.Add(l, r), o)
		case circuit.Mul:
			api.AssertIsEqual(api.Mul(l, r), o)
		default:
			return fmt.Errorf("constraint %d: %w", i, circuit.ErrUnsupportedOperation)
		}
	}
	return nil
}

// IsSolved runs gnark's test engine on the live bindings of cs. It returns nil when every
// constraint holds modulo p.
func IsSolved(cs *circuit.R1CS) error {
	return test.IsSolved(NewCircuit(cs), Assign(cs), ecc.BN254.ScalarField())
}
