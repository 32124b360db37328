package types

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CircuitRaw is the JSON description of an R1CS:
//
//	{
//	  "variables": [{"name": "x"}, {"name": "y"}, {"name": "z", "public": true}],
//	  "constraints": [
//	    {"op": "add", "left": [{"var": "x", "coeff": "1"}], "right": [{"var": "y", "coeff": "1"}], "output": [{"var": "z", "coeff": "1"}]}
//	  ]
//	}
//
// Coefficients are decimal or 0x-prefixed hex strings; an empty coeff means 1.
type CircuitRaw struct {
	Variables   []VariableRaw   `json:"variables"`
	Constraints []ConstraintRaw `json:"constraints"`
}

type VariableRaw struct {
	Name   string `json:"name"`
	Public bool   `json:"public,omitempty"`
}

type TermRaw struct {
	Variable string `json:"var"`
	Coeff    string `json:"coeff,omitempty"`
}

type ConstraintRaw struct {
	Operation string    `json:"op"`
	Left      []TermRaw `json:"left"`
	Right     []TermRaw `json:"right"`
	Output    []TermRaw `json:"output"`
}

// WitnessRaw is the ordered list of variable values, as decimal or hex strings.
type WitnessRaw []string

func readJSON(path string, v interface{}) error {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rawBytes, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func ReadCircuit(path string) (CircuitRaw, error) {
	var raw CircuitRaw
	err := readJSON(path, &raw)
	return raw, err
}

func ReadCircuitFromRequest(data []byte) (CircuitRaw, error) {
	var raw CircuitRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("failed to parse circuit: %w", err)
	}
	return raw, nil
}

func ReadWitness(path string) (WitnessRaw, error) {
	var raw WitnessRaw
	err := readJSON(path, &raw)
	return raw, err
}

// CircuitDigest is the Keccak256 hash of the circuit's canonical JSON encoding. Two descriptions
// that differ only in whitespace share a digest.
func CircuitDigest(raw CircuitRaw) (common.Hash, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode circuit: %w", err)
	}
	return crypto.Keccak256Hash(data), nil
}

// Export writes the circuit description as JSON.
func (c CircuitRaw) Export(file string) error {
	return writeJSON(file, c)
}

func writeJSON(file string, v interface{}) error {
	jsonString, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return os.WriteFile(file, jsonString, 0644)
}
