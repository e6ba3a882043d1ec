// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is one supervised fine-tuning example. The instruction, input and
// output fields follow the Alpaca layout; the remaining fields are optional
// metadata and are omitted from the serialized form when empty.
type Record struct {
	// Instruction is the enumerated item the model was asked to reason about.
	Instruction string `json:"instruction" yaml:"instruction"`

	// Input is always empty; it is kept for Alpaca compatibility.
	Input string `json:"input" yaml:"input"`

	// Output is the raw model response holding the <thought> and <answer> segments.
	Output string `json:"output" yaml:"output"`

	// Thought is the text found between <thought> tags, when metadata is enabled.
	Thought string `json:"thought,omitempty" yaml:"thought,omitempty"`

	// Answer is the text found between <answer> tags, when metadata is enabled.
	Answer string `json:"answer,omitempty" yaml:"answer,omitempty"`

	// Role is the expert role used in the system instructions.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`

	// Query is the search query the instruction was extracted from.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`
}

// Valid reports whether the record carries both an instruction and an output.
func (r Record) Valid() bool {
	return r.Instruction != "" && r.Output != ""
}
