// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset turns instruction/response pairs into dataset records,
// writes them to disk, and renders the dataset card uploaded alongside them.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/snail/internal/extract"
	"github.com/pdiddy/snail/pkg/types"
)

// ErrLengthMismatch is returned when instructions and outputs differ in length.
var ErrLengthMismatch = errors.New("instruction and output must be the same length")

// Meta is attached to every record when Enabled is set.
type Meta struct {
	Enabled bool
	Role    string
	Query   string
}

// Build pairs instructions with outputs. Duplicate instructions collapse
// into one record that keeps the first position and the last output.
func Build(instructions, outputs []string, meta Meta) ([]types.Record, error) {
	if len(instructions) != len(outputs) {
		return nil, fmt.Errorf("%w: %d instructions, %d outputs", ErrLengthMismatch, len(instructions), len(outputs))
	}

	index := make(map[string]int, len(instructions))
	records := make([]types.Record, 0, len(instructions))

	for i := range instructions {
		instruction := strings.TrimSpace(instructions[i])
		output := strings.TrimSpace(outputs[i])
		if instruction == "" {
			return nil, fmt.Errorf("record %d: empty instruction", i+1)
		}
		if output == "" {
			return nil, fmt.Errorf("record %d: empty output", i+1)
		}

		rec := types.Record{
			Instruction: instruction,
			Output:      output,
		}
		if meta.Enabled {
			seg, _ := extract.ParseCoT(output)
			rec.Thought = seg.Thought
			rec.Answer = seg.Answer
			rec.Role = meta.Role
			rec.Query = meta.Query
		}

		if at, ok := index[instruction]; ok {
			records[at] = rec
			continue
		}
		index[instruction] = len(records)
		records = append(records, rec)
	}

	return records, nil
}
