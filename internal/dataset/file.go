// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/snail/pkg/types"
)

const filePrefix = "transformed_qa_"

// maxLineSize bounds a single JSONL row when reading a dataset back.
const maxLineSize = 16 << 20

// FileName returns the dataset file name for a run started at now.
func FileName(format types.DatasetFormat, now time.Time) string {
	ext := ".jsonl"
	if format == types.FormatAlpaca {
		ext = ".json"
	}
	return filePrefix + now.Format("20060102_150405") + ext
}

// Write serializes records into dir and returns the file path. An empty
// format means JSONL.
func Write(dir string, records []types.Record, format types.DatasetFormat, now time.Time) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no records to write")
	}
	if format == "" {
		format = types.FormatJSONL
	}
	if format != types.FormatJSONL && format != types.FormatAlpaca {
		return "", fmt.Errorf("unknown dataset format %q (want jsonl or alpaca)", format)
	}
	for i, r := range records {
		if !r.Valid() {
			return "", fmt.Errorf("record %d: instruction and output must be non-empty", i+1)
		}
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := Encode(records, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(format, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return path, nil
}

// Encode renders records in the given format without HTML escaping.
func Encode(records []types.Record, format types.DatasetFormat) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	switch format {
	case types.FormatAlpaca:
		enc.SetIndent("", "  ")
		if records == nil {
			records = []types.Record{}
		}
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("encoding dataset: %w", err)
		}
	default:
		for i, r := range records {
			if err := enc.Encode(r); err != nil {
				return nil, fmt.Errorf("encoding record %d: %w", i+1, err)
			}
		}
	}
	return buf.Bytes(), nil
}

// Read loads a dataset written by Write. A file whose first non-blank byte
// is '[' is read as a JSON array; anything else as JSON Lines.
func Read(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []types.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return records, nil
	}

	var records []types.Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		row := bytes.TrimSpace(sc.Bytes())
		if len(row) == 0 {
			continue
		}
		var r types.Record
		if err := json.Unmarshal(row, &r); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}
