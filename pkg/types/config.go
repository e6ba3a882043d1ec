// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds shared settings for stages that call the generative model.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-2.0-flash-thinking-exp-01-21").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxOutputTokens caps the length of the search answer (default 2048).
	MaxOutputTokens int32 `json:"max_output_tokens" yaml:"max_output_tokens"`
}

// SearchConfig holds settings for the grounded search stage.
type SearchConfig struct {
	// Role is the expert persona used in both system instructions
	// (e.g. "theoretical physicist").
	Role string `json:"role" yaml:"role"`

	// Query is the user query sent to the search service.
	Query string `json:"query" yaml:"query"`

	// SystemInstruction overrides the rendered search instruction when set.
	SystemInstruction string `json:"system_instruction,omitempty" yaml:"system_instruction,omitempty"`
}

// CoTConfig holds settings for the per-item Chain-of-Thought stage.
type CoTConfig struct {
	// SystemInstruction overrides the rendered CoT instruction when set.
	SystemInstruction string `json:"system_instruction,omitempty" yaml:"system_instruction,omitempty"`

	// Delay is the pause between consecutive generation calls (default 5s).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// DatasetFormat selects the on-disk serialization of the dataset.
type DatasetFormat string

const (
	// FormatJSONL writes one JSON object per line.
	FormatJSONL DatasetFormat = "jsonl"

	// FormatAlpaca writes a single indented JSON array.
	FormatAlpaca DatasetFormat = "alpaca"
)

// DatasetConfig holds settings for building and writing the dataset file.
type DatasetConfig struct {
	// OutputDir is the directory the dataset file is written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format is jsonl or alpaca.
	Format DatasetFormat `json:"format" yaml:"format"`

	// Metadata adds thought, answer, role and query fields to every record.
	Metadata bool `json:"metadata" yaml:"metadata"`
}

// HubConfig holds settings for the dataset hosting service.
type HubConfig struct {
	// Endpoint is the hub base URL (default https://huggingface.co).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Token is the write token used for repo creation and commits.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// RepoID is the target repository in "owner/name" form. Uploading is
	// skipped when it is empty.
	RepoID string `json:"repo_id" yaml:"repo_id"`

	// Private creates the repository as private.
	Private bool `json:"private" yaml:"private"`

	// License and Language go into the dataset card front matter.
	License  string `json:"license,omitempty" yaml:"license,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PipelineConfig groups all stage configurations for one generation run.
type PipelineConfig struct {
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	CoT     CoTConfig     `json:"cot" yaml:"cot"`
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`
	Hub     HubConfig     `json:"hub" yaml:"hub"`
}
