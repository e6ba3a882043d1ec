// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the snail dataset
// generator: search results, model completions, dataset records, and the
// per-stage configuration.
package types

// Citation is a web source the search service grounded its answer on.
type Citation struct {
	// Title is the page title reported by the grounding metadata.
	Title string `json:"title" yaml:"title"`

	// URI is the source address (often a redirect URI issued by the provider).
	URI string `json:"uri" yaml:"uri"`
}

// Usage reports token counts for a single model call.
type Usage struct {
	PromptTokens    int32 `json:"prompt_tokens" yaml:"prompt_tokens"`
	CandidateTokens int32 `json:"candidate_tokens" yaml:"candidate_tokens"`
	TotalTokens     int32 `json:"total_tokens" yaml:"total_tokens"`
}

// SearchResult is the grounded free-form answer returned by the search stage.
type SearchResult struct {
	// Text is the model's grounded answer, typically a numbered list.
	Text string `json:"text" yaml:"text"`

	// Citations lists the distinct web sources backing Text, in first-seen order.
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Queries are the web search queries the model issued.
	Queries []string `json:"queries,omitempty" yaml:"queries,omitempty"`

	Usage Usage `json:"usage" yaml:"usage"`
}

// Completion is a single text response from the generative model.
type Completion struct {
	Text  string `json:"text" yaml:"text"`
	Usage Usage  `json:"usage" yaml:"usage"`
}
