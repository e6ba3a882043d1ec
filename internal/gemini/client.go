// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gemini calls the Gemini API for the two model-backed stages: a
// grounded search that uses the Google Search tool, and plain generation
// with a system instruction.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pdiddy/snail/pkg/types"
)

const defaultMaxOutputTokens = 2048

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

// contentGenerator is the subset of *genai.Models used here. Tests supply a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client issues search and generation requests against one model.
type Client struct {
	models          contentGenerator
	model           string
	maxOutputTokens int32
	logger          *zap.Logger
}

// NewClient validates cfg and connects to the Gemini API backend.
func NewClient(ctx context.Context, cfg types.AIConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is missing or empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model ID is missing or empty")
	}
	if cfg.MaxOutputTokens < 0 {
		return nil, fmt.Errorf("max output tokens must be greater than zero, got %d", cfg.MaxOutputTokens)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return newClient(gc.Models, cfg, logger), nil
}

func newClient(models contentGenerator, cfg types.AIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}
	logger.Debug("gemini client ready",
		zap.String("model", cfg.Model),
		zap.Int32("max_output_tokens", maxTokens))
	return &Client{
		models:          models,
		model:           cfg.Model,
		maxOutputTokens: maxTokens,
		logger:          logger,
	}
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string { return c.model }

// Search asks the model to answer query using the Google Search tool and
// returns the grounded text along with its citations.
func (c *Client) Search(ctx context.Context, query, systemInstruction string) (types.SearchResult, error) {
	if query == "" {
		return types.SearchResult{}, fmt.Errorf("search query is missing or empty")
	}

	cfg := &genai.GenerateContentConfig{
		Tools:              []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseModalities: []string{"TEXT"},
		MaxOutputTokens:    c.maxOutputTokens,
	}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(query), cfg)
	if err != nil {
		return types.SearchResult{}, fmt.Errorf("grounded search: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return types.SearchResult{}, fmt.Errorf("grounded search: %w", ErrEmptyResponse)
	}

	result := types.SearchResult{
		Text:  text,
		Usage: usage(resp),
	}
	result.Citations, result.Queries = grounding(resp)

	c.logger.Info("search completed",
		zap.Int("chars", len(text)),
		zap.Int("citations", len(result.Citations)),
		zap.Strings("web_queries", result.Queries),
		zap.Int32("total_tokens", result.Usage.TotalTokens))

	return result, nil
}

// Generate sends prompt with the given system instruction and returns the
// model's text response.
func (c *Client) Generate(ctx context.Context, systemInstruction, prompt string) (types.Completion, error) {
	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return types.Completion{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return types.Completion{}, fmt.Errorf("generate content: %w", ErrEmptyResponse)
	}

	return types.Completion{Text: text, Usage: usage(resp)}, nil
}

func usage(resp *genai.GenerateContentResponse) types.Usage {
	if resp.UsageMetadata == nil {
		return types.Usage{}
	}
	return types.Usage{
		PromptTokens:    resp.UsageMetadata.PromptTokenCount,
		CandidateTokens: resp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:     resp.UsageMetadata.TotalTokenCount,
	}
}

// grounding collects web citations (deduplicated by URI) and search queries
// from every candidate's grounding metadata.
func grounding(resp *genai.GenerateContentResponse) ([]types.Citation, []string) {
	var citations []types.Citation
	var queries []string
	seen := make(map[string]bool)

	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		gm := cand.GroundingMetadata
		queries = append(queries, gm.WebSearchQueries...)
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			if seen[chunk.Web.URI] {
				continue
			}
			seen[chunk.Web.URI] = true
			citations = append(citations, types.Citation{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return citations, queries
}
