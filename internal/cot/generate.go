// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cot produces Chain-of-Thought responses for a list of enumerated
// items, one sequential model call per item.
package cot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/snail/pkg/types"
)

// DefaultDelay is the pause between consecutive generation calls.
const DefaultDelay = 5 * time.Second

// Generator abstracts the generative model so tests can supply a fake.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (types.Completion, error)
}

// Result pairs an item with the model's response to it.
type Result struct {
	Item     string
	Response string
	Usage    types.Usage
}

// sleep waits for d or until ctx is done. Tests override it.
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// GenerateAll calls gen once per item with systemInstruction, pausing delay
// between calls. Results are returned in item order. The first failed call
// aborts the run.
func GenerateAll(ctx context.Context, gen Generator, systemInstruction string, items []string, delay time.Duration, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, 0, len(items))
	var total int32

	for i, item := range items {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("waiting before item %d: %w", i+1, err)
			}
		}

		if strings.TrimSpace(item) == "" {
			return nil, fmt.Errorf("item %d is empty", i+1)
		}

		resp, err := gen.Generate(ctx, systemInstruction, item)
		if err != nil {
			return nil, fmt.Errorf("processing item %d %q: %w", i+1, item, err)
		}

		logger.Info("generated response",
			zap.Int("item", i+1),
			zap.Int("of", len(items)),
			zap.String("data", item),
			zap.Int("response_chars", len(resp.Text)),
			zap.Int32("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int32("candidate_tokens", resp.Usage.CandidateTokens))
		logger.Debug("response body", zap.Int("item", i+1), zap.String("response", resp.Text))

		total += resp.Usage.TotalTokens
		results = append(results, Result{Item: item, Response: resp.Text, Usage: resp.Usage})
	}

	logger.Info("chain-of-thought generation finished",
		zap.Int("items", len(results)),
		zap.Int32("total_tokens", total))

	return results, nil
}

// Split separates results into parallel item and response slices.
func Split(results []Result) (items, responses []string) {
	items = make([]string, len(results))
	responses = make([]string, len(results))
	for i, r := range results {
		items[i] = r.Item
		responses[i] = r.Response
	}
	return items, responses
}
