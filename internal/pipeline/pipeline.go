// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one dataset generation: grounded search, enumeration
// extraction, per-item Chain-of-Thought generation, dataset file output, and
// an optional upload to the hub. Every stage is a single sequential call and
// the first error ends the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/snail/internal/cot"
	"github.com/pdiddy/snail/internal/dataset"
	"github.com/pdiddy/snail/internal/extract"
	"github.com/pdiddy/snail/pkg/types"
)

// ErrNoListings is returned when the search answer contains no numbered items.
var ErrNoListings = errors.New("no numbered items found in search result")

// Searcher runs a grounded search.
type Searcher interface {
	Search(ctx context.Context, query, systemInstruction string) (types.SearchResult, error)
}

// Publisher uploads a dataset file and its card.
type Publisher interface {
	Push(ctx context.Context, localPath, repoID, card string, private bool) (string, error)
}

// Observer receives intermediate stage output, e.g. for terminal previews.
// Any method may be left as a no-op.
type Observer interface {
	Searched(types.SearchResult)
	Extracted([]string)
	Built([]types.Record)
}

// Pipeline wires the external services together.
type Pipeline struct {
	Searcher  Searcher
	Generator cot.Generator
	Publisher Publisher
	Observer  Observer
	Logger    *zap.Logger

	// Model is recorded on the dataset card.
	Model string

	// Now returns the run start time; it names the dataset file.
	Now func() time.Time
}

// Result is everything one run produced.
type Result struct {
	RunID        string
	Search       types.SearchResult
	Instructions []string
	Records      []types.Record
	Path         string
	DatasetURL   string
}

// Run executes every stage for cfg. Upload happens only when cfg.Hub.RepoID
// is set.
func (p *Pipeline) Run(ctx context.Context, cfg types.PipelineConfig) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if p.Searcher == nil || p.Generator == nil {
		return nil, fmt.Errorf("pipeline requires a searcher and a generator")
	}

	res := &Result{RunID: uuid.NewString()}
	log := p.logger().With(zap.String("run_id", res.RunID))
	start := p.now()

	searchInstr := cfg.Search.SystemInstruction
	if searchInstr == "" {
		var err error
		if searchInstr, err = cot.SearchInstruction(cfg.Search.Role); err != nil {
			return nil, err
		}
	}

	log.Info("searching", zap.String("query", cfg.Search.Query), zap.String("role", cfg.Search.Role))
	sr, err := p.Searcher.Search(ctx, cfg.Search.Query, searchInstr)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	res.Search = sr
	if p.Observer != nil {
		p.Observer.Searched(sr)
	}

	res.Instructions = extract.Listings(sr.Text)
	if len(res.Instructions) == 0 {
		return res, ErrNoListings
	}
	log.Info("extracted instructions", zap.Int("count", len(res.Instructions)))
	if p.Observer != nil {
		p.Observer.Extracted(res.Instructions)
	}

	cotInstr := cfg.CoT.SystemInstruction
	if cotInstr == "" {
		if cotInstr, err = cot.Instruction(cfg.Search.Role); err != nil {
			return nil, err
		}
	}

	results, err := cot.GenerateAll(ctx, p.Generator, cotInstr, res.Instructions, cfg.CoT.Delay, log)
	if err != nil {
		return res, fmt.Errorf("generating responses: %w", err)
	}

	items, responses := cot.Split(results)
	res.Records, err = dataset.Build(items, responses, dataset.Meta{
		Enabled: cfg.Dataset.Metadata,
		Role:    cfg.Search.Role,
		Query:   cfg.Search.Query,
	})
	if err != nil {
		return res, fmt.Errorf("building dataset: %w", err)
	}
	if p.Observer != nil {
		p.Observer.Built(res.Records)
	}

	res.Path, err = dataset.Write(cfg.Dataset.OutputDir, res.Records, cfg.Dataset.Format, start)
	if err != nil {
		return res, err
	}
	log.Info("dataset written", zap.String("path", res.Path), zap.Int("records", len(res.Records)))

	if cfg.Hub.RepoID == "" {
		log.Info("no repository ID set, skipping upload")
		return res, nil
	}

	res.DatasetURL, err = p.publish(ctx, res.Path, len(res.Records), cfg)
	if err != nil {
		return res, err
	}
	log.Info("dataset uploaded", zap.String("url", res.DatasetURL))
	return res, nil
}

// Publish uploads an existing dataset file with a freshly rendered card.
func (p *Pipeline) Publish(ctx context.Context, path string, cfg types.PipelineConfig) (string, error) {
	records, err := dataset.Read(path)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("dataset %s has no records", path)
	}
	return p.publish(ctx, path, len(records), cfg)
}

func (p *Pipeline) publish(ctx context.Context, path string, n int, cfg types.PipelineConfig) (string, error) {
	if p.Publisher == nil {
		return "", fmt.Errorf("no publisher configured for %s", cfg.Hub.RepoID)
	}
	card, err := dataset.Card(dataset.CardData{
		RepoID:   cfg.Hub.RepoID,
		Records:  n,
		License:  cfg.Hub.License,
		Language: cfg.Hub.Language,
		Role:     cfg.Search.Role,
		Query:    cfg.Search.Query,
		Model:    p.Model,
	})
	if err != nil {
		return "", err
	}
	url, err := p.Publisher.Push(ctx, path, cfg.Hub.RepoID, card, cfg.Hub.Private)
	if err != nil {
		return "", fmt.Errorf("pushing dataset: %w", err)
	}
	return url, nil
}

func validate(cfg types.PipelineConfig) error {
	var missing []string
	if strings.TrimSpace(cfg.Search.Role) == "" {
		missing = append(missing, "role")
	}
	if strings.TrimSpace(cfg.Search.Query) == "" {
		missing = append(missing, "query")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if cfg.CoT.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", cfg.CoT.Delay)
	}
	return nil
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
