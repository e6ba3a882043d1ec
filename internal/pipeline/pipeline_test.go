// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snail/internal/dataset"
	"github.com/pdiddy/snail/pkg/types"
)

const searchText = `Here are three hard problems in physics:
1. **Quantum gravity** Reconcile general relativity with quantum mechanics.
2. **Dark matter** Identify the particle content of dark matter.
3. **Arrow of time** Explain why time has a direction.
`

// --- fakes ---

type fakeSearcher struct {
	result types.SearchResult
	err    error
	query  string
	system string
}

func (f *fakeSearcher) Search(_ context.Context, query, systemInstruction string) (types.SearchResult, error) {
	f.query, f.system = query, systemInstruction
	return f.result, f.err
}

type echoGenerator struct {
	system  string
	prompts []string
	err     error
}

func (g *echoGenerator) Generate(_ context.Context, systemInstruction, prompt string) (types.Completion, error) {
	g.system = systemInstruction
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return types.Completion{}, g.err
	}
	return types.Completion{Text: "<thought>reasoning about " + prompt + "</thought>\n<answer>answer</answer>"}, nil
}

type fakePublisher struct {
	path, repoID, card string
	private            bool
	err                error
}

func (f *fakePublisher) Push(_ context.Context, localPath, repoID, card string, private bool) (string, error) {
	f.path, f.repoID, f.card, f.private = localPath, repoID, card, private
	if f.err != nil {
		return "", f.err
	}
	return "https://hub.test/datasets/" + repoID, nil
}

type recordingObserver struct {
	searched  bool
	extracted []string
	built     int
}

func (o *recordingObserver) Searched(types.SearchResult)  { o.searched = true }
func (o *recordingObserver) Extracted(items []string)     { o.extracted = items }
func (o *recordingObserver) Built(records []types.Record) { o.built = len(records) }

func testConfig(dir string) types.PipelineConfig {
	return types.PipelineConfig{
		Search:  types.SearchConfig{Role: "theoretical physicist", Query: "List 3 hard problems in physics, list them"},
		Dataset: types.DatasetConfig{OutputDir: dir, Format: types.FormatJSONL},
	}
}

func fixedNow() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

// --- tests ---

func TestRunWithoutUpload(t *testing.T) {
	dir := t.TempDir()
	s := &fakeSearcher{result: types.SearchResult{Text: searchText}}
	g := &echoGenerator{}
	obs := &recordingObserver{}
	p := &Pipeline{Searcher: s, Generator: g, Observer: obs, Now: fixedNow}

	res, err := p.Run(context.Background(), testConfig(dir))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "List 3 hard problems in physics, list them", s.query)
	assert.Contains(t, s.system, "theoretical physicist expert with 20 years")
	assert.Contains(t, g.system, "<thought></thought>")

	require.Len(t, res.Instructions, 3)
	assert.Equal(t, "**Dark matter** Identify the particle content of dark matter.", res.Instructions[1])
	assert.Equal(t, res.Instructions, g.prompts)

	require.Len(t, res.Records, 3)
	assert.True(t, strings.HasSuffix(res.Path, "transformed_qa_20250102_030405.jsonl"))
	assert.Empty(t, res.DatasetURL)

	back, err := dataset.Read(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Records, back)

	assert.True(t, obs.searched)
	assert.Len(t, obs.extracted, 3)
	assert.Equal(t, 3, obs.built)
}

func TestRunWithUploadAndMetadata(t *testing.T) {
	dir := t.TempDir()
	pub := &fakePublisher{}
	p := &Pipeline{
		Searcher:  &fakeSearcher{result: types.SearchResult{Text: searchText}},
		Generator: &echoGenerator{},
		Publisher: pub,
		Model:     "gemini-test",
		Now:       fixedNow,
	}

	cfg := testConfig(dir)
	cfg.Dataset.Metadata = true
	cfg.Hub = types.HubConfig{RepoID: "alice/physics-cot", Private: true}

	res, err := p.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://hub.test/datasets/alice/physics-cot", res.DatasetURL)
	assert.Equal(t, res.Path, pub.path)
	assert.True(t, pub.private)
	assert.Contains(t, pub.card, "- **Developed by:** alice")
	assert.Contains(t, pub.card, "gemini-test")

	r := res.Records[0]
	assert.Equal(t, "answer", r.Answer)
	assert.True(t, strings.HasPrefix(r.Thought, "reasoning about **Quantum gravity**"))
	assert.Equal(t, "theoretical physicist", r.Role)
}

func TestRunCustomInstructions(t *testing.T) {
	s := &fakeSearcher{result: types.SearchResult{Text: searchText}}
	g := &echoGenerator{}
	p := &Pipeline{Searcher: s, Generator: g, Now: fixedNow}

	cfg := testConfig(t.TempDir())
	cfg.Search.SystemInstruction = "custom search"
	cfg.CoT.SystemInstruction = "custom cot"

	_, err := p.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "custom search", s.system)
	assert.Equal(t, "custom cot", g.system)
}

func TestRunNoListings(t *testing.T) {
	dir := t.TempDir()
	g := &echoGenerator{}
	p := &Pipeline{Searcher: &fakeSearcher{result: types.SearchResult{Text: "No list here."}}, Generator: g}

	res, err := p.Run(context.Background(), testConfig(dir))
	assert.ErrorIs(t, err, ErrNoListings)
	require.NotNil(t, res)
	assert.Equal(t, "No list here.", res.Search.Text)
	assert.Empty(t, g.prompts)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file is written")
}

func TestRunPropagatesErrors(t *testing.T) {
	boom := errors.New("service unavailable")

	t.Run("search", func(t *testing.T) {
		p := &Pipeline{Searcher: &fakeSearcher{err: boom}, Generator: &echoGenerator{}}
		_, err := p.Run(context.Background(), testConfig(t.TempDir()))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("generate", func(t *testing.T) {
		p := &Pipeline{Searcher: &fakeSearcher{result: types.SearchResult{Text: searchText}}, Generator: &echoGenerator{err: boom}}
		_, err := p.Run(context.Background(), testConfig(t.TempDir()))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("publish", func(t *testing.T) {
		p := &Pipeline{
			Searcher:  &fakeSearcher{result: types.SearchResult{Text: searchText}},
			Generator: &echoGenerator{},
			Publisher: &fakePublisher{err: boom},
		}
		cfg := testConfig(t.TempDir())
		cfg.Hub.RepoID = "alice/cot"
		res, err := p.Run(context.Background(), cfg)
		assert.ErrorIs(t, err, boom)
		require.NotNil(t, res)
		assert.FileExists(t, res.Path, "the local file survives a failed upload")
	})
}

func TestRunValidation(t *testing.T) {
	p := &Pipeline{Searcher: &fakeSearcher{}, Generator: &echoGenerator{}}

	_, err := p.Run(context.Background(), types.PipelineConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role, query")

	cfg := testConfig(t.TempDir())
	cfg.CoT.Delay = -time.Second
	_, err = p.Run(context.Background(), cfg)
	assert.Error(t, err)

	_, err = (&Pipeline{}).Run(context.Background(), testConfig(t.TempDir()))
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	dir := t.TempDir()
	path, err := dataset.Write(dir, []types.Record{{Instruction: "q", Output: "a"}}, types.FormatJSONL, fixedNow())
	require.NoError(t, err)

	pub := &fakePublisher{}
	p := &Pipeline{Publisher: pub}
	cfg := types.PipelineConfig{Hub: types.HubConfig{RepoID: "bob/ds", License: "mit"}}

	url, err := p.Publish(context.Background(), path, cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://hub.test/datasets/bob/ds", url)
	assert.Contains(t, pub.card, "- **Rows:** 1")
	assert.Contains(t, pub.card, "license: mit")

	_, err = (&Pipeline{}).Publish(context.Background(), path, cfg)
	assert.Error(t, err)
}
