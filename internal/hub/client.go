// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hub uploads datasets to the Hugging Face Hub through its REST API:
// repository creation and single-commit multi-file uploads.
package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/snail/internal/httputil"
)

// DefaultEndpoint is the public hub.
const DefaultEndpoint = "https://huggingface.co"

const (
	repoTypeDataset = "dataset"
	defaultBranch   = "main"
	cardPath        = "README.md"
	dataDir         = "data"
)

// Client talks to one hub endpoint with a write token.
type Client struct {
	Endpoint string
	Token    string
	HTTP     *http.Client
	Logger   *zap.Logger
}

// File is one file of a commit.
type File struct {
	// Path is the destination path inside the repository.
	Path    string
	Content []byte
}

// ParseRepoID splits "owner/name" and validates both parts.
func ParseRepoID(repoID string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repoID, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository ID %q must be in the form owner/name", repoID)
	}
	return owner, name, nil
}

// DatasetURL returns the browsable URL of a dataset repository.
func (c *Client) DatasetURL(repoID string) string {
	return c.endpoint() + "/datasets/" + repoID
}

// CreateRepo creates a dataset repository. A repository that already exists
// is not an error. It returns the repository URL.
func (c *Client) CreateRepo(ctx context.Context, repoID string, private bool) (string, error) {
	owner, name, err := ParseRepoID(repoID)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]any{
		"type":         repoTypeDataset,
		"name":         name,
		"organization": owner,
		"private":      private,
	})
	if err != nil {
		return "", fmt.Errorf("encoding create request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/repos/create", "application/json", body)
	if err != nil {
		return "", err
	}

	resp, err := httputil.Do(ctx, c.HTTP, req)
	if err != nil {
		if httputil.StatusCode(err) == http.StatusConflict {
			c.logger().Info("dataset repository already exists", zap.String("repo", repoID))
			return c.DatasetURL(repoID), nil
		}
		return "", fmt.Errorf("creating repository %s: %w", repoID, err)
	}
	defer resp.Body.Close()

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.URL == "" {
		return c.DatasetURL(repoID), nil
	}
	c.logger().Info("dataset repository created", zap.String("repo", repoID), zap.String("url", out.URL))
	return out.URL, nil
}

// MaxInlineSize is the largest file the commit endpoint accepts inline.
// Bigger files need an LFS upload, which this client does not do.
const MaxInlineSize = 10 << 20

// ErrFileTooLarge is returned for a commit file above MaxInlineSize.
var ErrFileTooLarge = errors.New("file exceeds the hub's inline upload limit")

// commitLine is one NDJSON line of a commit request.
type commitLine struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type commitFile struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
}

type commitDeletion struct {
	Path string `json:"path"`
}

// treeEntry is one item of a repository tree listing.
type treeEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// ListFiles returns the paths of the files under dir on the main branch. A
// directory that does not exist yields no files.
func (c *Client) ListFiles(ctx context.Context, repoID, dir string) ([]string, error) {
	if _, _, err := ParseRepoID(repoID); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/datasets/%s/tree/%s/%s?recursive=true",
		repoID, url.PathEscape(defaultBranch), strings.Trim(dir, "/"))
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := httputil.Do(ctx, c.HTTP, req)
	if err != nil {
		if httputil.StatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s in %s: %w", dir, repoID, err)
	}
	defer resp.Body.Close()

	var entries []treeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding tree of %s: %w", repoID, err)
	}
	var files []string
	for _, e := range entries {
		if e.Type == "file" {
			files = append(files, e.Path)
		}
	}
	return files, nil
}

// Commit uploads files to the main branch of a dataset repository in a
// single commit and removes the paths in deletions.
func (c *Client) Commit(ctx context.Context, repoID, summary string, files []File, deletions []string) error {
	if _, _, err := ParseRepoID(repoID); err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("commit to %s has no files", repoID)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(commitLine{Key: "header", Value: commitHeader{Summary: summary}}); err != nil {
		return fmt.Errorf("encoding commit header: %w", err)
	}
	for _, f := range files {
		if f.Path == "" {
			return fmt.Errorf("commit file has empty path")
		}
		if len(f.Content) > MaxInlineSize {
			return fmt.Errorf("%s is %d bytes, limit %d: %w", f.Path, len(f.Content), MaxInlineSize, ErrFileTooLarge)
		}
		line := commitLine{Key: "file", Value: commitFile{
			Content:  base64.StdEncoding.EncodeToString(f.Content),
			Path:     f.Path,
			Encoding: "base64",
		}}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("encoding %s: %w", f.Path, err)
		}
	}
	for _, d := range deletions {
		if err := enc.Encode(commitLine{Key: "deletedFile", Value: commitDeletion{Path: d}}); err != nil {
			return fmt.Errorf("encoding deletion of %s: %w", d, err)
		}
	}

	path := fmt.Sprintf("/api/datasets/%s/commit/%s", repoID, url.PathEscape(defaultBranch))
	req, err := c.newRequest(ctx, http.MethodPost, path, "application/x-ndjson", buf.Bytes())
	if err != nil {
		return err
	}

	resp, err := httputil.Do(ctx, c.HTTP, req)
	if err != nil {
		return fmt.Errorf("committing to %s: %w", repoID, err)
	}
	defer resp.Body.Close()

	var out struct {
		CommitURL string `json:"commitUrl"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	c.logger().Info("commit pushed",
		zap.String("repo", repoID),
		zap.Int("files", len(files)),
		zap.Int("deleted", len(deletions)),
		zap.String("commit_url", out.CommitURL))
	return nil
}

// DataPath is where Push stores a dataset file: data/train with the local
// file's extension. A fixed name makes each push replace the train split.
func DataPath(localPath string) string {
	return dataDir + "/train" + filepath.Ext(localPath)
}

// Push creates the dataset repository if needed and uploads the card as
// README.md and the dataset file as DataPath. Any other file under data/,
// left by an earlier push, is deleted in the same commit. It returns the
// dataset URL.
func (c *Client) Push(ctx context.Context, localPath, repoID, card string, private bool) (string, error) {
	if localPath == "" {
		return "", fmt.Errorf("the dataset file path must be provided and cannot be empty")
	}
	if repoID == "" {
		return "", fmt.Errorf("the repository ID must be provided and cannot be empty")
	}
	if c.Token == "" {
		return "", fmt.Errorf("a hub token is required to push %s", repoID)
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("reading dataset %s: %w", localPath, err)
	}
	if len(data) > MaxInlineSize {
		return "", fmt.Errorf("dataset %s is %d bytes, limit %d: %w", localPath, len(data), MaxInlineSize, ErrFileTooLarge)
	}

	repoURL, err := c.CreateRepo(ctx, repoID, private)
	if err != nil {
		return "", err
	}

	target := DataPath(localPath)
	existing, err := c.ListFiles(ctx, repoID, dataDir)
	if err != nil {
		return "", err
	}
	var stale []string
	for _, p := range existing {
		if p != target {
			stale = append(stale, p)
		}
	}
	if len(stale) > 0 {
		c.logger().Info("replacing earlier data files", zap.String("repo", repoID), zap.Strings("paths", stale))
	}

	files := []File{{Path: target, Content: data}}
	if card != "" {
		files = append([]File{{Path: cardPath, Content: []byte(card)}}, files...)
	}

	summary := "Upload " + filepath.Base(localPath)
	if err := c.Commit(ctx, repoID, summary, files, stale); err != nil {
		return "", err
	}
	return repoURL, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint()+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) endpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return strings.TrimRight(c.Endpoint, "/")
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
