// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/snail/internal/gemini"
	"github.com/pdiddy/snail/internal/hub"
	"github.com/pdiddy/snail/internal/secrets"
	"github.com/pdiddy/snail/pkg/types"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxTokens  = 2048
	defaultOutputDir  = "."
	defaultHubTimeout = 5 * time.Minute
)

func addModelFlags(fs *pflag.FlagSet) {
	fs.String("model", defaultModel, "Gemini model identifier")
	fs.String("api-key", "", "Gemini API key (default: .secrets/gemini-api-key or GEMINI_API_KEY)")
	fs.Int32("max-output-tokens", defaultMaxTokens, "maximum tokens in the search answer")
}

func addSearchFlags(fs *pflag.FlagSet) {
	fs.String("query", "", "search query, e.g. \"List 20 math problems from easiest to hardest and number them\"")
	fs.String("role", "", "expert role used in the system instructions, e.g. \"mathematician\"")
	fs.String("search-instruction", "", "override the search system instruction")
}

func addHubFlags(fs *pflag.FlagSet) {
	fs.String("repo-id", "", "target dataset repository (owner/name)")
	fs.Bool("private", false, "create the dataset repository as private")
	fs.String("hub-endpoint", hub.DefaultEndpoint, "Hugging Face Hub base URL")
	fs.String("hf-token", "", "Hub write token (default: .secrets/hf-token or HF_TOKEN)")
	fs.Duration("hub-timeout", defaultHubTimeout, "HTTP timeout for hub requests")
	fs.String("license", "", "dataset card license (default apache-2.0)")
	fs.String("language", "", "dataset card language (default en)")
}

// bindFlags makes the command's flags visible through viper so config file
// and SNAIL_* environment values fill any flag left unset.
func bindFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// pipelineConfig assembles the run configuration from flags, config file,
// environment, and loaded secrets.
func pipelineConfig() (types.PipelineConfig, error) {
	delay, err := durationSetting("delay")
	if err != nil {
		return types.PipelineConfig{}, err
	}
	hubTimeout, err := durationSetting("hub-timeout")
	if err != nil {
		return types.PipelineConfig{}, err
	}

	cfg := types.PipelineConfig{
		AI: types.AIConfig{
			Model:           viper.GetString("model"),
			APIKey:          viper.GetString("api-key"),
			MaxOutputTokens: viper.GetInt32("max-output-tokens"),
		},
		Search: types.SearchConfig{
			Role:              viper.GetString("role"),
			Query:             viper.GetString("query"),
			SystemInstruction: viper.GetString("search-instruction"),
		},
		CoT: types.CoTConfig{
			SystemInstruction: viper.GetString("cot-instruction"),
			Delay:             delay,
		},
		Dataset: types.DatasetConfig{
			OutputDir: viper.GetString("output-dir"),
			Format:    types.DatasetFormat(viper.GetString("format")),
			Metadata:  viper.GetBool("metadata"),
		},
		Hub: types.HubConfig{
			Endpoint: viper.GetString("hub-endpoint"),
			Token:    viper.GetString("hf-token"),
			RepoID:   viper.GetString("repo-id"),
			Private:  viper.GetBool("private"),
			License:  viper.GetString("license"),
			Language: viper.GetString("language"),
			Timeout:  hubTimeout,
		},
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = secrets.Lookup(loadedSecrets, secrets.GeminiAPIKey...)
	}
	if cfg.Hub.Token == "" {
		cfg.Hub.Token = secrets.Lookup(loadedSecrets, secrets.HubToken...)
	}

	switch cfg.Dataset.Format {
	case "", types.FormatJSONL, types.FormatAlpaca:
	default:
		return cfg, fmt.Errorf("unknown --format %q: use jsonl or alpaca", cfg.Dataset.Format)
	}
	return cfg, nil
}

// durationSetting reads a duration key such as "5s". A bare number is taken
// as seconds, so "delay: 5" in a config file means five seconds.
func durationSetting(key string) (time.Duration, error) {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: use seconds or a duration such as 5s", key, raw)
	}
	return d, nil
}

func newGeminiClient(ctx context.Context, cfg types.PipelineConfig) (*gemini.Client, error) {
	return gemini.NewClient(ctx, cfg.AI, logger.Named("gemini"))
}

func newHubClient(cfg types.PipelineConfig) *hub.Client {
	timeout := cfg.Hub.Timeout
	if timeout <= 0 {
		timeout = defaultHubTimeout
	}
	return &hub.Client{
		Endpoint: cfg.Hub.Endpoint,
		Token:    cfg.Hub.Token,
		HTTP:     &http.Client{Timeout: timeout},
		Logger:   logger.Named("hub"),
	}
}
