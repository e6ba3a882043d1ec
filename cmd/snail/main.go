// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the snail CLI, which builds
// Chain-of-Thought datasets from grounded model output and uploads them to
// the Hugging Face Hub.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/snail/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials from .secrets/ and .env, loaded at startup.
	loadedSecrets map[string]string

	logger = zap.NewNop()
)

// rootCmd is the base command for the snail CLI.
var rootCmd = &cobra.Command{
	Use:   "snail",
	Short: "Generate Chain-of-Thought datasets with Gemini and publish them to the Hugging Face Hub",
	Long: `snail asks a Gemini model to research a topic with Google Search grounding,
extracts the numbered items from the answer, generates a Chain-of-Thought
response (<thought> and <answer> segments) for each item, and writes the
pairs as a JSON Lines dataset that can be uploaded to the Hugging Face Hub.

Each stage is also available as its own subcommand: search, extract,
preview, and push.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"), viper.GetBool("log-json"))
		if err != nil {
			return err
		}
		logger = l

		dir, err := secrets.Load(viper.GetString("secrets-dir"), logger)
		if err != nil {
			return err
		}
		env, err := secrets.LoadEnvFile(viper.GetString("env-file"))
		if err != nil {
			return err
		}
		loadedSecrets = secrets.Merge(env, dir)
		if len(loadedSecrets) > 0 {
			names := secrets.Names(loadedSecrets)
			sort.Strings(names)
			logger.Debug("loaded secrets", zap.Strings("keys", names))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./snail.yaml or ~/.config/snail/snail.yaml)")
	pf.Bool("verbose", false, "enable debug logging")
	pf.Bool("log-json", false, "emit logs as JSON")
	pf.String("secrets-dir", ".secrets", "directory of credential files (gemini-api-key, hf-token)")
	pf.String("env-file", ".env", "dotenv file with GEMINI_API_KEY and HF_TOKEN")

	for _, name := range []string{"verbose", "log-json", "secrets-dir", "env-file"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snail")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "snail"))
		}
	}

	viper.SetEnvPrefix("SNAIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger on stderr, or a JSON one when asked.
func newLogger(verbose, asJSON bool) (*zap.Logger, error) {
	var cfg zap.Config
	if asJSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
