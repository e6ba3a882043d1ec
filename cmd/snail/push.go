// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snail/internal/pipeline"
)

var pushCmd = &cobra.Command{
	Use:   "push <dataset-file>",
	Short: "Upload a dataset file and its card to the Hugging Face Hub",
	Long: `Push creates the dataset repository named by --repo-id if it does not
exist, then uploads a generated dataset card as README.md and the file as
data/train.jsonl (data/train.json for alpaca) in a single commit. Any other
file under data/ from an earlier push is deleted, so the train split holds
only this file. --role and --query are recorded on the card when given.

Files are sent inline, which the hub limits to 10 MiB per file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func init() {
	fs := pushCmd.Flags()
	addHubFlags(fs)
	fs.String("role", "", "expert role to record on the dataset card")
	fs.String("query", "", "source query to record on the dataset card")
	fs.String("model", "", "model identifier to record on the dataset card")

	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if cfg.Hub.RepoID == "" {
		return fmt.Errorf("provide the target repository with --repo-id owner/name")
	}

	p := &pipeline.Pipeline{
		Publisher: newHubClient(cfg),
		Logger:    logger,
		Model:     cfg.AI.Model,
	}
	url, err := p.Publish(cmd.Context(), args[0], cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Congratulations on creating a new dataset %s\n", url)
	return nil
}
