// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/snail/internal/cot"
	"github.com/pdiddy/snail/internal/pipeline"
	"github.com/pdiddy/snail/internal/preview"
	"github.com/pdiddy/snail/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search, generate Chain-of-Thought responses, write the dataset, and optionally upload it",
	Long: `Run executes the whole pipeline: a grounded search for --query, extraction
of the numbered items in the answer, one Chain-of-Thought generation per
item (paused by --delay), and a dataset file in --output-dir. When --repo-id
is set the file and a dataset card are pushed to the Hugging Face Hub.`,
	Example: `  snail run --role "theoretical physicist" \
    --query "List 3 hard problems in physics, list them" \
    --repo-id alice/physics-cot --preview`,
	RunE: runRun,
}

func init() {
	fs := runCmd.Flags()
	addModelFlags(fs)
	addSearchFlags(fs)
	addHubFlags(fs)
	fs.String("cot-instruction", "", "override the Chain-of-Thought system instruction")
	fs.String("cot-instruction-file", "", "template file for the Chain-of-Thought system instruction ({{.Role}} is available)")
	fs.Duration("delay", cot.DefaultDelay, "pause between generation calls")
	fs.String("output-dir", defaultOutputDir, "directory for the dataset file")
	fs.String("format", string(types.FormatJSONL), "dataset format: jsonl or alpaca")
	fs.Bool("metadata", false, "add thought, answer, role and query fields to each record")
	fs.Bool("preview", false, "render search output and records as panels")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if path := viper.GetString("cot-instruction-file"); path != "" && cfg.CoT.SystemInstruction == "" {
		if cfg.CoT.SystemInstruction, err = cot.InstructionFromFile(path, cfg.Search.Role); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	client, err := newGeminiClient(ctx, cfg)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Searcher:  client,
		Generator: client,
		Logger:    logger,
		Model:     client.Model(),
		Now:       time.Now,
	}
	if cfg.Hub.RepoID != "" {
		p.Publisher = newHubClient(cfg)
	}
	if viper.GetBool("preview") {
		p.Observer = &panelObserver{r: preview.New(os.Stdout, 0, true), logger: logger}
	}

	res, err := p.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d records to %s\n", len(res.Records), res.Path)
	if res.DatasetURL != "" {
		fmt.Printf("Congratulations on creating a new dataset %s\n", res.DatasetURL)
	}
	return nil
}

// panelObserver renders each pipeline stage as it completes. A failed render
// is logged and does not stop the run.
type panelObserver struct {
	r      *preview.Renderer
	logger *zap.Logger
}

func (o *panelObserver) Searched(res types.SearchResult) { o.warn("search", o.r.Search(res)) }
func (o *panelObserver) Extracted(items []string)        { o.warn("instructions", o.r.Instructions(items)) }
func (o *panelObserver) Built(records []types.Record)    { o.warn("records", o.r.Records(records)) }

func (o *panelObserver) warn(panel string, err error) {
	if err != nil {
		o.logger.Warn("rendering preview panel failed", zap.String("panel", panel), zap.Error(err))
	}
}
