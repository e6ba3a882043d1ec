// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/snail/internal/cot"
	"github.com/pdiddy/snail/internal/preview"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the grounded search and print the answer with its sources",
	Long: `Search sends --query to Gemini with the Google Search tool enabled and the
expert --role system instruction. The grounded answer is printed along with
the web sources it cites. Use --out to keep the answer for "snail extract".`,
	RunE: runSearch,
}

func init() {
	fs := searchCmd.Flags()
	addModelFlags(fs)
	addSearchFlags(fs)
	fs.String("out", "", "also write the answer text to this file")
	fs.Bool("json", false, "print the full result as JSON")
	fs.Bool("preview", false, "render the answer as a panel")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if cfg.Search.Query == "" {
		return fmt.Errorf("provide a search query with --query")
	}

	instr := cfg.Search.SystemInstruction
	if instr == "" {
		if instr, err = cot.SearchInstruction(cfg.Search.Role); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	client, err := newGeminiClient(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := client.Search(ctx, cfg.Search.Query, instr)
	if err != nil {
		return err
	}

	if out := viper.GetString("out"); out != "" {
		if err := os.WriteFile(out, []byte(res.Text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
	}

	switch {
	case viper.GetBool("json"):
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case viper.GetBool("preview"):
		return preview.New(os.Stdout, 0, true).Search(res)
	}

	fmt.Println(res.Text)
	if len(res.Citations) > 0 {
		fmt.Println("\nSources:")
		for i, c := range res.Citations {
			fmt.Printf("%d. %s %s\n", i+1, c.Title, c.URI)
		}
	}
	return nil
}
