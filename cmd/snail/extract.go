// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snail/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract numbered list items from text",
	Long: `Extract reads text from a file (or stdin when no file or "-" is given)
and prints the text after each numbered marker ("\n1. ", "\n2. ", ...), one
item per line. With --cot, the input is treated as a single model response
and its <thought> and <answer> segments are printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("json", false, "output as JSON")
	extractCmd.Flags().Bool("cot", false, "extract <thought> and <answer> segments")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	asCoT, _ := cmd.Flags().GetBool("cot")
	w := cmd.OutOrStdout()

	if asCoT {
		seg, ok := extract.ParseCoT(string(data))
		if !ok {
			return fmt.Errorf("no <thought> or <answer> segment found")
		}
		if asJSON {
			return json.NewEncoder(w).Encode(seg)
		}
		fmt.Fprintf(w, "Thought:\n%s\n\nAnswer:\n%s\n", seg.Thought, seg.Answer)
		return nil
	}

	items := extract.Listings(string(data))
	if len(items) == 0 {
		return fmt.Errorf("no numbered items found")
	}
	if asJSON {
		return json.NewEncoder(w).Encode(items)
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
	return nil
}
