// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/snail/internal/dataset"
	"github.com/pdiddy/snail/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <dataset-file>",
	Short: "Render the records of a dataset file as panels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.Read(args[0])
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		return preview.New(cmd.OutOrStdout(), width, false).Records(records)
	},
}

func init() {
	previewCmd.Flags().Int("width", 100, "panel width in columns")

	rootCmd.AddCommand(previewCmd)
}
