package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/file"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

type previewReport struct {
	File    string          `json:"file"`
	Rows    int             `json:"rows"`
	Valid   int             `json:"valid"`
	Invalid int             `json:"invalid"`
	Items   []app.RowOutput `json:"items"`
}

func newPreviewCmd() *cobra.Command {
	var (
		credits   int
		mediaType string
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Decode and normalize a local spreadsheet without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if credits < 0 {
				return fmt.Errorf("credits must be non-negative, got %d", credits)
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			source := file.NewLocalSource(filepath.Dir(path))
			data, err := source.ReadAll(cmd.Context(), filepath.Base(path))
			if err != nil {
				return err
			}

			if mediaType == "" {
				mediaType = file.MediaTypeFor(path)
			}
			rows, err := spreadsheet.DecodeRows(data, mediaType)
			if err != nil {
				return err
			}

			report := previewReport{File: args[0], Rows: len(rows), Items: app.PreviewRows(rows, credits)}
			for _, item := range report.Items {
				if len(item.Missing) == 0 {
					report.Valid++
				} else {
					report.Invalid++
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().IntVar(&credits, "credits", 0, "default credits applied to rows without a credits column")
	cmd.Flags().StringVar(&mediaType, "type", "", "media type override (text/csv or an xlsx type)")
	return cmd
}
