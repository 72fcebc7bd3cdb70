package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"packfix/internal/archive"
	"packfix/internal/processor"
	"packfix/internal/tui"
)

const defaultArchiveName = "packfix.zip"

var packOutput string

var packCmd = &cobra.Command{
	Use:   "pack [flags] <path>",
	Short: "Fix image extensions and pack everything into a zip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, skipped, err := collectInput(args[0])
		if err != nil {
			return err
		}

		output := packOutput
		if output == "" {
			output = defaultArchiveName
		}

		out, err := os.Create(output)
		if err != nil {
			return err
		}
		zw := archive.NewZip(out)

		updates := make(chan processor.ProgressUpdate, 64)
		model := tui.NewModel(len(files), updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		outcomes, summary, runErr := processor.Run(context.Background(), files,
			processor.Options{Mode: processor.ModePack}, zw, updates)
		if runErr == nil {
			runErr = zw.Close()
		}
		close(updates)
		<-uiDone

		if closeErr := out.Close(); runErr == nil {
			runErr = closeErr
		}
		if runErr != nil {
			// No partial archive on failure.
			_ = os.Remove(output)
			return fmt.Errorf("packing failed, no archive produced: %w", runErr)
		}

		for _, outcome := range outcomes {
			if outcome.Status == processor.StatusFixed {
				fmt.Fprintf(os.Stdout, "%s %s %s %s\n",
					fixedMarkStyle.Render("~"),
					pathStyle.Render(outcome.OriginalPath),
					arrowStyle.Render("→"),
					fixedMarkStyle.Render(outcome.FinalPath),
				)
			}
		}

		rows := []tui.SummaryRow{
			{Label: "Total files", Value: fmt.Sprintf("%d", summary.Total)},
			{Label: "Processed", Value: fmt.Sprintf("%d", summary.Processed)},
			{Label: "Extensions fixed", Value: fmt.Sprintf("%d", summary.Fixed)},
			{Label: "Skipped by filter", Value: fmt.Sprintf("%d", len(skipped))},
			{Label: "Elapsed", Value: time.Since(summary.Started).Round(time.Millisecond).String()},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		outPath := output
		if abs, absErr := filepath.Abs(output); absErr == nil {
			outPath = abs
		}
		fmt.Fprintf(os.Stdout, "Archive written to: %s\n", outPath)

		return nil
	},
}

// collectInput walks the root and applies the pre-filter. An empty or
// all-filtered batch is rejected here, before any pipeline state exists.
func collectInput(root string) ([]processor.FileRecord, []processor.Outcome, error) {
	files, err := processor.Collect(root)
	if err != nil {
		return nil, nil, err
	}
	kept, skipped := processor.Filter(files)
	if len(kept) == 0 {
		return nil, nil, fmt.Errorf("nothing to process in %s: %w", root, processor.ErrNoInput)
	}
	return kept, skipped, nil
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "archive file to write (default "+defaultArchiveName+")")

	rootCmd.AddCommand(packCmd)
}
