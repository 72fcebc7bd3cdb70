package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"packfix/internal/processor"
	"packfix/internal/tui"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Report wrong extensions without writing an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, skipped, err := collectInput(args[0])
		if err != nil {
			return err
		}

		outcomes, summary, err := processor.Run(context.Background(), files,
			processor.Options{Mode: processor.ModeScan}, nil, nil)
		if err != nil {
			return err
		}

		for _, outcome := range outcomes {
			kind := kindStyle.Render(outcome.Kind.String())
			switch outcome.Status {
			case processor.StatusFixed:
				fmt.Fprintf(os.Stdout, "%s %s [%s] %s %s\n",
					fixedMarkStyle.Render("~"),
					pathStyle.Render(outcome.OriginalPath),
					kind,
					arrowStyle.Render("→"),
					fixedMarkStyle.Render(outcome.FinalPath),
				)
			default:
				fmt.Fprintf(os.Stdout, "%s %s [%s]\n",
					dimMarkStyle.Render("-"),
					pathStyle.Render(outcome.OriginalPath),
					kind,
				)
			}
		}
		for _, outcome := range skipped {
			fmt.Fprintf(os.Stdout, "%s %s [%s]\n",
				dimMarkStyle.Render("-"),
				dimMarkStyle.Render(outcome.OriginalPath),
				dimMarkStyle.Render("skipped"),
			)
		}

		fmt.Fprintf(os.Stdout, "\n%d of %d files would be renamed.\n", summary.Fixed, summary.Processed)
		return nil
	},
}

var (
	pathStyle      = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	kindStyle      = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	fixedMarkStyle = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	arrowStyle     = lipgloss.NewStyle().Foreground(tui.ColorDim)
	dimMarkStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(scanCmd)
}
