package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"sift/internal/services"
)

var filterLabels []string

var filterCmd = &cobra.Command{
	Use:   "filter [text...]",
	Short: "Check texts against content filter labels",
	Long: `Evaluates every filter label against every text argument and reports
per-filter scores. A text is flagged when any filter matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(filterLabels) == 0 {
			return fmt.Errorf("at least one filter is required (use --filters)")
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		filterService := services.NewFilterService(appInstance.Embedder)
		results, err := filterService.FilterTexts(cmd.Context(), args, filterLabels)
		if err != nil {
			return fmt.Errorf("filtering failed: %w", err)
		}

		flaggedText := color.New(color.FgRed, color.Bold).Sprint("FLAGGED")
		cleanText := color.New(color.FgGreen).Sprint("clean")

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Text", "Filter", "Score", "Matched", "Verdict"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, r := range results {
			verdict := cleanText
			if r.IsFlagged {
				verdict = flaggedText
			}
			for _, m := range r.Matches {
				table.Append([]string{r.Text, m.FilterName, fmt.Sprintf("%.4f", m.Score), fmt.Sprintf("%v", m.Matched), verdict})
			}
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringSliceVarP(&filterLabels, "filters", "f", nil, "Filter labels (comma-separated or repeated)")
}
