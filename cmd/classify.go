package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"sift/internal/services"
)

var classifyCategories []string

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify texts against a set of category labels",
	Long: `Assigns each text argument to the best-matching category by embedding
similarity. Categories are given with --categories and exist only for
the duration of the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(classifyCategories) == 0 {
			return fmt.Errorf("at least one category is required (use --categories)")
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		classifier := services.NewClassifierService(appInstance.Embedder)
		if err := classifier.AddCategories(cmd.Context(), classifyCategories); err != nil {
			return fmt.Errorf("error registering categories: %w", err)
		}
		results, err := classifier.ClassifyBatch(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Text", "Category", "Score"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, r := range results {
			table.Append([]string{r.Text, r.Category, fmt.Sprintf("%.4f", r.SimilarityScore)})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringSliceVarP(&classifyCategories, "categories", "c", nil, "Category labels (comma-separated or repeated)")
}
