package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBank(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s (%s)\n", b.Title, b.ID)
		fmt.Fprintf(out, "%d statements, %d categories, scale %d-%d\n",
			b.Len(), b.NumCategories(), b.Scale.Min, b.Scale.Max)

		for c := range b.NumCategories() {
			cat, err := b.Category(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n[%d] %s\n", cat.Index+1, cat.Label)
			for _, q := range b.QuestionsIn(c) {
				fmt.Fprintf(out, "  %2d. %s\n", q.Index+1, q.Text)
			}
		}
		return nil
	},
}
