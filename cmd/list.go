package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/db"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked problems, grouped by category",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		questions, err := store.ListQuestions()
		if err != nil {
			fmt.Println("❌ Error listing problems:", err)
			return
		}
		if len(questions) == 0 {
			fmt.Println("No problems added yet.")
			return
		}

		grouped := make(map[models.Category][]models.Question)
		for _, q := range questions {
			grouped[q.Category] = append(grouped[q.Category], q)
		}
		categories := make([]models.Category, 0, len(grouped))
		for c := range grouped {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool {
			return categories[i].Priority() < categories[j].Priority()
		})

		fmt.Println("📚 All tracked problems (by category priority):")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range categories {
			fmt.Fprintf(w, "\n%s:\n", c)
			for _, q := range grouped[c] {
				retention := "–"
				if q.RetentionRate != nil {
					retention = fmt.Sprintf("%.0f%%", *q.RetentionRate*100)
				}
				fmt.Fprintf(w, "  %s\tnext: %s\tstability: %.2f\tretention: %s\ttags: %s\n",
					q.Name, q.NextReview, q.Stability, retention, strings.Join(q.CompanyTags, ", "))
			}
		}
		w.Flush()
		fmt.Printf("\nTotal: %d problems\n", len(questions))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
