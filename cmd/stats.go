package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/db"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review statistics and retention progress",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		stats, err := store.Stats(today())
		if err != nil {
			fmt.Println("❌ Error fetching stats:", err)
			return
		}

		fmt.Println("\n📊 Performance Overview")
		fmt.Println("=======================")
		fmt.Printf("Total Problems:     %d\n", stats.TotalQuestions)
		fmt.Printf("Total Reviews:      %d\n", stats.TotalReviews)
		fmt.Printf("Reviews Last 7D:    %d\n", stats.ReviewsLast7Days)
		fmt.Printf("Average Rating:     %.2f\n", stats.AverageRating)

		if stats.AverageRetention > 0 {
			fmt.Printf("Observed Retention: %.2f%%\n", stats.AverageRetention*100)
			fmt.Printf("Target Retention:   %.2f%%\n", settings.DefaultRetention*100)
			diff := (stats.AverageRetention - settings.DefaultRetention) * 100
			if diff >= 0 {
				fmt.Printf("You're above your retention goal by %.2f%%! 🎯\n", diff)
			} else {
				fmt.Printf("You're below your retention goal by %.2f%%.\n", -diff)
			}
		}

		fmt.Println("\n📈 Problems by Category")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Category\tCount\t")
		fmt.Fprintln(w, "--------\t-----\t")
		for _, c := range models.Categories {
			count := stats.CountByCategory[c]
			if count == 0 {
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", c, count, strings.Repeat("█", count))
		}
		w.Flush()
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
