package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/db"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

var (
	addLink      string
	addTags      string
	addRetention float64
)

var addCmd = &cobra.Command{
	Use:   "add [name] [category]",
	Short: "Add a new problem to track",
	Long: `Add a new problem. The category must be one of the known topics
(run with a bogus category to see the list). The problem starts with the
model's initial memory state and comes up for review tomorrow.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.TrimSpace(args[0])
		if name == "" {
			fmt.Println("❌ Problem name cannot be empty")
			return
		}

		category, err := models.ParseCategory(args[1])
		if err != nil {
			fmt.Println("❌", err)
			return
		}

		if addRetention != 0 && (addRetention <= 0 || addRetention >= 1) {
			fmt.Println("❌ Retention must be between 0 and 1 (e.g. 0.85)")
			return
		}

		var tags []string
		if addTags != "" {
			for _, part := range strings.Split(addTags, ",") {
				if t := strings.TrimSpace(part); t != "" {
					tags = append(tags, t)
				}
			}
		}

		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		q := newManager().NewQuestion(name, addLink, category, tags, addRetention, today())

		if err := store.AddQuestion(q); err != nil {
			if errors.Is(err, db.ErrDuplicateQuestion) {
				fmt.Printf("❌ '%s' is already tracked. Names are permanent keys; pick another.\n", name)
				return
			}
			fmt.Println("❌ Error adding problem:", err)
			return
		}

		fmt.Printf("✅ Added '%s' (%s). First review: %s\n", name, category, q.NextReview)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addLink, "link", "l", "", "URL to the problem")
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "", "Comma-separated company tags (e.g. Google,Meta)")
	addCmd.Flags().Float64VarP(&addRetention, "retention", "r", 0, "Retention target for this problem (default: config default_retention)")
}
