package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/db"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

var (
	editLink      string
	editCategory  string
	editTags      string
	editRetention float64
)

var editCmd = &cobra.Command{
	Use:   "edit [name]",
	Short: "Edit a problem's details",
	Long: `Edit a problem's link, category, company tags or retention target.
Scheduling state and review history are never touched by edit.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		q, err := store.GetQuestion(args[0])
		if err != nil {
			fmt.Println("❌", err)
			return
		}

		if cmd.Flags().Changed("link") {
			q.Link = editLink
		}
		if cmd.Flags().Changed("category") {
			category, err := models.ParseCategory(editCategory)
			if err != nil {
				fmt.Println("❌", err)
				return
			}
			q.Category = category
		}
		if cmd.Flags().Changed("tags") {
			var tags []string
			for _, part := range strings.Split(editTags, ",") {
				if t := strings.TrimSpace(part); t != "" {
					tags = append(tags, t)
				}
			}
			q.CompanyTags = tags
		}
		if cmd.Flags().Changed("retention") {
			if editRetention <= 0 || editRetention >= 1 {
				fmt.Println("❌ Retention must be between 0 and 1 (e.g. 0.85)")
				return
			}
			q.RetentionTarget = editRetention
		}

		if err := store.UpdateDetails(*q); err != nil {
			fmt.Println("❌ Error updating problem:", err)
			return
		}
		fmt.Printf("🔄 Updated '%s'\n", q.Name)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editLink, "link", "l", "", "New problem URL")
	editCmd.Flags().StringVar(&editCategory, "category", "", "New category")
	editCmd.Flags().StringVarP(&editTags, "tags", "t", "", "Replacement company tags (comma-separated)")
	editCmd.Flags().Float64VarP(&editRetention, "retention", "r", 0, "New retention target")
}
