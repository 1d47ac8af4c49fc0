package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/db"
)

var dueCompany string

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show problems due for review today",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		all, err := store.ListQuestions()
		if err != nil {
			fmt.Println("❌ Error listing problems:", err)
			return
		}

		mgr := newManager()
		day := today()
		due := mgr.Due(all, day, dueCompany)

		if len(due) == 0 {
			fmt.Println("✅ No problems due today! Good job.")
			return
		}

		fmt.Printf("🔥 %d due today:\n\n", len(due))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, " \tProblem\tCategory\tNext Review\tTags")
		fmt.Fprintln(w, " \t-------\t--------\t-----------\t----")
		for _, q := range due {
			checkbox := "[ ]"
			if mgr.AlreadyReviewed(q, day) {
				checkbox = "[x]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				checkbox, q.Name, q.Category, q.NextReview, strings.Join(q.CompanyTags, ", "))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
	dueCmd.Flags().StringVarP(&dueCompany, "company", "c", "", "Only show problems tagged with this company")
}
