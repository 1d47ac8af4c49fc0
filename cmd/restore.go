package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/backup"
	"github.com/Fordzamo/Spaced-Repitition/internal/db"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Replace the collection from a questions.json export",
	Long: `Replace every tracked problem with the contents of a
questions.json export. A malformed file restores an empty collection
rather than failing, so run 'spaced backup' first if in doubt.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Println("❌ Cannot open file:", err)
			return
		}
		defer f.Close()

		questions, err := backup.Import(f)
		if errors.Is(err, backup.ErrMalformed) {
			fmt.Println("⚠️ File is malformed; restoring an empty collection.")
			questions = nil
		} else if err != nil {
			fmt.Println("❌ Cannot read file:", err)
			return
		}

		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		if err := store.ReplaceAll(questions); err != nil {
			fmt.Println("❌ Error restoring collection:", err)
			return
		}
		fmt.Printf("✅ Restored %d problems.\n", len(questions))
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
