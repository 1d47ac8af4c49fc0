package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/db"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a problem and its review history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		if !forceDelete {
			fmt.Printf("⚠️  Delete '%s' and all its history? (y/N): ", name)
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "y" && input != "yes" {
				fmt.Println("❌ Cancelled.")
				return
			}
		}

		if err := store.DeleteQuestion(name); err != nil {
			fmt.Println("❌", err)
			return
		}
		fmt.Printf("🗑️  Deleted '%s'\n", name)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation")
}
