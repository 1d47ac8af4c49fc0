package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fordzamo/Spaced-Repitition/internal/backup"
	"github.com/Fordzamo/Spaced-Repitition/internal/config"
	"github.com/Fordzamo/Spaced-Repitition/internal/db"
	"github.com/Fordzamo/Spaced-Repitition/internal/snapshot"
)

const dataFile = "questions.json"

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the collection to questions.json and commit it",
	Long: `Export every tracked problem to questions.json in the data
directory and commit it to the git repository there (initializing one on
first use). When an 'origin' remote is configured the commit is pushed;
a failed push is reported but the local commit still stands.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		if err := runSnapshot(store); err != nil {
			fmt.Println("❌", err)
			return
		}
	},
}

// runSnapshot exports the collection and commits the data file. Shared by
// the backup command and the post-review auto-snapshot.
func runSnapshot(store *db.Store) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	questions, err := store.ListQuestions()
	if err != nil {
		return fmt.Errorf("cannot export collection: %w", err)
	}

	path := filepath.Join(dir, dataFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", dataFile, err)
	}
	if err := backup.Export(questions, f); err != nil {
		f.Close()
		return fmt.Errorf("cannot export collection: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	res, err := snapshot.Commit(dir, dataFile, "updated "+dataFile, time.Now())
	if err != nil {
		return err
	}
	logger.Debug("snapshot finished",
		zap.Bool("committed", res.Committed), zap.String("hash", res.Hash))

	switch {
	case !res.Committed:
		fmt.Println("✅ Nothing to commit; backup already up to date.")
	case res.PushErr != nil:
		fmt.Printf("✅ Committed %s locally.\n", dataFile)
		fmt.Println("⚠️ Push failed:", res.PushErr)
	case res.Pushed:
		fmt.Println("✅ Changes committed and pushed.")
	default:
		fmt.Printf("✅ Committed %s.\n", dataFile)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
