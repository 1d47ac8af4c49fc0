package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fordzamo/Spaced-Repitition/internal/dates"
	"github.com/Fordzamo/Spaced-Repitition/internal/db"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
	"github.com/Fordzamo/Spaced-Repitition/internal/session"
)

var (
	reviewCompany string
	reviewOpen    bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session",
	Long: `Start a review session over every problem due today, in category
priority order. Problems already reviewed today are listed as done and not
prompted again. With --company only problems carrying that tag are shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := db.NewStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		all, err := store.ListQuestions()
		if err != nil {
			fmt.Println("❌ Error fetching problems:", err)
			return
		}

		mgr := newManager()
		day := today()
		due := mgr.Due(all, day, reviewCompany)

		pending := 0
		for _, q := range due {
			if !mgr.AlreadyReviewed(q, day) {
				pending++
			}
		}
		if pending == 0 {
			fmt.Println("✅ No problems to review today!")
			return
		}

		fmt.Printf("🔥 %d to review today:\n\n", pending)
		for _, q := range due {
			checkbox := "[ ]"
			if mgr.AlreadyReviewed(q, day) {
				checkbox = "[x]"
			}
			fmt.Printf("%s %s (%s)\n", checkbox, q.Name, q.Category)
		}

		reader := bufio.NewReader(os.Stdin)
		reviewed := 0

		for _, q := range due {
			if mgr.AlreadyReviewed(q, day) {
				continue
			}
			if reviewQuestion(reader, store, mgr, q, day) {
				reviewed++
			}
		}

		fmt.Printf("\n🎉 Session complete! %d reviewed, %d skipped.\n", reviewed, pending-reviewed)

		if settings.AutoSnapshot && reviewed > 0 {
			if err := runSnapshot(store); err != nil {
				// The reviews are saved; losing the snapshot is a warning.
				fmt.Println("⚠️ Snapshot failed:", err)
			}
		}
	},
}

// reviewQuestion runs one problem's prompt cycle. Returns false when the
// user skips; a skipped problem stays due.
func reviewQuestion(reader *bufio.Reader, store *db.Store, mgr *session.Manager, q models.Question, day dates.Day) bool {
	fmt.Println("\n========================================")
	fmt.Printf("Review \"%s\" (%s)?\n", q.Name, q.Category)
	if q.Link != "" {
		fmt.Printf("Link: %s\n", q.Link)
	}
	fmt.Print("(yes/no): ")
	answer, _ := reader.ReadString('\n')
	if strings.Contains(strings.ToLower(strings.TrimSpace(answer)), "n") {
		fmt.Printf("Skipped '%s'. It remains due for review.\n", q.Name)
		return false
	}

	if reviewOpen && q.Link != "" {
		fmt.Println("🌐 Opening link in browser...")
		openBrowser(q.Link)
	}

	// Solving time is the wall clock from here to the rating.
	start := time.Now()
	rating := promptRating(reader, q.Name)
	minutes := time.Since(start).Minutes()

	fmt.Printf("Explain the solution to '%s' as if teaching someone else: ", q.Name)
	explanation, _ := reader.ReadString('\n')
	explanation = strings.TrimSpace(explanation)

	out, err := mgr.RecordReview(q, rating, minutes, explanation, day)
	if err != nil {
		fmt.Println("⚠️ Could not record review:", err)
		return false
	}

	if err := store.SaveReview(out.Question); err != nil {
		// Surfaced but non-fatal: the session continues with the rest.
		fmt.Println("⚠️ Could not save review:", err)
		logger.Warn("review not persisted", zap.String("question", q.Name), zap.Error(err))
		return false
	}

	printRetentionGoal(out.Question)
	fmt.Printf("Old Stability: %.2f -> New Stability: %.2f\n", out.OldStability, out.NewStability)
	fmt.Printf("Old Difficulty: %.2f -> New Difficulty: %.2f\n", out.OldDifficulty, out.NewDifficulty)
	fmt.Printf("Next review: %s (%d days)\n", out.NextReview, out.Question.Interval)
	return true
}

func printRetentionGoal(q models.Question) {
	if q.RetentionRate == nil {
		return
	}
	delta := (*q.RetentionRate - q.RetentionTarget) * 100
	if delta >= 0 {
		fmt.Printf("You're hitting your retention goal! You're up by %.2f%%!\n", delta)
	} else {
		fmt.Printf("You're not hitting your retention goal. You're down by %.2f%%!\n", -delta)
	}
}

func promptRating(reader *bufio.Reader, name string) int {
	for {
		fmt.Printf("Rate your recall of '%s' (1: total failure -> 5: perfect): ", name)
		input, _ := reader.ReadString('\n')
		rating, err := strconv.Atoi(strings.TrimSpace(input))
		if err == nil && models.ValidRating(rating) {
			return rating
		}
		fmt.Println("⚠️ Invalid input. Please enter a whole number from 1 to 5.")
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	if err != nil {
		fmt.Printf("❌ Failed to open browser: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVarP(&reviewCompany, "company", "c", "", "Only review problems tagged with this company")
	reviewCmd.Flags().BoolVarP(&reviewOpen, "open", "o", false, "Open problem link in browser")
}
