package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fordzamo/Spaced-Repitition/internal/config"
	"github.com/Fordzamo/Spaced-Repitition/internal/dates"
	"github.com/Fordzamo/Spaced-Repitition/internal/fsrs"
	"github.com/Fordzamo/Spaced-Repitition/internal/logging"
	"github.com/Fordzamo/Spaced-Repitition/internal/session"
)

var (
	verbose  bool
	settings config.Settings
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spaced",
	Short: "Spaced repetition scheduling for LeetCode practice",
	Long: `Spaced schedules reviews of practice problems with a forgetting-curve
memory model: each review updates the problem's stability and difficulty,
and the next review lands when predicted recall drops to your retention
target.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(verbose)

		path, err := config.Path()
		if err != nil {
			return err
		}
		settings, err = config.Load(path)
		if err != nil {
			// Scheduling is meaningless without a retention target.
			return fmt.Errorf("%w\nSet default_retention in %s (e.g. 0.85) or SPACED_DEFAULT_RETENTION", err, path)
		}
		logger.Debug("config loaded",
			zap.String("path", path),
			zap.Float64("default_retention", settings.DefaultRetention),
			zap.Bool("company_prep_mode", settings.CompanyPrepMode))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// today is the current review day under the fixed day-offset convention.
func today() dates.Day {
	return dates.Today(time.Now())
}

func newManager() *session.Manager {
	return session.NewManager(fsrs.New(fsrs.DefaultWeights), settings)
}
