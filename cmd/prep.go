package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fordzamo/Spaced-Repitition/internal/config"
)

var prepOff bool

var prepCmd = &cobra.Command{
	Use:   "prep [company]",
	Short: "Toggle company prep mode",
	Long: `Activate company prep mode for the given company: problems NOT
tagged with it get their retention target scaled by
company_prep_retention_factor, loosening their review cadence so the
targeted ones dominate the queue. Use --off to deactivate.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.Path()
		if err != nil {
			fmt.Println("❌", err)
			return
		}

		if prepOff {
			settings.CompanyPrepMode = false
			settings.CompanyPrepTarget = ""
			if err := config.Save(path, settings); err != nil {
				fmt.Println("❌ Could not save config:", err)
				return
			}
			fmt.Println("Company Prep Mode deactivated")
			return
		}

		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			fmt.Println("❌ Provide a company to prep for, or --off to deactivate")
			return
		}

		settings.CompanyPrepMode = true
		settings.CompanyPrepTarget = strings.TrimSpace(args[0])
		if err := config.Save(path, settings); err != nil {
			fmt.Println("❌ Could not save config:", err)
			return
		}
		fmt.Printf("Company Prep Mode activated for %s (off-target factor: %.2f)\n",
			settings.CompanyPrepTarget, settings.CompanyPrepRetentionFactor)
	},
}

func init() {
	rootCmd.AddCommand(prepCmd)
	prepCmd.Flags().BoolVar(&prepOff, "off", false, "Deactivate company prep mode")
}
