package main

import (
	"fmt"
	"text/tabwriter"

	"etude/internal/config"
	"etude/internal/services/fees"

	"github.com/spf13/cobra"
)

// loadSchedule prefers an explicit file, then FEE_SCHEDULE_PATH, then the
// compiled-in edition.
func loadSchedule(path string) (*fees.Schedule, error) {
	if path == "" {
		path = config.GetEnv("FEE_SCHEDULE_PATH", "")
	}
	return fees.ScheduleFromPath(path)
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect the fee schedule",
	}
	cmd.AddCommand(scheduleValidateCmd())
	cmd.AddCommand(scheduleJurisdictionsCmd())
	return cmd
}

func scheduleValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a schedule file for consistency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			s, err := loadSchedule(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schedule %s valid: %d brackets, %d jurisdictions\n",
				s.Version, len(s.Brackets), len(s.Jurisdictions()))
			return nil
		},
	}
}

func scheduleJurisdictionsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "jurisdictions",
		Short: "List départements with their transfer tax rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSchedule(file)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tRATE\t2025 INCREASE")
			for _, j := range s.Jurisdictions() {
				increase := "no"
				if j.IncreaseEligible2025 {
					increase = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.Code, j.Name, fees.FormatPercent(j.BaseRatePercent, 2), increase)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "schedule file (default: FEE_SCHEDULE_PATH or built-in)")
	return cmd
}
