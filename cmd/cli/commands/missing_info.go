package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/services"
)

// MissingInfoCmd creates the missingInfo command
func MissingInfoCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "missingInfo <event_id>",
		Short: "Show the missing intake fields for an event request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			report, err := services.ReportIntake(app.Ctx, app.Store, app.Cfg, app.Logger, eventID, time.Now())
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}
}

// FollowUpsCmd creates the followUps command
func FollowUpsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "followUps",
		Short: "List open event requests that need a follow-up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := services.ReportOpenIntake(app.Ctx, app.Store, app.Cfg, app.Logger, time.Now())
			if err != nil {
				return err
			}

			due := 0
			for i := range reports {
				if !reports[i].FollowUp.Needed {
					continue
				}
				due++
				printReport(&reports[i])
			}

			if due == 0 {
				fmt.Printf("\nNo follow-ups due.\n\n")
			}
			return nil
		},
	}
}

func printReport(report *services.IntakeReport) {
	fmt.Printf("\nEvent %d (%s)\n", report.EventID, report.Status)

	if len(report.Missing) == 0 {
		fmt.Printf("  Intake complete\n")
	} else {
		fmt.Printf("  Missing: %s\n", strings.Join(report.Missing, ", "))
	}

	if report.FollowUp.Needed {
		fmt.Printf("  Follow-up needed: %s\n", report.FollowUp.Reason)
	}
	if !report.NextFollowUp.IsZero() {
		fmt.Printf("  Next follow-up: %s\n", report.NextFollowUp.Format("2006-01-02"))
	}
	fmt.Println()
}
