package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/services"
)

// SetStatusCmd creates the setStatus command
func SetStatusCmd(app *AppContext) *cobra.Command {
	var (
		date   string
		reason string
	)

	cmd := &cobra.Command{
		Use:   "setStatus <event_id> <action>",
		Short: "Apply a lifecycle action to an event request",
		Long: `Apply one of the explicit lifecycle actions: begin_processing,
schedule (requires --date), complete, decline (accepts --reason),
postpone, or reactivate. Completed requests accept no further actions.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			event, err := services.ChangeStatus(app.Ctx, app.Store, app.Logger, eventID, services.ChangeStatusParams{
				Action:             services.StatusAction(args[1]),
				ScheduledEventDate: date,
				Reason:             reason,
				Now:                time.Now(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Event %d is now %s\n\n", eventID, event.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled event date (YYYY-MM-DD, schedule only)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the notes (decline only)")
	return cmd
}

// ReactivateCmd creates the reactivate command, a shortcut for
// setStatus <id> reactivate
func ReactivateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate <event_id>",
		Short: "Return a declined or postponed event request to new",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			event, err := services.ChangeStatus(app.Ctx, app.Store, app.Logger, eventID, services.ChangeStatusParams{
				Action: services.ActionReactivate,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Event %d reactivated (status %s, prior data kept)\n\n", eventID, event.Status)
			return nil
		},
	}
}
