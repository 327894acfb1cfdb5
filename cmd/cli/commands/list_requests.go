package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// ListRequestsCmd creates the listRequests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	var statuses []string

	cmd := &cobra.Command{
		Use:   "listRequests",
		Short: "List event requests, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := make([]model.Status, 0, len(statuses))
			for _, raw := range statuses {
				status := model.Status(raw)
				if !status.IsValid() {
					return fmt.Errorf("unknown status %q", raw)
				}
				filter = append(filter, status)
			}

			events, err := app.Store.ListEventRequests(app.Ctx, filter...)
			if err != nil {
				return fmt.Errorf("failed to list event requests: %w", err)
			}

			fmt.Printf("\nFound %d event requests:\n\n", len(events))
			for _, e := range events {
				date := e.ScheduledEventDate
				if date == "" {
					date = e.RequestedDate
				}
				fmt.Printf("- #%d  %-10s  %s  %s (%d staffed)\n",
					e.ID, e.Status, date, e.OrganizerName, e.StaffingCount())
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable)")
	return cmd
}
