package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/services"
)

// ResolveRecipientsCmd creates the resolveRecipients command
func ResolveRecipientsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolveRecipients <event_id>",
		Short: "Resolve an event request's recipient references to names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			resolved, err := services.ResolveRecipients(app.Ctx, app.Store, app.Logger, eventID)
			if err != nil {
				return err
			}

			fmt.Printf("\nRecipients for event %d:\n\n", eventID)
			for _, r := range resolved {
				fmt.Printf("- %-30s [%s]  (%s)\n", r.Name, r.Kind, r.Ref)
			}
			fmt.Println()

			return nil
		},
	}
}
