package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/services"
)

// SendToolkitCmd creates the sendToolkit command
func SendToolkitCmd(app *AppContext) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "sendToolkit <event_id>",
		Short: "Email the logistics toolkit to the event organizer",
		Long: `Email the logistics toolkit to the organizer on file and stamp the
request. A new request moves into in_process; resending only refreshes
the stamp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			gmail, err := app.Gmail()
			if err != nil {
				return err
			}

			result, err := services.SendToolkit(app.Ctx, app.Store, gmail, app.Cfg, app.Logger, eventID, actor, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Toolkit sent\n\n")
			fmt.Printf("Event:  %d\n", result.EventID)
			fmt.Printf("To:     %s\n", result.SentTo)
			fmt.Printf("Status: %s\n\n", result.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "User id recorded as the sender")
	return cmd
}
