package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/services"
)

// PublishRosterCmd creates the publishRoster command
func PublishRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishRoster",
		Short: "Publish the staffing roster for scheduled events to Google Sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.Sheets()
			if err != nil {
				return err
			}

			result, err := services.PublishRoster(app.Ctx, app.Store, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster published\n\n")
			fmt.Printf("Spreadsheet: %s\n", result.SpreadsheetID)
			fmt.Printf("Tab:         %s\n", result.Tab)
			fmt.Printf("Events:      %d\n\n", result.EventCount)

			return nil
		},
	}
}
