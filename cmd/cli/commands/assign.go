package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "assign <event_id> <role> <participant_ids>",
		Short: "Assign participants to an event request role",
		Long: `Assign one or more participants to a staffing role (driver, speaker,
or volunteer). Participant ids are comma-separated and may be traditional
numeric ids, user ids, volunteer-<id>, host-contact-<id>, or
custom-<timestamp>-<name> entries. Already assigned participants are kept
and their assignment records are never rewritten.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}
			role := model.Role(args[1])
			ids := strings.Split(args[2], ",")

			result, err := services.AssignParticipants(app.Ctx, app.Store, app.Logger, eventID, role, ids, actor, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Assignment saved\n\n")
			fmt.Printf("Event:    %d\n", result.EventID)
			fmt.Printf("Role:     %s\n", result.Role)
			fmt.Printf("Added:    %d\n", len(result.Added))
			fmt.Printf("Assigned: %s\n\n", strings.Join(result.Names, ", "))

			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "User id recorded as the assigner")
	return cmd
}

// RemoveAssignmentCmd creates the removeAssignment command
func RemoveAssignmentCmd(app *AppContext) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "removeAssignment <event_id> <role> <participant_id>",
		Short: "Remove one participant from an event request role",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			result, err := services.RemoveAssignment(app.Ctx, app.Store, app.Logger, eventID,
				model.Role(args[1]), args[2], actor, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Assignment removed\n\n")
			fmt.Printf("Event:     %d\n", result.EventID)
			fmt.Printf("Role:      %s\n", result.Role)
			fmt.Printf("Remaining: %s\n\n", strings.Join(result.Names, ", "))

			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "User id recorded as the remover")
	return cmd
}

// SetVanDriverCmd creates the setVanDriver command
func SetVanDriverCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setVanDriver <event_id> [driver_id]",
		Short: "Set or clear the van driver slot for an event request",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			driverID := ""
			if len(args) == 2 {
				driverID = args[1]
			}

			if err := services.SetVanDriver(app.Ctx, app.Store, app.Logger, eventID, driverID); err != nil {
				return err
			}

			if driverID == "" {
				fmt.Printf("\n✓ Van driver cleared for event %d\n\n", eventID)
			} else {
				fmt.Printf("\n✓ Van driver set to %s for event %d\n\n", driverID, eventID)
			}
			return nil
		},
	}
}
