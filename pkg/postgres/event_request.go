package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

const dateFormat = "2006-01-02"

const eventRequestColumns = `
	id, version, status,
	requested_date, scheduled_event_date, is_confirmed, start_time, end_time, pickup_at,
	assigned_driver_ids, driver_details,
	assigned_speaker_ids, speaker_details,
	assigned_volunteer_ids, volunteer_details,
	van_driver_id,
	recipient_refs, address, sandwiches, estimated_attendance,
	organizer_name, organizer_email, organizer_phone, tsp_user_id, tsp_custom, notes,
	toolkit_sent_at, toolkit_sent_by, scheduled_call_at, last_contact_at,
	follow_up_one_day_completed, follow_up_one_day_at,
	follow_up_one_month_completed, follow_up_one_month_at,
	postponed_at, created_at, updated_at`

// GetEventRequest retrieves a single event request by id
func (d *DB) GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+eventRequestColumns+` FROM event_request WHERE id = $1`, id)

	event, err := scanEventRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event request %d: %w", id, db.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event request %d: %w", id, err)
	}
	return event, nil
}

// ListEventRequests retrieves event requests, optionally filtered by status
func (d *DB) ListEventRequests(ctx context.Context, statuses ...model.Status) ([]model.EventRequest, error) {
	query := `SELECT ` + eventRequestColumns + ` FROM event_request`
	args := []any{}
	if len(statuses) > 0 {
		statusStrings := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrings[i] = string(s)
		}
		query += ` WHERE status = ANY($1)`
		args = append(args, statusStrings)
	}
	query += ` ORDER BY id`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event requests: %w", err)
	}
	defer rows.Close()

	var events []model.EventRequest
	for rows.Next() {
		event, err := scanEventRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event request: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event requests: %w", err)
	}

	return events, nil
}

// CreateEventRequest inserts a new event request in state new and returns
// the server-assigned id
func (d *DB) CreateEventRequest(ctx context.Context, event *model.EventRequest) (int64, error) {
	driverDetails, err := json.Marshal(emptyDetails(event.DriverDetails))
	if err != nil {
		return 0, fmt.Errorf("failed to encode driver details: %w", err)
	}
	speakerDetails, err := json.Marshal(emptyDetails(event.SpeakerDetails))
	if err != nil {
		return 0, fmt.Errorf("failed to encode speaker details: %w", err)
	}
	volunteerDetails, err := json.Marshal(emptyDetails(event.VolunteerDetails))
	if err != nil {
		return 0, fmt.Errorf("failed to encode volunteer details: %w", err)
	}
	sandwiches, err := json.Marshal(event.Sandwiches)
	if err != nil {
		return 0, fmt.Errorf("failed to encode sandwich count: %w", err)
	}

	var id int64
	err = d.pool.QueryRow(ctx, `
		INSERT INTO event_request (
			status, requested_date, scheduled_event_date, is_confirmed, start_time, end_time, pickup_at,
			assigned_driver_ids, driver_details,
			assigned_speaker_ids, speaker_details,
			assigned_volunteer_ids, volunteer_details,
			van_driver_id, recipient_refs, address, sandwiches, estimated_attendance,
			organizer_name, organizer_email, organizer_phone, tsp_user_id, tsp_custom, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24
		) RETURNING id
	`,
		string(model.StatusNew),
		nullableDate(event.RequestedDate), nullableDate(event.ScheduledEventDate),
		event.IsConfirmed, event.StartTime, event.EndTime, event.PickupAt,
		emptySlice(event.AssignedDriverIDs), driverDetails,
		emptySlice(event.AssignedSpeakerIDs), speakerDetails,
		emptySlice(event.AssignedVolunteerIDs), volunteerDetails,
		event.VanDriverID, emptySlice(event.RecipientRefs), event.Address, sandwiches, event.EstimatedAttendance,
		event.OrganizerName, event.OrganizerEmail, event.OrganizerPhone,
		event.TSP.UserID, event.TSP.Custom, event.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event request: %w", err)
	}

	return id, nil
}

// UpdateEventRequest applies a partial update guarded by an optimistic
// version check. A zero-row result means either the record is gone or the
// snapshot the caller merged against is stale; the two are distinguished
// with a follow-up existence probe.
func (d *DB) UpdateEventRequest(ctx context.Context, id int64, update db.EventRequestUpdate, expectedVersion int64) error {
	set := []string{"version = version + 1", "updated_at = NOW()"}
	args := []any{id, expectedVersion}

	addSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		addSet("status", string(*update.Status))
	}
	if update.RequestedDate != nil {
		addSet("requested_date", nullableDate(*update.RequestedDate))
	}
	if update.ScheduledEventDate != nil {
		addSet("scheduled_event_date", nullableDate(*update.ScheduledEventDate))
	}
	if update.IsConfirmed != nil {
		addSet("is_confirmed", *update.IsConfirmed)
	}
	if update.StartTime != nil {
		addSet("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		addSet("end_time", *update.EndTime)
	}
	if update.PickupAt != nil {
		addSet("pickup_at", *update.PickupAt)
	}
	if update.AssignedDriverIDs != nil {
		addSet("assigned_driver_ids", emptySlice(*update.AssignedDriverIDs))
	}
	if update.DriverDetails != nil {
		encoded, err := json.Marshal(*update.DriverDetails)
		if err != nil {
			return fmt.Errorf("failed to encode driver details: %w", err)
		}
		addSet("driver_details", encoded)
	}
	if update.AssignedSpeakerIDs != nil {
		addSet("assigned_speaker_ids", emptySlice(*update.AssignedSpeakerIDs))
	}
	if update.SpeakerDetails != nil {
		encoded, err := json.Marshal(*update.SpeakerDetails)
		if err != nil {
			return fmt.Errorf("failed to encode speaker details: %w", err)
		}
		addSet("speaker_details", encoded)
	}
	if update.AssignedVolunteerIDs != nil {
		addSet("assigned_volunteer_ids", emptySlice(*update.AssignedVolunteerIDs))
	}
	if update.VolunteerDetails != nil {
		encoded, err := json.Marshal(*update.VolunteerDetails)
		if err != nil {
			return fmt.Errorf("failed to encode volunteer details: %w", err)
		}
		addSet("volunteer_details", encoded)
	}
	if update.VanDriverID != nil {
		addSet("van_driver_id", *update.VanDriverID)
	}
	if update.RecipientRefs != nil {
		addSet("recipient_refs", emptySlice(*update.RecipientRefs))
	}
	if update.Address != nil {
		addSet("address", *update.Address)
	}
	if update.Sandwiches != nil {
		encoded, err := json.Marshal(*update.Sandwiches)
		if err != nil {
			return fmt.Errorf("failed to encode sandwich count: %w", err)
		}
		addSet("sandwiches", encoded)
	}
	if update.EstimatedAttendance != nil {
		addSet("estimated_attendance", *update.EstimatedAttendance)
	}
	if update.OrganizerName != nil {
		addSet("organizer_name", *update.OrganizerName)
	}
	if update.OrganizerEmail != nil {
		addSet("organizer_email", *update.OrganizerEmail)
	}
	if update.OrganizerPhone != nil {
		addSet("organizer_phone", *update.OrganizerPhone)
	}
	if update.TSP != nil {
		addSet("tsp_user_id", update.TSP.UserID)
		addSet("tsp_custom", update.TSP.Custom)
	}
	if update.Notes != nil {
		addSet("notes", *update.Notes)
	}
	if update.ToolkitSentAt != nil {
		addSet("toolkit_sent_at", *update.ToolkitSentAt)
	}
	if update.ToolkitSentBy != nil {
		addSet("toolkit_sent_by", *update.ToolkitSentBy)
	}
	if update.ScheduledCallAt != nil {
		addSet("scheduled_call_at", *update.ScheduledCallAt)
	}
	if update.LastContactAt != nil {
		addSet("last_contact_at", *update.LastContactAt)
	}
	if update.FollowUpOneDayCompleted != nil {
		addSet("follow_up_one_day_completed", *update.FollowUpOneDayCompleted)
	}
	if update.FollowUpOneDayAt != nil {
		addSet("follow_up_one_day_at", *update.FollowUpOneDayAt)
	}
	if update.FollowUpOneMonthCompleted != nil {
		addSet("follow_up_one_month_completed", *update.FollowUpOneMonthCompleted)
	}
	if update.FollowUpOneMonthAt != nil {
		addSet("follow_up_one_month_at", *update.FollowUpOneMonthAt)
	}
	if update.PostponedAt != nil {
		addSet("postponed_at", *update.PostponedAt)
	} else if update.ClearPostponedAt {
		set = append(set, "postponed_at = NULL")
	}

	query := fmt.Sprintf(
		`UPDATE event_request SET %s WHERE id = $1 AND version = $2`,
		strings.Join(set, ", "),
	)

	tag, err := d.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event request %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM event_request WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check event request %d: %w", id, err)
		}
		if !exists {
			return fmt.Errorf("event request %d: %w", id, db.ErrNotFound)
		}
		return fmt.Errorf("event request %d: %w", id, db.ErrVersionConflict)
	}

	return nil
}

// InsertAssignmentAudits appends audit rows in a single transaction
func (d *DB) InsertAssignmentAudits(ctx context.Context, audits []db.AssignmentAudit) error {
	if len(audits) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, audit := range audits {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment_audit (id, event_id, role, participant_id, name, action, actor_id, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, audit.ID, audit.EventID, audit.Role, audit.ParticipantID, audit.Name, audit.Action, audit.ActorID, audit.OccurredAt)
		if err != nil {
			return fmt.Errorf("failed to insert assignment audit: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanEventRequest(row pgx.Row) (*model.EventRequest, error) {
	var (
		e                                               model.EventRequest
		requestedDate, scheduledEventDate               *time.Time
		driverDetails, speakerDetails, volunteerDetails []byte
		sandwiches                                      []byte
	)

	err := row.Scan(
		&e.ID, &e.Version, &e.Status,
		&requestedDate, &scheduledEventDate, &e.IsConfirmed, &e.StartTime, &e.EndTime, &e.PickupAt,
		&e.AssignedDriverIDs, &driverDetails,
		&e.AssignedSpeakerIDs, &speakerDetails,
		&e.AssignedVolunteerIDs, &volunteerDetails,
		&e.VanDriverID,
		&e.RecipientRefs, &e.Address, &sandwiches, &e.EstimatedAttendance,
		&e.OrganizerName, &e.OrganizerEmail, &e.OrganizerPhone, &e.TSP.UserID, &e.TSP.Custom, &e.Notes,
		&e.ToolkitSentAt, &e.ToolkitSentBy, &e.ScheduledCallAt, &e.LastContactAt,
		&e.FollowUpOneDayCompleted, &e.FollowUpOneDayAt,
		&e.FollowUpOneMonthCompleted, &e.FollowUpOneMonthAt,
		&e.PostponedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if requestedDate != nil {
		e.RequestedDate = requestedDate.Format(dateFormat)
	}
	if scheduledEventDate != nil {
		e.ScheduledEventDate = scheduledEventDate.Format(dateFormat)
	}

	if err := json.Unmarshal(driverDetails, &e.DriverDetails); err != nil {
		return nil, fmt.Errorf("failed to decode driver details: %w", err)
	}
	if err := json.Unmarshal(speakerDetails, &e.SpeakerDetails); err != nil {
		return nil, fmt.Errorf("failed to decode speaker details: %w", err)
	}
	if err := json.Unmarshal(volunteerDetails, &e.VolunteerDetails); err != nil {
		return nil, fmt.Errorf("failed to decode volunteer details: %w", err)
	}
	if err := json.Unmarshal(sandwiches, &e.Sandwiches); err != nil {
		return nil, fmt.Errorf("failed to decode sandwich count: %w", err)
	}

	return &e, nil
}

// nullableDate maps an empty date string to NULL
func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emptySlice keeps array columns NOT NULL by writing {} instead of NULL
func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyDetails(m map[string]model.AssignmentDetail) map[string]model.AssignmentDetail {
	if m == nil {
		return map[string]model.AssignmentDetail{}
	}
	return m
}
