package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// ListUsers retrieves all team-member user records
func (d *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, first_name, last_name, email FROM app_user ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// ListDrivers retrieves all traditional driver records
func (d *DB) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, phone FROM driver ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []model.Driver
	for rows.Next() {
		var dr model.Driver
		if err := rows.Scan(&dr.ID, &dr.Name, &dr.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drivers: %w", err)
	}

	return drivers, nil
}

// ListVolunteers retrieves all registered volunteers
func (d *DB) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, first_name, last_name, name, email FROM volunteer ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		var v model.Volunteer
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Name, &v.Email); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		volunteers = append(volunteers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}

	return volunteers, nil
}

// ListHostLocations retrieves all host locations with their nested contacts
func (d *DB) ListHostLocations(ctx context.Context) ([]model.HostLocation, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, address, contacts FROM host_location ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query host locations: %w", err)
	}
	defer rows.Close()

	var locations []model.HostLocation
	for rows.Next() {
		var (
			loc      model.HostLocation
			contacts []byte
		)
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, &contacts); err != nil {
			return nil, fmt.Errorf("failed to scan host location: %w", err)
		}
		if err := json.Unmarshal(contacts, &loc.Contacts); err != nil {
			return nil, fmt.Errorf("failed to decode contacts for host location %d: %w", loc.ID, err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating host locations: %w", err)
	}

	return locations, nil
}

// ListRecipients retrieves all legacy recipient records
func (d *DB) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name FROM recipient ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipients: %w", err)
	}
	defer rows.Close()

	var recipients []model.Recipient
	for rows.Next() {
		var r model.Recipient
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipients: %w", err)
	}

	return recipients, nil
}
