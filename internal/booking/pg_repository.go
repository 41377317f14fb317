package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanSlot(row pgx.Row) (*TimeSlot, error) {
	var s TimeSlot
	var bookedBy *uuid.UUID

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&bookedBy,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	s.BookedBy = bookedBy
	return &s, nil
}

func scanSignup(row pgx.Row) (*Signup, error) {
	var su Signup

	err := row.Scan(
		&su.ID,
		&su.Name,
		&su.Email,
		&su.Phone,
		&su.Experience,
		&su.Location,
		&su.Availability,
		&su.SelectedSlots,
		&su.NoAvailability,
		&su.Message,
		&su.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &su, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Interface methods

func (r *PgRepository) ListSlots(ctx context.Context, f SlotFilter) ([]TimeSlot, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, date, start_time, end_time, status, booked_by, created_at
		FROM time_slots
	`)

	var conds []string
	var args []any

	if f.Start != "" {
		args = append(args, f.Start)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.End != "" {
		args = append(args, f.End)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if f.AvailableOnly {
		conds = append(conds, "status = 'available'")
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY date, start_time")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, storageErr("list slots", err)
	}
	defer rows.Close()

	slots := []TimeSlot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, storageErr("scan slot", err)
		}
		slots = append(slots, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list slots", err)
	}

	return slots, nil
}

func (r *PgRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, start_time, end_time, status, booked_by, created_at
		FROM time_slots
		WHERE id = $1
	`, id)
	return scanSlot(row)
}

func (r *PgRepository) InsertSlot(ctx context.Context, spec SlotSpec) (*TimeSlot, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO time_slots (id, date, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, 'available', now())
		RETURNING id, date, start_time, end_time, status, booked_by, created_at
	`, id, spec.Date, spec.StartTime, spec.EndTime)

	slot, err := scanSlot(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, storageErr("insert slot", err)
	}

	return slot, nil
}

func (r *PgRepository) DeleteAvailableSlot(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin delete slot", err)
	}
	defer tx.Rollback(ctx)

	var status SlotStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM time_slots WHERE id = $1 FOR UPDATE
	`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotNotFound
		}
		return storageErr("load slot for delete", err)
	}

	if status != SlotAvailable {
		return ErrSlotClaimed
	}

	if _, err := tx.Exec(ctx, `DELETE FROM time_slots WHERE id = $1`, id); err != nil {
		return storageErr("delete slot", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit delete slot", err)
	}
	return nil
}

func (r *PgRepository) UpdateSlotStatus(ctx context.Context, id uuid.UUID, status SlotStatus, bookedBy *uuid.UUID) (*TimeSlot, error) {
	var row pgx.Row
	switch {
	case status == SlotAvailable:
		// Releasing a claim clears booked_by in the same statement.
		row = r.pool.QueryRow(ctx, `
			UPDATE time_slots
			SET status = 'available', booked_by = NULL
			WHERE id = $1
			RETURNING id, date, start_time, end_time, status, booked_by, created_at
		`, id)
	case bookedBy != nil:
		row = r.pool.QueryRow(ctx, `
			UPDATE time_slots
			SET status = $2, booked_by = $3
			WHERE id = $1
			RETURNING id, date, start_time, end_time, status, booked_by, created_at
		`, id, status, *bookedBy)
	default:
		row = r.pool.QueryRow(ctx, `
			UPDATE time_slots
			SET status = $2
			WHERE id = $1
			RETURNING id, date, start_time, end_time, status, booked_by, created_at
		`, id, status)
	}

	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, storageErr("update slot status", err)
	}

	return slot, nil
}

// CreateSignup inserts the signup and claims its selected slots in one
// transaction. The selected rows are locked with FOR UPDATE so the
// availability check and the pending write act as a single unit with
// respect to concurrent submissions.
func (r *PgRepository) CreateSignup(ctx context.Context, s *Signup) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin signup", err)
	}
	defer tx.Rollback(ctx)

	if len(s.SelectedSlots) > 0 {
		rows, err := tx.Query(ctx, `
			SELECT status
			FROM time_slots
			WHERE id = ANY($1)
			FOR UPDATE
		`, s.SelectedSlots)
		if err != nil {
			return storageErr("lock selected slots", err)
		}

		found := 0
		allAvailable := true
		for rows.Next() {
			var status SlotStatus
			if err := rows.Scan(&status); err != nil {
				rows.Close()
				return storageErr("scan slot status", err)
			}
			found++
			if status != SlotAvailable {
				allAvailable = false
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return storageErr("lock selected slots", err)
		}

		if found != len(s.SelectedSlots) {
			return ErrUnknownSlots
		}
		if !allAvailable {
			return ErrSlotsTaken
		}
	}

	s.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO signups (id, name, email, phone, experience, location, availability,
		                     selected_slots, no_availability, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		RETURNING created_at
	`, s.ID, s.Name, s.Email, s.Phone, s.Experience, s.Location, s.Availability,
		s.SelectedSlots, s.NoAvailability, s.Message).Scan(&s.CreatedAt)
	if err != nil {
		return storageErr("insert signup", err)
	}

	if len(s.SelectedSlots) > 0 {
		_, err := tx.Exec(ctx, `
			UPDATE time_slots
			SET status = 'pending', booked_by = $1
			WHERE id = ANY($2)
		`, s.ID, s.SelectedSlots)
		if err != nil {
			return storageErr("claim selected slots", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit signup", err)
	}
	return nil
}

func (r *PgRepository) ListSignups(ctx context.Context) ([]Signup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, experience, location, availability,
		       selected_slots, no_availability, message, created_at
		FROM signups
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, storageErr("list signups", err)
	}
	defer rows.Close()

	signups := []Signup{}
	for rows.Next() {
		su, err := scanSignup(rows)
		if err != nil {
			return nil, storageErr("scan signup", err)
		}
		signups = append(signups, *su)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list signups", err)
	}

	return signups, nil
}
