package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ledger is the single authority on slot existence and status. All admin
// slot mutations and the public availability view go through it; claims
// are written by the Intake.
type Ledger struct {
	repo Repository
	log  *zerolog.Logger
}

func NewLedger(repo Repository, log *zerolog.Logger) *Ledger {
	return &Ledger{repo: repo, log: log}
}

// List returns slots matching the filter, ordered by (date, start_time).
func (l *Ledger) List(ctx context.Context, f SlotFilter) ([]TimeSlot, error) {
	return l.repo.ListSlots(ctx, f)
}

// Create adds a single available slot. Duplicate (date, start_time) pairs
// fail with a conflict.
func (l *Ledger) Create(ctx context.Context, spec SlotSpec) (*TimeSlot, error) {
	if !spec.Complete() {
		return nil, invalidInput("date, start_time, and end_time are required")
	}

	slot, err := l.repo.InsertSlot(ctx, spec)
	if err != nil {
		return nil, err
	}

	l.log.Info().
		Str("slot_id", slot.ID.String()).
		Str("date", slot.Date).
		Str("start_time", slot.StartTime).
		Msg("slot created")

	return slot, nil
}

// CreateBulk processes each spec independently: incomplete specs and
// duplicates are skipped and counted, everything else is created. The
// batch never fails as a whole for partial invalid input.
func (l *Ledger) CreateBulk(ctx context.Context, specs []SlotSpec) (*BulkResult, error) {
	if len(specs) == 0 {
		return nil, invalidInput("slots array is required")
	}

	res := &BulkResult{}
	for _, spec := range specs {
		if !spec.Complete() {
			res.Skipped++
			continue
		}
		if _, err := l.repo.InsertSlot(ctx, spec); err != nil {
			if KindOf(err) == KindConflict {
				res.Skipped++
				continue
			}
			return nil, err
		}
		res.Created++
	}

	l.log.Info().
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Msg("bulk slot creation finished")

	return res, nil
}

// Delete removes a slot, but only while it is unclaimed. A pending or
// confirmed slot must have its claim released first.
func (l *Ledger) Delete(ctx context.Context, id uuid.UUID) error {
	if err := l.repo.DeleteAvailableSlot(ctx, id); err != nil {
		return err
	}

	l.log.Info().Str("slot_id", id.String()).Msg("slot deleted")
	return nil
}

// SetStatus applies an admin status transition. The ledger trusts the
// caller's choice of target status; the available/booked_by pairing is
// kept intact by the store. A non-nil bookedBy restores a prior claim
// (undoing a cancellation); nil leaves the existing claimant untouched.
func (l *Ledger) SetStatus(ctx context.Context, id uuid.UUID, status SlotStatus, bookedBy *uuid.UUID) (*TimeSlot, error) {
	if !ValidSlotStatus(status) {
		return nil, invalidInput("invalid status %q, must be: available, pending, or confirmed", status)
	}

	slot, err := l.repo.UpdateSlotStatus(ctx, id, status, bookedBy)
	if err != nil {
		return nil, err
	}

	l.log.Info().
		Str("slot_id", id.String()).
		Str("status", string(status)).
		Msg("slot status updated")

	return slot, nil
}
