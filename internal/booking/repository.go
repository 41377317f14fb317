package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository contains all storage interactions needed by the ledger and
// the intake. Implementations must keep the status/booked_by pairing
// invariant: a slot is available exactly when booked_by is null.
type Repository interface {
	ListSlots(ctx context.Context, f SlotFilter) ([]TimeSlot, error)
	GetSlotByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error)

	// InsertSlot fails with ErrDuplicateSlot when a slot with the same
	// (date, start_time) already exists.
	InsertSlot(ctx context.Context, spec SlotSpec) (*TimeSlot, error)

	// DeleteAvailableSlot fails with ErrSlotNotFound for an unknown id and
	// ErrSlotClaimed when the slot is pending or confirmed.
	DeleteAvailableSlot(ctx context.Context, id uuid.UUID) error

	// UpdateSlotStatus applies an admin transition. bookedBy semantics:
	// a transition to available always clears the claim; for any other
	// status a non-nil bookedBy restores a claim and a nil bookedBy leaves
	// the existing claimant untouched.
	UpdateSlotStatus(ctx context.Context, id uuid.UUID, status SlotStatus, bookedBy *uuid.UUID) (*TimeSlot, error)

	// CreateSignup inserts the signup and, when it selects slots, claims
	// them in the same atomic unit: every selected slot must exist
	// (ErrUnknownSlots) and be available (ErrSlotsTaken), and on success
	// all of them move to pending with booked_by set to the new signup.
	// Two concurrent calls selecting overlapping slots can never both
	// succeed.
	CreateSignup(ctx context.Context, s *Signup) error

	ListSignups(ctx context.Context) ([]Signup, error)
}
