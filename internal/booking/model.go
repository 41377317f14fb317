package booking

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotPending   SlotStatus = "pending"
	SlotConfirmed SlotStatus = "confirmed"
)

// ValidSlotStatus reports whether s is one of the three slot states.
func ValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotAvailable, SlotPending, SlotConfirmed:
		return true
	}
	return false
}

// TimeSlot is a bookable interval on the calendar. Date is YYYY-MM-DD and
// the time fields are HH:MM, matching how the public site renders them.
// BookedBy is nil exactly when Status is available.
type TimeSlot struct {
	ID        uuid.UUID  `json:"id"`
	Date      string     `json:"date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Status    SlotStatus `json:"status"`
	BookedBy  *uuid.UUID `json:"booked_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// SlotSpec is the per-item input for creation, single or bulk.
type SlotSpec struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Complete reports whether all three scheduling fields are present.
func (s SlotSpec) Complete() bool {
	return s.Date != "" && s.StartTime != "" && s.EndTime != ""
}

// SlotFilter narrows a slot listing. Start and End are inclusive date
// bounds; empty strings mean unbounded.
type SlotFilter struct {
	Start         string
	End           string
	AvailableOnly bool
}

// Signup is a visitor's submitted booking or interest request. One schema
// covers both intake flows: a booking submission fills Location and either
// SelectedSlots or NoAvailability, a plain interest submission fills the
// free-text Availability instead. SelectedSlots is a snapshot of the slot
// ids claimed at submission time; the slots' own booked_by column is the
// source of truth afterwards.
type Signup struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          *string     `json:"phone,omitempty"`
	Experience     *float64    `json:"experience,omitempty"`
	Location       *string     `json:"location,omitempty"`
	Availability   *string     `json:"availability,omitempty"`
	SelectedSlots  []uuid.UUID `json:"selected_slots,omitempty"`
	NoAvailability bool        `json:"no_availability"`
	Message        *string     `json:"message,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// BooksSlots reports whether the signup goes through the slot-booking flow.
func (s *Signup) BooksSlots() bool {
	return len(s.SelectedSlots) > 0 || s.NoAvailability
}

// BulkResult reports best-effort bulk creation counts.
type BulkResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
