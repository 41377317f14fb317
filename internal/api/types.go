package api

import "github.com/jackwiencek/pickleball-signup/internal/booking"

type BulkCreateRequest struct {
	Slots []booking.SlotSpec `json:"slots"`
}

type UpdateSlotRequest struct {
	Status   string  `json:"status"`
	BookedBy *string `json:"booked_by,omitempty"`
}

type SubmitSignupRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          *string  `json:"phone,omitempty"`
	Experience     *float64 `json:"experience,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Availability   *string  `json:"availability,omitempty"`
	SelectedSlots  []string `json:"selected_slots,omitempty"`
	NoAvailability bool     `json:"no_availability,omitempty"`
	Message        *string  `json:"message,omitempty"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type UpsertSettingRequest struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type BulkCreateResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
	Skipped int  `json:"skipped"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
