package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/booking"
)

func submitSignupHandler(intake *booking.Intake, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitSignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		slotIDs := make([]uuid.UUID, 0, len(req.SelectedSlots))
		for _, raw := range req.SelectedSlots {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_input", "selected_slots must contain valid UUIDs")
				return
			}
			slotIDs = append(slotIDs, id)
		}

		signup := &booking.Signup{
			Name:           req.Name,
			Email:          req.Email,
			Phone:          req.Phone,
			Experience:     req.Experience,
			Location:       req.Location,
			Availability:   req.Availability,
			SelectedSlots:  slotIDs,
			NoAvailability: req.NoAvailability,
			Message:        req.Message,
		}

		if err := intake.Submit(r.Context(), signup); err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

func listSignupsHandler(intake *booking.Intake, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signups, err := intake.ListSignups(r.Context())
		if err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, signups)
	}
}
