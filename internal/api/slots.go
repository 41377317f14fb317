package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/booking"
)

func listSlotsHandler(ledger *booking.Ledger, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := booking.SlotFilter{
			Start:         q.Get("start"),
			End:           q.Get("end"),
			AvailableOnly: q.Get("available_only") == "true",
		}

		slots, err := ledger.List(r.Context(), filter)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, slots)
	}
}

func createSlotHandler(ledger *booking.Ledger, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec booking.SlotSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if _, err := ledger.Create(r.Context(), spec); err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

func bulkCreateSlotsHandler(ledger *booking.Ledger, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		res, err := ledger.CreateBulk(r.Context(), req.Slots)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, BulkCreateResponse{
			Success: true,
			Created: res.Created,
			Skipped: res.Skipped,
		})
	}
}

func updateSlotHandler(ledger *booking.Ledger, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", "id must be a valid UUID")
			return
		}

		var req UpdateSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Status == "" {
			writeError(w, http.StatusBadRequest, "invalid_input", "status is required")
			return
		}

		var bookedBy *uuid.UUID
		if req.BookedBy != nil {
			claimant, err := uuid.Parse(*req.BookedBy)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_input", "booked_by must be a valid UUID")
				return
			}
			bookedBy = &claimant
		}

		if _, err := ledger.SetStatus(r.Context(), id, booking.SlotStatus(req.Status), bookedBy); err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

func deleteSlotHandler(ledger *booking.Ledger, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", "id must be a valid UUID")
			return
		}

		if err := ledger.Delete(r.Context(), id); err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
