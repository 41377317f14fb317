package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/booking"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeDomainError maps a booking error kind to its transport status.
// Storage failures are logged with their cause and reported generically.
func writeDomainError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	kind := booking.KindOf(err)
	switch kind {
	case booking.KindInvalidInput, booking.KindInvalidState:
		writeError(w, http.StatusBadRequest, kind.String(), err.Error())
	case booking.KindUnauthorized:
		writeError(w, http.StatusUnauthorized, kind.String(), "Unauthorized")
	case booking.KindNotFound:
		writeError(w, http.StatusNotFound, kind.String(), err.Error())
	case booking.KindConflict:
		writeError(w, http.StatusConflict, kind.String(), err.Error())
	default:
		log.Error().Err(err).Msg("storage failure")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
