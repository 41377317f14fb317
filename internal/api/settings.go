package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/settings"
)

func listSettingsHandler(store settings.Store, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("list settings failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func upsertSettingHandler(store settings.Store, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpsertSettingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Key == "" || req.Value == nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "key and value are required")
			return
		}

		if err := store.Upsert(r.Context(), req.Key, *req.Value); err != nil {
			log.Error().Err(err).Msg("upsert setting failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
