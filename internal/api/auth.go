package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/session"
)

func loginHandler(sessions session.Store, adminPassword string, ttl time.Duration, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid password")
			return
		}

		sess, err := sessions.Create(r.Context(), session.RoleAdmin, ttl)
		if err != nil {
			log.Error().Err(err).Msg("session create failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    sess.Token,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

func logoutHandler(sessions session.Store, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(session.CookieName); err == nil {
			if err := sessions.Delete(r.Context(), cookie.Value); err != nil {
				log.Error().Err(err).Msg("session delete failed")
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
