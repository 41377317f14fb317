package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/booking"
	"github.com/jackwiencek/pickleball-signup/internal/session"
	"github.com/jackwiencek/pickleball-signup/internal/settings"
)

type RouterConfig struct {
	Ledger        *booking.Ledger
	Intake        *booking.Intake
	Settings      settings.Store
	Sessions      session.Store
	AdminPassword string
	SessionTTL    time.Duration
	Logger        *zerolog.Logger
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	log := cfg.Logger

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public endpoints
	r.Post("/login", loginHandler(cfg.Sessions, cfg.AdminPassword, cfg.SessionTTL, log))
	r.Get("/slots", listSlotsHandler(cfg.Ledger, log))
	r.Post("/signup", submitSignupHandler(cfg.Intake, log))
	r.Get("/settings", listSettingsHandler(cfg.Settings, log))

	// Admin endpoints
	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin(cfg.Sessions, log))

		r.Post("/logout", logoutHandler(cfg.Sessions, log))
		r.Post("/slots", createSlotHandler(cfg.Ledger, log))
		r.Post("/slots/bulk", bulkCreateSlotsHandler(cfg.Ledger, log))
		r.Patch("/slots/{id}", updateSlotHandler(cfg.Ledger, log))
		r.Delete("/slots/{id}", deleteSlotHandler(cfg.Ledger, log))
		r.Get("/signups", listSignupsHandler(cfg.Intake, log))
		r.Post("/settings", upsertSettingHandler(cfg.Settings, log))
	})

	return r
}
