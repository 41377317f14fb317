package booking

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/pkg/validator"
)

// Intake validates booking submissions and records them, atomically
// reserving any selected slots against the ledger's store.
type Intake struct {
	repo Repository
	log  *zerolog.Logger
}

func NewIntake(repo Repository, log *zerolog.Logger) *Intake {
	return &Intake{repo: repo, log: log}
}

// submitFields carries the always-validated subset of a submission.
type submitFields struct {
	Name       string   `validate:"required"`
	Email      string   `validate:"required,email"`
	Experience *float64 `validate:"omitempty,skill_rating"`
}

// Submit validates s and persists it. A booking submission (one that
// selects slots, sets no_availability, or names a location) must carry a
// location and either a non-empty slot selection or the no_availability
// flag; its selected slots are claimed in the same atomic unit as the
// insert. A plain interest submission records free-text availability and
// touches no slots.
func (in *Intake) Submit(ctx context.Context, s *Signup) error {
	fields := submitFields{
		Name:       strings.TrimSpace(s.Name),
		Email:      strings.TrimSpace(s.Email),
		Experience: s.Experience,
	}
	if err := validator.Validate(ctx, fields); err != nil {
		return &Error{Kind: KindInvalidInput, Msg: err.Error()}
	}
	s.Name = fields.Name
	s.Email = fields.Email

	if s.BooksSlots() || s.Location != nil {
		if s.Location == nil || strings.TrimSpace(*s.Location) == "" {
			return invalidInput("location is required")
		}
		if !s.NoAvailability && len(s.SelectedSlots) == 0 {
			return invalidInput("select a slot or indicate no availability")
		}
		if s.NoAvailability {
			s.SelectedSlots = nil
		}
	}

	if err := in.repo.CreateSignup(ctx, s); err != nil {
		return err
	}

	in.log.Info().
		Str("signup_id", s.ID.String()).
		Str("email", s.Email).
		Int("slots_claimed", len(s.SelectedSlots)).
		Bool("no_availability", s.NoAvailability).
		Msg("signup recorded")

	return nil
}

// ListSignups returns every signup, newest first.
func (in *Intake) ListSignups(ctx context.Context) ([]Signup, error) {
	return in.repo.ListSignups(ctx)
}
