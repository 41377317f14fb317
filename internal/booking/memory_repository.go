package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It backs the
// test suites and lets the server run without Postgres during local
// frontend work. A single lock covers every operation, which trivially
// satisfies the claim-atomicity contract.
type MemoryRepository struct {
	mu      sync.Mutex
	slots   map[uuid.UUID]*TimeSlot
	signups []Signup
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots: make(map[uuid.UUID]*TimeSlot),
	}
}

func (r *MemoryRepository) ListSlots(_ context.Context, f SlotFilter) ([]TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []TimeSlot{}
	for _, s := range r.slots {
		if f.Start != "" && s.Date < f.Start {
			continue
		}
		if f.End != "" && s.Date > f.End {
			continue
		}
		if f.AvailableOnly && s.Status != SlotAvailable {
			continue
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})

	return out, nil
}

func (r *MemoryRepository) GetSlotByID(_ context.Context, id uuid.UUID) (*TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) InsertSlot(_ context.Context, spec SlotSpec) (*TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.slots {
		if s.Date == spec.Date && s.StartTime == spec.StartTime {
			return nil, ErrDuplicateSlot
		}
	}

	slot := &TimeSlot{
		ID:        uuid.New(),
		Date:      spec.Date,
		StartTime: spec.StartTime,
		EndTime:   spec.EndTime,
		Status:    SlotAvailable,
		CreatedAt: time.Now(),
	}
	r.slots[slot.ID] = slot

	cp := *slot
	return &cp, nil
}

func (r *MemoryRepository) DeleteAvailableSlot(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	if s.Status != SlotAvailable {
		return ErrSlotClaimed
	}
	delete(r.slots, id)
	return nil
}

func (r *MemoryRepository) UpdateSlotStatus(_ context.Context, id uuid.UUID, status SlotStatus, bookedBy *uuid.UUID) (*TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}

	s.Status = status
	switch {
	case status == SlotAvailable:
		s.BookedBy = nil
	case bookedBy != nil:
		b := *bookedBy
		s.BookedBy = &b
	}

	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) CreateSignup(_ context.Context, s *Signup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(s.SelectedSlots) > 0 {
		for _, id := range s.SelectedSlots {
			slot, ok := r.slots[id]
			if !ok {
				return ErrUnknownSlots
			}
			if slot.Status != SlotAvailable {
				return ErrSlotsTaken
			}
		}
	}

	s.ID = uuid.New()
	s.CreatedAt = time.Now()

	for _, id := range s.SelectedSlots {
		slot := r.slots[id]
		slot.Status = SlotPending
		claimant := s.ID
		slot.BookedBy = &claimant
	}

	r.signups = append(r.signups, *s)
	return nil
}

func (r *MemoryRepository) ListSignups(_ context.Context) ([]Signup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Insertion order is creation order, so newest first is the reverse.
	out := make([]Signup, 0, len(r.signups))
	for i := len(r.signups) - 1; i >= 0; i-- {
		out = append(out, r.signups[i])
	}

	return out, nil
}
