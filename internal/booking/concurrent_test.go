package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

// TestConcurrentSubmitsSingleWinner verifies the claim-atomicity contract:
// N simultaneous submissions for the same slot produce exactly one winner,
// everyone else fails because the slot is no longer available, and the
// slot ends pending with booked_by set to the winner.
func TestConcurrentSubmitsSingleWinner(t *testing.T) {
	intake, ledger, repo := newTestIntake()
	ctx := context.Background()

	slot := mustCreateSlot(t, ledger, "2025-07-01", "18:00", "20:00")

	const numPlayers = 25

	var successCount atomic.Int32
	var winnerID atomic.Value
	var wg sync.WaitGroup

	for i := 0; i < numPlayers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			s := bookingSignup(slot.ID)
			s.Email = fmt.Sprintf("player%d@example.com", n)

			err := intake.Submit(ctx, s)
			if err == nil {
				successCount.Add(1)
				winnerID.Store(s.ID)
				return
			}
			if !errors.Is(err, ErrSlotsTaken) {
				t.Errorf("player %d: expected ErrSlotsTaken, got %v", n, err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Fatalf("expected exactly 1 successful claim, got %d", successCount.Load())
	}

	got, err := repo.GetSlotByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("GetSlotByID failed: %v", err)
	}
	if got.Status != SlotPending {
		t.Errorf("expected slot pending, got %s", got.Status)
	}
	winner := winnerID.Load().(uuid.UUID)
	if got.BookedBy == nil || *got.BookedBy != winner {
		t.Errorf("expected booked_by %s, got %v", winner, got.BookedBy)
	}
}

// TestConcurrentOverlappingSelections submits overlapping multi-slot
// selections; no slot may end up claimed by two signups.
func TestConcurrentOverlappingSelections(t *testing.T) {
	intake, ledger, repo := newTestIntake()
	ctx := context.Background()

	a := mustCreateSlot(t, ledger, "2025-07-01", "08:00", "10:00")
	b := mustCreateSlot(t, ledger, "2025-07-01", "18:00", "20:00")
	c := mustCreateSlot(t, ledger, "2025-07-02", "08:00", "10:00")

	selections := [][]uuid.UUID{
		{a.ID, b.ID},
		{b.ID, c.ID},
		{a.ID, c.ID},
		{a.ID, b.ID, c.ID},
	}

	var wg sync.WaitGroup
	for i, sel := range selections {
		wg.Add(1)
		go func(n int, slots []uuid.UUID) {
			defer wg.Done()

			s := bookingSignup(slots...)
			s.Email = fmt.Sprintf("overlap%d@example.com", n)
			_ = intake.Submit(ctx, s)
		}(i, sel)
	}
	wg.Wait()

	signups, err := intake.ListSignups(ctx)
	if err != nil {
		t.Fatalf("ListSignups failed: %v", err)
	}

	claimed := make(map[uuid.UUID]uuid.UUID)
	for _, su := range signups {
		for _, slotID := range su.SelectedSlots {
			if prev, ok := claimed[slotID]; ok {
				t.Errorf("slot %s claimed by both %s and %s", slotID, prev, su.ID)
			}
			claimed[slotID] = su.ID
		}
	}

	// Every claimed slot's own record must agree with its claimant.
	for slotID, signupID := range claimed {
		got, err := repo.GetSlotByID(ctx, slotID)
		if err != nil {
			t.Fatalf("GetSlotByID failed: %v", err)
		}
		if got.Status != SlotPending || got.BookedBy == nil || *got.BookedBy != signupID {
			t.Errorf("slot %s: expected pending/%s, got %s/%v", slotID, signupID, got.Status, got.BookedBy)
		}
	}
}
