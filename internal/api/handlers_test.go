package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackwiencek/pickleball-signup/internal/booking"
	"github.com/jackwiencek/pickleball-signup/internal/session"
	"github.com/jackwiencek/pickleball-signup/internal/settings"
)

const testAdminPassword = "test-admin-password"

type testServer struct {
	router http.Handler
	repo   *booking.MemoryRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := booking.NewMemoryRepository()
	log := zerolog.Nop()

	router := NewRouter(RouterConfig{
		Ledger:        booking.NewLedger(repo, &log),
		Intake:        booking.NewIntake(repo, &log),
		Settings:      settings.NewMemoryStore(),
		Sessions:      session.NewMemoryStore(),
		AdminPassword: testAdminPassword,
		SessionTTL:    time.Hour,
		Logger:        &log,
		Env:           "test",
		Version:       "test",
	})

	return &testServer{router: router, repo: repo}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// login authenticates with the shared admin password and returns the
// session cookie.
func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()

	w := ts.do(t, "POST", "/login", LoginRequest{Password: testAdminPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func decodeSlots(t *testing.T, w *httptest.ResponseRecorder) []booking.TimeSlot {
	t.Helper()
	var slots []booking.TimeSlot
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	return slots
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "POST", "/login", LoginRequest{Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminEndpointsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{"POST", "/slots", booking.SlotSpec{Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00"}},
		{"POST", "/slots/bulk", BulkCreateRequest{}},
		{"PATCH", "/slots/00000000-0000-0000-0000-000000000000", UpdateSlotRequest{Status: "confirmed"}},
		{"DELETE", "/slots/00000000-0000-0000-0000-000000000000", nil},
		{"GET", "/signups", nil},
		{"POST", "/settings", UpsertSettingRequest{Key: "k"}},
	}

	for _, tc := range cases {
		w := ts.do(t, tc.method, tc.path, tc.body)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without session, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestSlotCreateAndConflict(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	spec := booking.SlotSpec{Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00"}

	if w := ts.do(t, "POST", "/slots", spec, admin); w.Code != http.StatusOK {
		t.Fatalf("create slot: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := ts.do(t, "POST", "/slots", spec, admin); w.Code != http.StatusConflict {
		t.Errorf("duplicate slot: expected 409, got %d", w.Code)
	}
	if w := ts.do(t, "POST", "/slots", booking.SlotSpec{Date: "2025-06-01"}, admin); w.Code != http.StatusBadRequest {
		t.Errorf("incomplete slot: expected 400, got %d", w.Code)
	}
}

func TestSlotListPublicWithFilters(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	for _, spec := range []booking.SlotSpec{
		{Date: "2025-06-02", StartTime: "08:00", EndTime: "10:00"},
		{Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00"},
		{Date: "2025-06-01", StartTime: "08:00", EndTime: "10:00"},
	} {
		if w := ts.do(t, "POST", "/slots", spec, admin); w.Code != http.StatusOK {
			t.Fatalf("create slot failed: %d", w.Code)
		}
	}

	w := ts.do(t, "GET", "/slots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list slots: expected 200, got %d", w.Code)
	}
	slots := decodeSlots(t, w)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].Date != "2025-06-01" || slots[0].StartTime != "08:00" {
		t.Errorf("expected (date, start_time) ordering, first was %s %s", slots[0].Date, slots[0].StartTime)
	}

	w = ts.do(t, "GET", "/slots?start=2025-06-02&end=2025-06-02", nil)
	if got := decodeSlots(t, w); len(got) != 1 {
		t.Errorf("expected 1 slot in range, got %d", len(got))
	}
}

func TestSlotUpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	w := ts.do(t, "POST", "/slots", booking.SlotSpec{Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00"}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("create slot failed: %d", w.Code)
	}
	slots := decodeSlots(t, ts.do(t, "GET", "/slots", nil))
	slotID := slots[0].ID.String()

	if w := ts.do(t, "PATCH", "/slots/"+slotID, UpdateSlotRequest{Status: "nonsense"}, admin); w.Code != http.StatusBadRequest {
		t.Errorf("bad status: expected 400, got %d", w.Code)
	}
	if w := ts.do(t, "PATCH", "/slots/not-a-uuid", UpdateSlotRequest{Status: "pending"}, admin); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
	if w := ts.do(t, "PATCH", "/slots/00000000-0000-0000-0000-000000000001", UpdateSlotRequest{Status: "pending"}, admin); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", w.Code)
	}

	if w := ts.do(t, "PATCH", "/slots/"+slotID, UpdateSlotRequest{Status: "pending"}, admin); w.Code != http.StatusOK {
		t.Errorf("set pending: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := ts.do(t, "DELETE", "/slots/"+slotID, nil, admin); w.Code != http.StatusBadRequest {
		t.Errorf("delete pending slot: expected 400, got %d", w.Code)
	}
	if w := ts.do(t, "PATCH", "/slots/"+slotID, UpdateSlotRequest{Status: "available"}, admin); w.Code != http.StatusOK {
		t.Errorf("release: expected 200, got %d", w.Code)
	}
	if w := ts.do(t, "DELETE", "/slots/"+slotID, nil, admin); w.Code != http.StatusOK {
		t.Errorf("delete available slot: expected 200, got %d", w.Code)
	}
	if w := ts.do(t, "DELETE", "/slots/"+slotID, nil, admin); w.Code != http.StatusNotFound {
		t.Errorf("delete gone slot: expected 404, got %d", w.Code)
	}
}

func TestBulkCreateEndpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	w := ts.do(t, "POST", "/slots/bulk", BulkCreateRequest{}, admin)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty bulk: expected 400, got %d", w.Code)
	}

	w = ts.do(t, "POST", "/slots/bulk", BulkCreateRequest{Slots: []booking.SlotSpec{
		{Date: "2025-06-01", StartTime: "08:00", EndTime: "10:00"},
		{Date: "2025-06-01", StartTime: "08:00", EndTime: "10:00"}, // duplicate of the first
		{Date: "2025-06-01", StartTime: "18:00"},                   // missing end_time
	}}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("bulk create: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res BulkCreateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode bulk response: %v", err)
	}
	if res.Created != 1 || res.Skipped != 2 {
		t.Errorf("expected {created: 1, skipped: 2}, got {created: %d, skipped: %d}", res.Created, res.Skipped)
	}
}

func TestSignupEndpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	if w := ts.do(t, "POST", "/slots", booking.SlotSpec{Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00"}, admin); w.Code != http.StatusOK {
		t.Fatalf("create slot failed: %d", w.Code)
	}
	slots := decodeSlots(t, ts.do(t, "GET", "/slots", nil))
	slotID := slots[0].ID.String()

	loc := "Riverside Courts"
	exp := 4.0

	// Missing email.
	w := ts.do(t, "POST", "/signup", SubmitSignupRequest{Name: "Jack W"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing email: expected 400, got %d", w.Code)
	}

	// First submission claims the slot.
	w = ts.do(t, "POST", "/signup", SubmitSignupRequest{
		Name: "Jack W", Email: "jack@example.com",
		Location: &loc, Experience: &exp,
		SelectedSlots: []string{slotID},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Second submission for the same slot loses.
	w = ts.do(t, "POST", "/signup", SubmitSignupRequest{
		Name: "Other P", Email: "other@example.com",
		Location: &loc,
		SelectedSlots: []string{slotID},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("claimed slot: expected 400, got %d", w.Code)
	}

	// Admin sees the recorded signup.
	w = ts.do(t, "GET", "/signups", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("list signups: expected 200, got %d", w.Code)
	}
	var signups []booking.Signup
	if err := json.Unmarshal(w.Body.Bytes(), &signups); err != nil {
		t.Fatalf("decode signups: %v", err)
	}
	if len(signups) != 1 || signups[0].Email != "jack@example.com" {
		t.Errorf("expected one signup from jack@example.com, got %+v", signups)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	val := "Pickleball Open Play"
	if w := ts.do(t, "POST", "/settings", UpsertSettingRequest{Key: "site_title", Value: &val}, admin); w.Code != http.StatusOK {
		t.Fatalf("upsert setting: expected 200, got %d", w.Code)
	}

	// Upsert replaces on key conflict.
	val2 := "Open Play Signups"
	if w := ts.do(t, "POST", "/settings", UpsertSettingRequest{Key: "site_title", Value: &val2}, admin); w.Code != http.StatusOK {
		t.Fatalf("second upsert: expected 200, got %d", w.Code)
	}

	if w := ts.do(t, "POST", "/settings", UpsertSettingRequest{Key: "site_title"}, admin); w.Code != http.StatusBadRequest {
		t.Errorf("missing value: expected 400, got %d", w.Code)
	}

	w := ts.do(t, "GET", "/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list settings: expected 200, got %d", w.Code)
	}
	var items []settings.Setting
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if len(items) != 1 || items[0].Value != val2 {
		t.Errorf("expected single updated setting, got %+v", items)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t)

	if w := ts.do(t, "POST", "/logout", nil, admin); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	if w := ts.do(t, "GET", "/signups", nil, admin); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked session: expected 401, got %d", w.Code)
	}
}

func TestHealthLiveness(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "GET", "/health/live", nil)
	if w.Code != http.StatusOK {
		t.Errorf("liveness: expected 200, got %d", w.Code)
	}
}
