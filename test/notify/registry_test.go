package notify

import (
	"testing"

	"github.com/syncroapp/syncro-backend/internal/notify"
)

func TestRegistryRegisterAndPresence(t *testing.T) {
	r := notify.NewRegistry()

	if r.IsPresent("u1") {
		t.Fatal("expected u1 to be absent before registration")
	}

	r.Register("u1", "s1")

	if !r.IsPresent("u1") {
		t.Fatal("expected u1 to be present after registration")
	}
	if sid, ok := r.SessionFor("u1"); !ok || sid != "s1" {
		t.Fatalf("expected session s1 for u1, got %q ok=%v", sid, ok)
	}
	if got := r.ActiveSessionCount("u1"); got != 1 {
		t.Fatalf("expected 1 active session for u1, got %d", got)
	}
}

func TestRegistryEmptyUserIDIgnored(t *testing.T) {
	r := notify.NewRegistry()

	if _, replaced := r.Register("", "s1"); replaced {
		t.Fatal("expected empty user id registration to replace nothing")
	}
	if got := r.ActiveSessionCount(""); got != 0 {
		t.Fatalf("expected no sessions, got %d", got)
	}
}

func TestRegistryUnregisterBySession(t *testing.T) {
	r := notify.NewRegistry()
	r.Register("u1", "s1")

	userID, ok := r.Unregister("s1")
	if !ok || userID != "u1" {
		t.Fatalf("expected unregister to return u1, got %q ok=%v", userID, ok)
	}
	if r.IsPresent("u1") {
		t.Fatal("expected u1 to be absent after unregister")
	}

	if _, ok := r.Unregister("s1"); ok {
		t.Fatal("expected second unregister to be a no-op")
	}
}

func TestRegistryOverrideSurvivesStaleDisconnect(t *testing.T) {
	r := notify.NewRegistry()

	r.Register("u1", "s1")
	previous, replaced := r.Register("u1", "s2")
	if !replaced || previous != "s1" {
		t.Fatalf("expected s1 to be replaced, got %q replaced=%v", previous, replaced)
	}
	if !r.IsPresent("u1") {
		t.Fatal("expected u1 to remain present after re-register")
	}

	// The superseded session disconnects later; the new mapping must hold.
	if _, ok := r.Unregister("s1"); ok {
		t.Fatal("expected stale unregister to be a no-op")
	}
	if !r.IsPresent("u1") {
		t.Fatal("expected u1 to remain present after stale disconnect")
	}
	if sid, _ := r.SessionFor("u1"); sid != "s2" {
		t.Fatalf("expected current session s2, got %q", sid)
	}
}

func TestRegistryReRegisterSamePairIdempotent(t *testing.T) {
	r := notify.NewRegistry()

	r.Register("u1", "s1")
	if previous, replaced := r.Register("u1", "s1"); replaced {
		t.Fatalf("expected same-pair re-register to replace nothing, got %q", previous)
	}
	if got := r.ActiveSessionCount("u1"); got != 1 {
		t.Fatalf("expected 1 active session for u1, got %d", got)
	}
}

func TestRegistryCountsPerUser(t *testing.T) {
	r := notify.NewRegistry()

	r.Register("u1", "s1")
	r.Register("u2", "s2")
	r.Unregister("s2")

	if got := r.ActiveSessionCount("u1"); got != 1 {
		t.Fatalf("expected 1 session for u1, got %d", got)
	}
	if got := r.ActiveSessionCount("u2"); got != 0 {
		t.Fatalf("expected no sessions for disconnected u2, got %d", got)
	}

	// A replaced session never double-counts.
	r.Register("u1", "s9")
	if got := r.ActiveSessionCount("u1"); got != 1 {
		t.Fatalf("expected a single session after re-register, got %d", got)
	}
}
