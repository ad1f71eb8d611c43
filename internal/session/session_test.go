package session

import (
	"context"
	"errors"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"testing"
	"time"
)

func newTestManager(t *testing.T, now *time.Time) *Manager {
	t.Helper()

	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	m.now = func() time.Time { return *now }

	return m
}

func TestIssueAndParse(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	in := Session{Role: RoleUser, GuestName: "منى", GuestPhone: "+201001112233", GuestResidence: "القاهرة"}
	token, expiresAt, err := m.Issue(in)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	out, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if out != in {
		t.Errorf("Parse() = %+v, want %+v", out, in)
	}
}

func TestParseRejects(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	token, _, err := m.Issue(Session{Role: RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	other, err := NewManager("other-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret: error = %v", err)
	}

	if _, err := m.Parse(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: error = %v", err)
	}

	if _, err := m.Parse(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token: error = %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: error = %v", err)
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	token, _, err := m.Issue(Session{Role: "owner"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("unknown role: error = %v", err)
	}
}

func TestNewManagerWithoutSecret(t *testing.T) {
	a, err := NewManager("", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewManager("", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, _, err := a.Issue(Session{Role: RoleGuest})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Parse(token); err != nil {
		t.Errorf("own token rejected: %v", err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Error("random secrets collided")
	}
}

func TestNewUser(t *testing.T) {
	s, err := NewUser(" Mona ", " 0100 ", " Cairo ")
	if err != nil {
		t.Fatal(err)
	}
	if s.Role != RoleUser || s.GuestName != "Mona" || s.GuestPhone != "0100" || s.GuestResidence != "Cairo" {
		t.Errorf("NewUser() = %+v", s)
	}

	if _, err := NewUser("", "0100", ""); !errors.Is(err, &rental.ValidationError{}) {
		t.Errorf("missing name: error = %v", err)
	}
	if _, err := NewUser("Mona", " ", ""); !errors.Is(err, &rental.ValidationError{}) {
		t.Errorf("missing phone: error = %v", err)
	}
}

func TestNewGuest(t *testing.T) {
	if s := NewGuest("  ", "", ""); s.GuestName != DefaultGuestName || s.Role != RoleGuest {
		t.Errorf("NewGuest(blank) = %+v", s)
	}
	if s := NewGuest("Ali", "0111", ""); s.GuestName != "Ali" || s.GuestPhone != "0111" {
		t.Errorf("NewGuest() = %+v", s)
	}
}

func TestContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context has a session")
	}

	ctx := WithSession(context.Background(), Session{Role: RoleAdmin})
	s, ok := FromContext(ctx)
	if !ok || !s.IsAdmin() {
		t.Errorf("FromContext() = %+v, %v", s, ok)
	}
}

func TestAdminPassword(t *testing.T) {
	p, err := NewAdminPassword("admin123")
	if err != nil {
		t.Fatal(err)
	}

	if !p.Check("admin123") {
		t.Error("correct password rejected")
	}
	if p.Check("admin1234") || p.Check("") {
		t.Error("wrong password accepted")
	}
}
