// Package session carries the caller's role and guest identity per request.
// State travels in a signed token and the request context; nothing is kept
// process-wide.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/golang-jwt/jwt/v5"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

const DefaultGuestName = "ضيف"

const issuer = "matrouh-rentals"

var ErrInvalidToken = errors.New("invalid or expired session token")

type Session struct {
	Role           Role   `json:"role"`
	GuestName      string `json:"guest_name"`
	GuestPhone     string `json:"guest_phone"`
	GuestResidence string `json:"guest_residence"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// NewUser is the landing "user" login; name and phone are both required.
func NewUser(name, phone, residence string) (Session, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return Session{}, rental.NewValidationError("guest_name", "must not be empty")
	}
	if phone == "" {
		return Session{}, rental.NewValidationError("guest_phone", "must not be empty")
	}

	return Session{Role: RoleUser, GuestName: name, GuestPhone: phone, GuestResidence: strings.TrimSpace(residence)}, nil
}

// NewGuest is the anonymous landing login. A blank name becomes DefaultGuestName.
func NewGuest(name, phone, residence string) Session {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultGuestName
	}

	return Session{Role: RoleGuest, GuestName: name, GuestPhone: strings.TrimSpace(phone), GuestResidence: strings.TrimSpace(residence)}
}

type Claims struct {
	Session
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager signs tokens with secret. An empty secret is replaced by a random
// one, which invalidates all tokens on restart.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("error generating session secret: %w", err)
		}
		log.GetLogger().Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	return &Manager{secret: key, ttl: ttl, now: time.Now}, nil
}

func (m *Manager) Issue(s Session) (token string, expiresAt time.Time, err error) {
	now := m.now()
	expiresAt = now.Add(m.ttl)

	claims := &Claims{
		Session: s,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error signing session token: %w", err)
	}

	return token, expiresAt, nil
}

func (m *Manager) Parse(token string) (Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	switch claims.Role {
	case RoleAdmin, RoleUser, RoleGuest:
	default:
		return Session{}, ErrInvalidToken
	}

	return claims.Session, nil
}

type contextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
