package rental

import (
	"context"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"strings"
	"time"
)

const (
	DefaultLeadLimit    = 300
	DefaultBookingLimit = 1000
)

// Store is the only gateway to persisted marketplace state. It keeps no
// per-user state; every identifier is passed in explicitly.
type Store struct {
	connection    *bun.DB
	unitIdPrefix  string
	allowReReview bool
	now           func() time.Time
	newId         func() string
	onCoercion    CoercionHook
}

type Option func(*Store)

func WithUnitIdPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.unitIdPrefix = prefix
		}
	}
}

// WithReReview lets admins review a request again after it reached a terminal
// status, overwriting the earlier decision.
func WithReReview(allow bool) Option {
	return func(s *Store) {
		s.allowReReview = allow
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithCoercionHook(hook CoercionHook) Option {
	return func(s *Store) {
		s.onCoercion = hook
	}
}

func NewStore(connection *bun.DB, opts ...Option) *Store {
	s := &Store{
		connection:   connection,
		unitIdPrefix: DefaultUnitIdPrefix,
		now:          time.Now,
		newId:        func() string { return uuid.New().String() },
		onCoercion:   LogCoercion,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DB exposes the underlying connection for collaborators such as seeding.
func (s *Store) DB() *bun.DB {
	return s.connection
}

func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return s.connection.RunInTx(ctx, nil, fn)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
