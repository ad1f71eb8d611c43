// Package httpapi exposes the marketplace as a JSON API: guest browsing,
// contact and booking requests, and the admin back office.
package httpapi

import (
	"context"
	"github.com/csr-ugra/matrouh-rentals/internal/cache"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/csr-ugra/matrouh-rentals/internal/session"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
	"net/http"
	"time"
)

type Server struct {
	store    *rental.Store
	cache    cache.Cache
	sessions *session.Manager
	admin    *session.AdminPassword
	validate *validator.Validate
	limiter  *RateLimiter
	origins  []string
}

type Option func(*Server)

func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithWriteLimit sets the per-IP rate of guest writes and logins.
func WithWriteLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter(limit, burst)
	}
}

func NewServer(store *rental.Store, c cache.Cache, sessions *session.Manager, admin *session.AdminPassword, opts ...Option) *Server {
	if c == nil {
		c = cache.Nop{}
	}

	s := &Server{
		store:    store,
		cache:    c,
		sessions: sessions,
		admin:    admin,
		validate: newValidator(),
		limiter:  NewRateLimiter(rate.Every(2*time.Second), 10),
		origins:  []string{"*"},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	guest := func(h http.HandlerFunc) http.Handler { return s.authenticate(h) }
	guestWrite := func(h http.HandlerFunc) http.Handler { return s.limiter.Limit(s.authenticate(h)) }

	api.Handle("/session/guest", s.limiter.Limit(http.HandlerFunc(s.loginGuest))).Methods(http.MethodPost)
	api.Handle("/session/user", s.limiter.Limit(http.HandlerFunc(s.loginUser))).Methods(http.MethodPost)
	api.Handle("/session/admin", s.limiter.Limit(http.HandlerFunc(s.loginAdmin))).Methods(http.MethodPost)
	api.Handle("/session", guest(s.getSession)).Methods(http.MethodGet)

	api.Handle("/units", guest(s.listUnits)).Methods(http.MethodGet)
	api.Handle("/units/{id}", guest(s.getUnit)).Methods(http.MethodGet)
	api.Handle("/units/{id}/contact", guestWrite(s.contactUnit)).Methods(http.MethodPost)
	api.Handle("/units/{id}/bookings", guestWrite(s.submitBooking)).Methods(http.MethodPost)
	api.Handle("/sponsors", guest(s.listSponsors)).Methods(http.MethodGet)
	api.Handle("/guide", guest(s.getGuide)).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.authenticate, requireAdmin)

	admin.HandleFunc("/units", s.adminListUnits).Methods(http.MethodGet)
	admin.HandleFunc("/units", s.adminCreateUnit).Methods(http.MethodPost)
	admin.HandleFunc("/units/{id}", s.adminUpdateUnit).Methods(http.MethodPut)
	admin.HandleFunc("/units/{id}/booking", s.adminSetUnitBooking).Methods(http.MethodPut)

	admin.HandleFunc("/leads", s.adminListLeads).Methods(http.MethodGet)
	admin.HandleFunc("/leads", s.adminDeleteLeads).Methods(http.MethodDelete)
	admin.HandleFunc("/leads/export", s.adminExportLeads).Methods(http.MethodGet)

	admin.HandleFunc("/bookings", s.adminListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/new-count", s.adminCountNewBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", s.adminGetBooking).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/review", s.adminReviewBooking).Methods(http.MethodPost)

	admin.HandleFunc("/sponsors", s.adminListSponsors).Methods(http.MethodGet)
	admin.HandleFunc("/sponsors", s.adminAddSponsor).Methods(http.MethodPost)
	admin.HandleFunc("/sponsors/{id}", s.adminUpdateSponsor).Methods(http.MethodPut)
	admin.HandleFunc("/sponsors/{id}", s.adminDeleteSponsor).Methods(http.MethodDelete)

	admin.HandleFunc("/guide/categories", s.adminListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/guide/categories", s.adminCreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/guide/categories/{id}", s.adminUpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/guide/categories/{id}", s.adminDeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/guide/items", s.adminListItems).Methods(http.MethodGet)
	admin.HandleFunc("/guide/items", s.adminCreateItem).Methods(http.MethodPost)
	admin.HandleFunc("/guide/items/{id}", s.adminUpdateItem).Methods(http.MethodPut)
	admin.HandleFunc("/guide/items/{id}", s.adminDeleteItem).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such route")
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return logRequests(c.Handler(router))
}

// invalidate drops cached guest listings after an admin write. A cache
// failure is logged and does not fail the write.
func (s *Server) invalidate(r *http.Request) {
	if _, err := s.cache.InvalidateAll(context.WithoutCancel(r.Context())); err != nil {
		requestLogger(r).WithError(err).Warn("error invalidating listing cache")
	}
}
