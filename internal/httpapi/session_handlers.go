package httpapi

import (
	"github.com/csr-ugra/matrouh-rentals/internal/session"
	"net/http"
	"time"
)

type loginRequest struct {
	GuestName      string `json:"guest_name"`
	GuestPhone     string `json:"guest_phone"`
	GuestResidence string `json:"guest_residence"`
}

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   session.Session `json:"session"`
}

func (s *Server) issue(w http.ResponseWriter, r *http.Request, sess session.Session) {
	token, expiresAt, err := s.sessions.Issue(sess)
	if err != nil {
		fail(w, r, err)
		return
	}

	requestLogger(r).WithField("Role", sess.Role).Info("session started")
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: expiresAt, Session: sess})
}

func (s *Server) loginGuest(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	s.issue(w, r, session.NewGuest(req.GuestName, req.GuestPhone, req.GuestResidence))
}

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	sess, err := session.NewUser(req.GuestName, req.GuestPhone, req.GuestResidence)
	if err != nil {
		fail(w, r, err)
		return
	}

	s.issue(w, r, sess)
}

func (s *Server) loginAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := s.decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	if !s.admin.Check(req.Password) {
		requestLogger(r).Warn("admin login with wrong password")
		writeError(w, http.StatusUnauthorized, "unauthorized", "wrong password")
		return
	}

	s.issue(w, r, session.Session{Role: session.RoleAdmin, GuestName: "admin"})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, sess)
}
