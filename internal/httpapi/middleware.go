package httpapi

import (
	"context"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/csr-ugra/matrouh-rentals/internal/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"net/http"
	"strings"
	"time"
)

type loggerKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(r *http.Request) log.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(log.Logger); ok {
		return l
	}

	return log.GetLogger()
}

// logRequests tags each request with a RequestId and logs its outcome.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := log.GetLogger().WithFields(logrus.Fields{
			"RequestId": uuid.New().String(),
			"Method":    r.Method,
			"Path":      r.URL.Path,
		})

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), loggerKey{}, logger)))

		entry := logger.WithFields(logrus.Fields{
			"Status":   rec.status,
			"Duration": time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request handled")
		} else {
			entry.Debug("request handled")
		}
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}

// authenticate requires a valid session token and stores the session in the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing session token")
			return
		}

		sess, err := s.sessions.Parse(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "admin session required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
