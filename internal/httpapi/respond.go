package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/go-playground/validator/v10"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

var errUnitBooked = errors.New("unit is already booked")

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.GetLogger().WithError(err).Warn("error writing response body")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

func notFound(w http.ResponseWriter, what string) {
	writeError(w, http.StatusNotFound, "not_found", what+" not found")
}

// fail maps a store error to a response. Unexpected errors are logged and
// answered with a generic message.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *rental.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "invalid_request", ve.Error())
	case errors.Is(err, rental.ErrAlreadyReviewed):
		writeError(w, http.StatusConflict, "already_reviewed", err.Error())
	case errors.Is(err, errUnitBooked):
		writeError(w, http.StatusConflict, "unit_booked", err.Error())
	default:
		requestLogger(r).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// decode reads a JSON body into dst and validates its struct tags. Failures
// come back as *rental.ValidationError.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return rental.NewValidationError("body", fmt.Sprintf("malformed json: %v", err))
	}

	err := s.validate.Struct(dst)
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return rental.NewValidationError(fe.Field(), fmt.Sprintf("failed %q check", fe.Tag()))
	}
	if err != nil {
		return err
	}

	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, rental.NewValidationError(name, "must be a non-negative integer")
	}

	return v, nil
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
