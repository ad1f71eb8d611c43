package rental

import (
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/sirupsen/logrus"
)

// Coercion describes a malformed stored or submitted value that was replaced
// by a default instead of failing the operation.
type Coercion struct {
	Field    string
	Value    string
	Fallback string
	Reason   string
}

type CoercionHook func(Coercion)

// LogCoercion is the default hook; it reports the coercion as a warning.
func LogCoercion(c Coercion) {
	log.GetLogger().WithFields(logrus.Fields{
		"Field":    c.Field,
		"Value":    c.Value,
		"Fallback": c.Fallback,
		"Reason":   c.Reason,
	}).Warn("coerced malformed value to default")
}

func (h CoercionHook) report(field, value, fallback, reason string) {
	if h == nil {
		return
	}

	h(Coercion{Field: field, Value: value, Fallback: fallback, Reason: reason})
}
