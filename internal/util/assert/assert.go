package assert

import (
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/sirupsen/logrus"
)

// exit is swapped in tests.
var exit = func(logger log.Logger, msg string) {
	logger.Fatal(msg)
}

// fields turns alternating key/value arguments into log fields. A trailing
// key without a value is logged with an empty value.
func fields(data ...any) logrus.Fields {
	f := make(logrus.Fields, len(data)/2+1)
	for i := 0; i < len(data); i += 2 {
		key := fmt.Sprint(data[i])
		if i+1 < len(data) {
			f[key] = data[i+1]
		} else {
			f[key] = ""
		}
	}

	return f
}

func assert(msg string, data ...any) {
	exit(log.GetLogger().WithFields(fields(data...)), msg)
}

// Assert stops the process when a start-up invariant does not hold.
func Assert(truth bool, msg string, data ...any) {
	if !truth {
		assert(msg, data...)
	}
}

func NoError(err error, msg string, data ...any) {
	if err != nil {
		data = append(data, "error", err)
		assert(msg, data...)
	}
}
