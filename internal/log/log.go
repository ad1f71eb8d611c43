package log

import (
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	"github.com/google/uuid"
	"github.com/nullseed/logruseq"
	"github.com/sirupsen/logrus"
	"io"
	"os"
)

var entry *logrus.Entry

type Logger = *logrus.Entry

func InitLogger(config *util.Config) {

	logger := logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Level: logrus.DebugLevel,
	}

	if config.Environment.Value == "production" {
		logger.Formatter = &logrus.JSONFormatter{}
		logger.Level = logrus.InfoLevel
	} else {
		logger.Formatter = &logrus.TextFormatter{
			ForceColors:      true,
			FullTimestamp:    false,
			QuoteEmptyFields: true,
		}
	}

	if config.SeqUrl.Value != "" {
		seqHook := logruseq.NewSeqHook(config.SeqUrl.Value, logruseq.OptionAPIKey(config.SeqToken.Value))
		logger.AddHook(seqHook)
	} else {
		logger.Warn("logger running without seq hook")
	}

	u := uuid.New().String()
	entry = logger.WithField("TraceId", u)
}

func AddGlobalField(name string, value interface{}) Logger {
	entry = GetLogger().WithField(name, value)
	return entry
}

// GetLogger returns the process logger. Before InitLogger runs (tests, tools)
// it returns a discarding logger so callers never deal with nil.
func GetLogger() Logger {
	if entry == nil {
		l := logrus.New()
		l.Out = io.Discard
		entry = logrus.NewEntry(l)
	}

	return entry
}
