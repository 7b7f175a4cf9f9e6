package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func InitLogger(level string, production bool) {
	Log.SetOutput(os.Stdout)

	if production {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithError(err).Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// WithContext returns a logger tagged with the chi request id, when present.
func WithContext(ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return Log
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return Log.WithField("request_id", reqID)
	}
	return Log
}
