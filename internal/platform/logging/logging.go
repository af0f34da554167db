package logging

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Init configures the standard logrus logger. JSON output is meant for the
// API, text for the console program.
func Init(level string, json bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}

func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	return context.WithValue(ctx, ctxKey{}, FromContext(ctx).WithFields(fields))
}

func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}

	return logrus.NewEntry(logrus.StandardLogger())
}
