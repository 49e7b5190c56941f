// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. In production (APP_ENV=production)
// it emits JSON for log aggregation; otherwise a human-readable text format.
func Init(env string) {
	if strings.EqualFold(env, "production") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetOutput(os.Stdout)
}

// WithComponent returns an entry tagged with the component name.
// Use one entry per subsystem (e.g. "pipeline", "denylist", "profile").
func WithComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
