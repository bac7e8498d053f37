// Package logging configures the CLI's logger: JSON output when the caller
// asks for it (the CLI's --json flag), plain text otherwise.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger at info level, or debug when verbose is set.
// json selects the JSON formatter; otherwise a plain text formatter is used.
func New(json, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if json {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
