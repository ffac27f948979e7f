// internal/infra/logger/logger.go
package logger

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger instance for the application. Debug level when
// verbose, info otherwise. Every pattern in redactPatterns (typically the
// bot token) is replaced with a placeholder in the rendered output, so
// secrets never reach the log destination.
//
// The logger is returned, not installed as a process-wide default: callers
// inject it into each component, and tests capture output by swapping the
// writer on their own instance.
func New(verbose bool, redactPatterns []string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	log.SetFormatter(NewRedactingFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}, redactPatterns))

	return log
}

const redactedPlaceholder = "<REDACTED>"

// RedactingFormatter wraps another logrus formatter and blanks out every
// configured pattern in the rendered line. The rule set is pluggable:
// whatever patterns are handed in at construction get redacted, nothing
// else.
type RedactingFormatter struct {
	inner    logrus.Formatter
	patterns [][]byte
}

func NewRedactingFormatter(inner logrus.Formatter, patterns []string) *RedactingFormatter {
	f := &RedactingFormatter{inner: inner}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		f.patterns = append(f.patterns, []byte(p))
	}
	return f
}

// Format implements logrus.Formatter.
func (f *RedactingFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	line, err := f.inner.Format(entry)
	if err != nil {
		return nil, err
	}
	for _, pattern := range f.patterns {
		line = bytes.ReplaceAll(line, pattern, []byte(redactedPlaceholder))
	}
	return line, nil
}
