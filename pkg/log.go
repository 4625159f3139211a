package simplelang

import (
	"io"

	"github.com/sirupsen/logrus"
)

var (
	// package logger instance
	log = logrus.New()
)

// SetLogLevel changes the package log level.
func SetLogLevel(level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	log.Level = ll
	return nil
}

// GetLogLevel gets the package log level.
func GetLogLevel() logrus.Level {
	return log.Level
}

// SetLogOutput redirects the package logger.
func SetLogOutput(w io.Writer) {
	log.Out = w
}

func init() {
	// be silent by default
	log.Level = logrus.WarnLevel
}
