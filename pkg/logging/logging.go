package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleLogger builds the root logger used by the application.
// Level parsing failures fall back to info instead of aborting startup.
func ConsoleLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
