// Package logging configures the shared logrus logger used throughout the application.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Configure sets up a logger based on LOG_LEVEL and LOG_FORMAT environment
// variables and returns it. Invalid values fall back to info/text.
func Configure() *logrus.Logger {
	logger := logrus.New()

	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// Affects every logger created before this point as well
	logrus.SetLevel(logLevel)

	return logger
}
