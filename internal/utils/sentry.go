package utils

import (
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry wires error reporting when SENTRY_DSN is set. Without a DSN the
// app runs fine, just unreported.
func InitSentry() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		logrus.Info("SENTRY_DSN not set, skipping Sentry initialization")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      getEnvOrDefault("APP_ENV", "development"),
		TracesSampleRate: 0.2,
		AttachStacktrace: true,
	})
	if err != nil {
		logrus.Errorf("Sentry initialization failed: %v", err)
		return
	}

	logrus.Info("Sentry initialized")
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
