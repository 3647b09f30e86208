package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration
	AuditBufferSize int
}

// FromEnv builds a Server config from environment variables so main stays
// lean.
func FromEnv() Server {
	addr := os.Getenv("TELLER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logLevel := os.Getenv("TELLER_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	shutdownTimeout := 10 * time.Second
	if raw := os.Getenv("TELLER_SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			shutdownTimeout = d
		}
	}

	auditBufferSize := 256
	if raw := os.Getenv("TELLER_AUDIT_BUFFER"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			auditBufferSize = n
		}
	}

	return Server{
		Addr:            addr,
		LogLevel:        logLevel,
		ShutdownTimeout: shutdownTimeout,
		AuditBufferSize: auditBufferSize,
	}
}
