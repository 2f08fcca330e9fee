// Package auditor holds the operational scaffolding for the counter audit
// job: configuration, metrics and the health check server.
package auditor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/thedevarpan/dot-developer/internal/pkg/config"
)

// Config controls the audit job schedule and limits.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have defaults and validation rules so the auditor can start
// safely even with invalid or missing configuration.
type Config struct {
	// CronSchedule is the cron expression for the audit pass.
	// Format: "minute hour day month weekday"
	// Default: "*/10 * * * *" (every 10 minutes)
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "Asia/Tokyo"
	Timezone string

	// RepairBatchLimit bounds how many repair records one pass resolves.
	// Range: 1-1000
	// Default: 100
	RepairBatchLimit int

	// JobTimeout is the maximum duration for a single audit pass.
	// Default: 5 minutes
	JobTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a Config with production-ready default values.
// The 10 minute schedule keeps half-applied counter units short-lived
// without hammering the database with recomputations.
func DefaultConfig() Config {
	return Config{
		CronSchedule:     "*/10 * * * *",
		Timezone:         "Asia/Tokyo",
		RepairBatchLimit: 100,
		JobTimeout:       5 * time.Minute,
		HealthPort:       9091,
	}
}

// Validate checks the configuration values. Errors across fields are
// collected and returned together.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.RepairBatchLimit, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("repair batch limit: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the auditor configuration from environment
// variables with a fail-open strategy: each invalid value falls back to its
// default with a warning and a metrics increment, and the returned
// configuration is always valid.
//
// Environment variables:
//   - AUDIT_CRON_SCHEDULE: Cron expression (default: "*/10 * * * *")
//   - AUDIT_TIMEZONE: IANA timezone name (default: "Asia/Tokyo")
//   - AUDIT_REPAIR_BATCH_LIMIT: Integer 1-1000 (default: 100)
//   - AUDIT_JOB_TIMEOUT: Duration string, e.g. "5m" (default: 5 minutes)
//   - AUDIT_HEALTH_PORT: Integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) (*Config, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	warn := func(field string, warnings []string) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, w := range warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", w))
		}
	}

	result := config.LoadEnvWithFallback("AUDIT_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		warn("cron_schedule", result.Warnings)
	}

	result = config.LoadEnvWithFallback("AUDIT_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		warn("timezone", result.Warnings)
	}

	result = config.LoadEnvInt("AUDIT_REPAIR_BATCH_LIMIT", cfg.RepairBatchLimit, func(v int) error {
		return config.ValidateIntRange(v, 1, 1000)
	})
	cfg.RepairBatchLimit = result.Value.(int)
	if result.FallbackApplied {
		warn("repair_batch_limit", result.Warnings)
	}

	result = config.LoadEnvDuration("AUDIT_JOB_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 30*time.Second, time.Hour)
	})
	cfg.JobTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		warn("job_timeout", result.Warnings)
	}

	result = config.LoadEnvInt("AUDIT_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		warn("health_port", result.Warnings)
	}

	metrics.SetFallbackActive("any", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
