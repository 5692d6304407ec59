package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Audit
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Audit struct {
		Enabled bool
	}
	Demo struct {
		Enabled       bool
		ResetSchedule string // Cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8088)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_enabled", true)

	// Demo mode defaults
	v.SetDefault("demo_mode", false)
	v.SetDefault("demo_reset_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
		},
		Demo: Demo{
			Enabled:       v.GetBool("DEMO_MODE"),
			ResetSchedule: v.GetString("DEMO_RESET_SCHEDULE"),
		},
	}
}
