package bootstrap

import (
	"github.com/osse101/Mivy_Go/internal/config"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// SetupLogger installs the default slog logger from the application config.
// Source locations are only added in development environments.
func SetupLogger(cfg *config.Config) {
	addSource := cfg.Environment == EnvironmentDev || cfg.Environment == EnvironmentDevelopment

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	logger.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	logger.Info(LogMsgStartingMivy,
		"environment", cfg.Environment,
		"version", cfg.Version)

	logger.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"redis", cfg.RedisURL != "",
		"kafka_brokers", len(cfg.KafkaBrokers))
}
