package config

import (
	"strings"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string        `mapstructure:"GENERAL_VERSION"`
	Environment          string        `mapstructure:"ENVIRONMENT"`
	ServerPort           int           `mapstructure:"SERVER_PORT"`
	DatabaseHost         string        `mapstructure:"DB_HOST"`
	DatabasePort         int           `mapstructure:"DB_PORT"`
	DatabaseName         string        `mapstructure:"DB_NAME"`
	DatabaseUser         string        `mapstructure:"DB_USER"`
	DatabasePassword     string        `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string        `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int           `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int           `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string        `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret            string        `mapstructure:"JWT_SECRET"`
	JWTExpiry            time.Duration `mapstructure:"JWT_EXPIRY"`
	SMTPHost             string        `mapstructure:"SMTP_HOST"`
	SMTPPort             int           `mapstructure:"SMTP_PORT"`
	SMTPUser             string        `mapstructure:"SMTP_USER"`
	SMTPPassword         string        `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom             string        `mapstructure:"SMTP_FROM"`
	MinioEndpoint        string        `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey       string        `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey       string        `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket          string        `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL          bool          `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL       string        `mapstructure:"MINIO_PUBLIC_URL"`
	NatsURL              string        `mapstructure:"NATS_URL"`
	EmailRetryInterval   time.Duration `mapstructure:"EMAIL_RETRY_INTERVAL"`
	EmailMaxAttempts     int           `mapstructure:"EMAIL_MAX_ATTEMPTS"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"JWT_SECRET", "JWT_EXPIRY",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "SMTP_FROM",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL", "MINIO_PUBLIC_URL",
	"NATS_URL",
	"EMAIL_RETRY_INTERVAL", "EMAIL_MAX_ATTEMPTS",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}
	setDefaults()

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"smtp", config.SMTPHost != "",
		"minio", config.MinioEndpoint != "",
		"nats", config.NatsURL != "",
	)
	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	ConfigInstance = config
	return config, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func setDefaults() {
	viper.SetDefault("JWT_EXPIRY", 24*time.Hour)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@estatehub.local")
	viper.SetDefault("MINIO_BUCKET", "properties")
	viper.SetDefault("EMAIL_RETRY_INTERVAL", time.Hour)
	viper.SetDefault("EMAIL_MAX_ATTEMPTS", 5)
	viper.SetDefault("DB_CACHE_RESET", -1)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if config.IsProduction() && len(config.JWTSecret) < 32 {
		return log.ErrMsg("Fatal error: JWT_SECRET must be at least 32 characters in production")
	}

	if config.JWTExpiry <= 0 {
		return log.Error("Fatal error: invalid JWT_EXPIRY", "expiry", config.JWTExpiry)
	}

	if config.MinioEndpoint != "" {
		if config.MinioAccessKey == "" || config.MinioSecretKey == "" {
			return log.ErrMsg(
				"Fatal error: MINIO_ACCESS_KEY and MINIO_SECRET_KEY required when MINIO_ENDPOINT is set",
			)
		}
	}

	if config.SMTPHost != "" && config.SMTPPort <= 0 {
		return log.Error("Fatal error: invalid SMTP port", "port", config.SMTPPort)
	}

	if config.EmailRetryInterval < time.Minute {
		return log.Error("Fatal error: EMAIL_RETRY_INTERVAL must be at least one minute", "interval", config.EmailRetryInterval)
	}

	if config.EmailMaxAttempts <= 0 {
		return log.Error("Fatal error: invalid EMAIL_MAX_ATTEMPTS", "attempts", config.EmailMaxAttempts)
	}

	return nil
}
