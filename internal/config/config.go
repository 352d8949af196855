package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/community-analyzer/internal/analysis"
	"github.com/community-analyzer/internal/llm"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/storage"
)

// Load loads configuration from environment variables
// It first attempts to load from .env file, then reads environment variables
func Load() (*models.AppConfig, error) {
	// Try to load .env file (optional, ignore error if not found)
	_ = godotenv.Load()

	variants, err := loadVariants()
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	config := &models.AppConfig{
		// Gemini API settings
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", llm.DefaultModel),
		GeminiTimeout:        getEnvInt("GEMINI_TIMEOUT", 120),
		LLMTemperature:       getEnvFloat32("LLM_TEMPERATURE", 0.2),
		LLMTopP:              getEnvFloat32("LLM_TOP_P", 0),
		LLMTopK:              int32(getEnvInt("LLM_TOP_K", 0)),
		LLMMaxTokens:         int32(getEnvInt("LLM_MAX_TOKENS", 8192)),
		LLMRequestsPerMinute: getEnvInt("LLM_REQUESTS_PER_MINUTE", 15),

		// Data source settings
		DataSource:      strings.ToLower(getEnv("DATA_SOURCE", "supabase")),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseTimeout: getEnvInt("SUPABASE_TIMEOUT", 30),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		UserCacheSize:   getEnvInt("USER_CACHE_SIZE", storage.DefaultUserCacheSize),

		// Pipeline settings
		Variants:         variants,
		InferenceRetries: getEnvInt("INFERENCE_RETRIES", 0),

		// Output settings
		OutputDir:   getEnv("OUTPUT_DIR", "."),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3UseSSL:    getEnvBool("S3_USE_SSL", true),

		// Notifications
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),
		SlackToken:     getEnv("SLACK_TOKEN", ""),
		SlackChannel:   getEnv("SLACK_CHANNEL", ""),

		// Events
		NATSURL:   getEnv("NATS_URL", ""),
		NATSToken: getEnv("NATS_TOKEN", ""),

		// Service settings
		CommunityConfig: getEnv("COMMUNITY_CONFIG", ""),
		APIPort:         getEnvInt("API_PORT", 8080),
		Timezone:        getEnv("TIMEZONE", "UTC"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "production"),
	}

	// Validate configuration
	if err := validate(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// loadVariants reads CHUNK_SIZE_<VARIANT>, FAILURE_MODE_<VARIANT> and CONSOLIDATE_<VARIANT>
func loadVariants() (map[models.Variant]models.VariantSettings, error) {
	variants := models.DefaultVariantSettings()
	for v, settings := range variants {
		suffix := strings.ToUpper(v.String())

		settings.ChunkSize = getEnvInt("CHUNK_SIZE_"+suffix, settings.ChunkSize)
		settings.Consolidate = getEnvBool("CONSOLIDATE_"+suffix, settings.Consolidate)

		if raw := os.Getenv("FAILURE_MODE_" + suffix); raw != "" {
			mode, err := models.ParseFailureMode(raw)
			if err != nil {
				return nil, fmt.Errorf("FAILURE_MODE_%s: %w", suffix, err)
			}
			settings.FailureMode = mode
		}

		variants[v] = settings
	}
	return variants, nil
}

// validate checks if all required configuration values are set
func validate(cfg *models.AppConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	switch cfg.DataSource {
	case "supabase":
		if cfg.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if cfg.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_KEY is required")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE is postgres")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be one of: supabase, postgres; got %s", cfg.DataSource)
	}

	// Validate positive values
	if cfg.GeminiTimeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive, got %d", cfg.GeminiTimeout)
	}
	if cfg.SupabaseTimeout <= 0 {
		return fmt.Errorf("SUPABASE_TIMEOUT must be positive, got %d", cfg.SupabaseTimeout)
	}
	if cfg.UserCacheSize <= 0 {
		return fmt.Errorf("USER_CACHE_SIZE must be positive, got %d", cfg.UserCacheSize)
	}
	if cfg.LLMRequestsPerMinute < 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_MINUTE must not be negative, got %d", cfg.LLMRequestsPerMinute)
	}
	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMTemperature)
	}
	if cfg.InferenceRetries < 0 || cfg.InferenceRetries > analysis.MaxRetries {
		return fmt.Errorf("INFERENCE_RETRIES must be between 0 and %d, got %d", analysis.MaxRetries, cfg.InferenceRetries)
	}
	for _, v := range models.Variants {
		if size := cfg.Variants[v].ChunkSize; size < 1 {
			return fmt.Errorf("CHUNK_SIZE_%s must be positive, got %d", strings.ToUpper(v.String()), size)
		}
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535, got %d", cfg.APIPort)
	}

	// Optional integrations must be complete when enabled
	if cfg.S3Endpoint != "" && (cfg.S3Bucket == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "") {
		return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_ENDPOINT is set")
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if cfg.SlackToken != "" && cfg.SlackChannel == "" {
		return fmt.Errorf("SLACK_CHANNEL is required when SLACK_TOKEN is set")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %s", cfg.LogLevel)
	}

	return nil
}

// getEnv retrieves environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves environment variable as integer or returns default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvInt64 retrieves environment variable as int64 or returns default value
func getEnvInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvFloat32 retrieves environment variable as float32 or returns default value
func getEnvFloat32(key string, defaultValue float32) float32 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		return defaultValue
	}

	return float32(value)
}

// getEnvBool retrieves environment variable as bool or returns default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
