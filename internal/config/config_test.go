package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-analyzer/internal/models"
)

var managedKeys = []string{
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TIMEOUT", "LLM_TEMPERATURE", "LLM_TOP_P", "LLM_TOP_K",
	"LLM_MAX_TOKENS", "LLM_REQUESTS_PER_MINUTE", "DATA_SOURCE", "SUPABASE_URL", "SUPABASE_KEY",
	"SUPABASE_TIMEOUT", "DATABASE_URL", "USER_CACHE_SIZE", "INFERENCE_RETRIES", "OUTPUT_DIR",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_USE_SSL",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "SLACK_TOKEN", "SLACK_CHANNEL", "NATS_URL", "NATS_TOKEN",
	"COMMUNITY_CONFIG", "API_PORT", "TIMEZONE", "LOG_LEVEL", "ENVIRONMENT",
	"CHUNK_SIZE_CHAT", "CHUNK_SIZE_INSIGHT", "CHUNK_SIZE_TASK", "CHUNK_SIZE_REWARD",
	"FAILURE_MODE_CHAT", "FAILURE_MODE_INSIGHT", "FAILURE_MODE_TASK", "FAILURE_MODE_REWARD",
	"CONSOLIDATE_CHAT", "CONSOLIDATE_INSIGHT", "CONSOLIDATE_TASK", "CONSOLIDATE_REWARD",
}

// setEnv clears every managed variable, then applies the required ones plus overrides
func setEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	for _, k := range managedKeys {
		t.Setenv(k, "")
	}
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "service-key")
	for k, v := range overrides {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 120, cfg.GeminiTimeout)
	assert.Equal(t, "supabase", cfg.DataSource)
	assert.Equal(t, 4096, cfg.UserCacheSize)
	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, models.DefaultVariantSettings(), cfg.Variants)

	assert.Equal(t, models.FailureStrict, cfg.Settings(models.VariantTask).FailureMode)
	assert.Equal(t, models.FailureLenient, cfg.Settings(models.VariantChat).FailureMode)
}

func TestLoadVariantOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"CHUNK_SIZE_CHAT":     "50",
		"FAILURE_MODE_REWARD": "Lenient",
		"CONSOLIDATE_INSIGHT": "false",
		"CONSOLIDATE_TASK":    "true",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Settings(models.VariantChat).ChunkSize)
	assert.Equal(t, models.FailureLenient, cfg.Settings(models.VariantReward).FailureMode)
	assert.False(t, cfg.Settings(models.VariantInsight).Consolidate)
	assert.True(t, cfg.Settings(models.VariantTask).Consolidate)
	assert.Equal(t, 150, cfg.Settings(models.VariantReward).ChunkSize)
}

func TestLoadPostgres(t *testing.T) {
	setEnv(t, map[string]string{
		"DATA_SOURCE":  "Postgres",
		"SUPABASE_URL": "",
		"DATABASE_URL": "postgres://localhost/analyzer",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DataSource)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   string
	}{
		{"missing gemini key", map[string]string{"GEMINI_API_KEY": ""}, "GEMINI_API_KEY is required"},
		{"missing supabase url", map[string]string{"SUPABASE_URL": ""}, "SUPABASE_URL is required"},
		{"postgres without url", map[string]string{"DATA_SOURCE": "postgres"}, "DATABASE_URL is required"},
		{"unknown data source", map[string]string{"DATA_SOURCE": "mongo"}, "DATA_SOURCE must be one of"},
		{"bad failure mode", map[string]string{"FAILURE_MODE_TASK": "sometimes"}, "FAILURE_MODE_TASK"},
		{"zero chunk size", map[string]string{"CHUNK_SIZE_INSIGHT": "0"}, "CHUNK_SIZE_INSIGHT must be positive"},
		{"negative retries", map[string]string{"INFERENCE_RETRIES": "-1"}, "INFERENCE_RETRIES"},
		{"too many retries", map[string]string{"INFERENCE_RETRIES": "64"}, "INFERENCE_RETRIES must be between 0 and 10"},
		{"temperature range", map[string]string{"LLM_TEMPERATURE": "3.5"}, "LLM_TEMPERATURE"},
		{"incomplete s3", map[string]string{"S3_ENDPOINT": "localhost:9000"}, "S3_BUCKET"},
		{"telegram without chat", map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc"}, "TELEGRAM_CHAT_ID"},
		{"slack without channel", map[string]string{"SLACK_TOKEN": "xoxb"}, "SLACK_CHANNEL"},
		{"bad port", map[string]string{"API_PORT": "70000"}, "API_PORT"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.overrides)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvHelpersFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_FLOAT", "1.5")
	t.Setenv("TEST_INT64", "-1001234567890")

	assert.Equal(t, 7, getEnvInt("TEST_INT", 7))
	assert.True(t, getEnvBool("TEST_BOOL", true))
	assert.Equal(t, float32(1.5), getEnvFloat32("TEST_FLOAT", 0))
	assert.Equal(t, int64(-1001234567890), getEnvInt64("TEST_INT64", 0))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET_KEY", "fallback"))
}
