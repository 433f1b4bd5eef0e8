package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_ADDR", "SCHEDULE_SNAPSHOT_PATH", "DB_TYPE", "DB_DSN",
		"KAFKA_BROKERS", "KAFKA_TASK_EVENT_TOPIC", "ANTHROPIC_API_KEY",
		"OPENAI_API_KEY", "AUTHOR_EMAIL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "data/scheduled_tasks.json", cfg.SnapshotPath)
	assert.Equal(t, "author", cfg.AuthorEmail)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.True(t, cfg.KafkaEnabled())
}

func TestIntegrationStatus(t *testing.T) {
	cfg := &Config{AnthropicAPIKey: "sk-test"}
	status := cfg.IntegrationStatus()

	anthropic := status["anthropic_api"].(map[string]interface{})
	assert.Equal(t, "configured", anthropic["status"])

	openai := status["openai_api"].(map[string]interface{})
	assert.Equal(t, "not_configured", openai["status"])

	database := status["database"].(map[string]interface{})
	assert.Equal(t, "sqlite", database["type"])
}
