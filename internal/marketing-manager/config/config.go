package config

import (
	"os"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
)

// Config holds every tunable the service reads from the environment. A .env
// file in the working directory is loaded first so local development does not
// need exported variables.
type Config struct {
	ServerAddr   string
	SnapshotPath string

	DBType string
	DBDSN  string

	KafkaBrokers   string
	KafkaTaskTopic string

	AnthropicAPIKey string
	OpenAIAPIKey    string

	AuthorEmail string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		hlog.Debugf("No .env file loaded: %v", err)
	}
	return &Config{
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		SnapshotPath:    getEnv("SCHEDULE_SNAPSHOT_PATH", "data/scheduled_tasks.json"),
		DBType:          os.Getenv("DB_TYPE"),
		DBDSN:           os.Getenv("DB_DSN"),
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		KafkaTaskTopic:  os.Getenv("KAFKA_TASK_EVENT_TOPIC"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AuthorEmail:     getEnv("AUTHOR_EMAIL", "author"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// KafkaEnabled reports whether event publishing is configured at all.
func (c *Config) KafkaEnabled() bool {
	return c.KafkaBrokers != ""
}

// IntegrationStatus summarizes which external integrations are live, for the
// service status endpoint. Key material never leaves the process.
func (c *Config) IntegrationStatus() map[string]interface{} {
	return map[string]interface{}{
		"anthropic_api": configured(c.AnthropicAPIKey != ""),
		"openai_api":    configured(c.OpenAIAPIKey != ""),
		"kafka":         configured(c.KafkaEnabled()),
		"database":      map[string]interface{}{"type": dbTypeLabel(c.DBType)},
	}
}

func configured(ok bool) map[string]interface{} {
	status := "not_configured"
	if ok {
		status = "configured"
	}
	return map[string]interface{}{"status": status}
}

func dbTypeLabel(t string) string {
	if t == "" {
		return "sqlite"
	}
	return t
}
