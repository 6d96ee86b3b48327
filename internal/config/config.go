package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr   string
	MySQLDSN   string
	SQLitePath string

	RabbitMQURL         string
	RabbitExchange      string
	RabbitQueue         string
	RabbitRoutingKey    string
	RabbitConsumerTag   string
	RabbitPublishPrefix string

	SSEHeartbeat time.Duration
	HistoryLimit int

	RecipientScanLimit   int
	BroadcastBatchSize   int
	BroadcastConcurrency int
	BroadcastRatePerSec  int
	BroadcastTimeout     time.Duration

	AdminEmails []string

	PushAlertAPIKey        string
	PushAlertWebhookSecret string
	OneSignalAppID         string
	OneSignalAPIKey        string
	PushTimeout            time.Duration

	LogLevel string
	LogFile  string

	OTELServiceName string
	OTLPEndpoint    string
	OTLPInsecure    bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:             ":8080",
		SSEHeartbeat:         15 * time.Second,
		HistoryLimit:         50,
		RabbitExchange:       "notifications",
		RabbitQueue:          "notifications.broadcast",
		RabbitRoutingKey:     "notification.broadcast",
		RabbitConsumerTag:    "broadcast-consumer",
		RabbitPublishPrefix:  "notification",
		RecipientScanLimit:   1000,
		BroadcastBatchSize:   100,
		BroadcastConcurrency: 4,
		BroadcastTimeout:     30 * time.Second,
		PushTimeout:          5 * time.Second,
		LogFile:              "logs/teamboard.log",
		OTELServiceName:      "teamboard",
		OTLPInsecure:         true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_QUEUE"); v != "" {
		cfg.RabbitQueue = v
	}
	if v := os.Getenv("RABBITMQ_ROUTING_KEY"); v != "" {
		cfg.RabbitRoutingKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_PUBLISH_PREFIX"); v != "" {
		cfg.RabbitPublishPrefix = v
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	cfg.SSEHeartbeat = secondsEnv("SSE_HEARTBEAT_SECONDS", cfg.SSEHeartbeat)
	cfg.BroadcastTimeout = secondsEnv("BROADCAST_TIMEOUT_SECONDS", cfg.BroadcastTimeout)
	cfg.PushTimeout = secondsEnv("PUSH_TIMEOUT_SECONDS", cfg.PushTimeout)

	cfg.HistoryLimit = positiveEnv("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.RecipientScanLimit = positiveEnv("RECIPIENT_SCAN_LIMIT", cfg.RecipientScanLimit)
	cfg.BroadcastBatchSize = positiveEnv("BROADCAST_BATCH_SIZE", cfg.BroadcastBatchSize)
	cfg.BroadcastConcurrency = positiveEnv("BROADCAST_CONCURRENCY", cfg.BroadcastConcurrency)
	cfg.BroadcastRatePerSec = positiveEnv("BROADCAST_RATE_PER_SEC", cfg.BroadcastRatePerSec)

	cfg.AdminEmails = splitList(os.Getenv("ADMIN_EMAILS"))

	cfg.PushAlertAPIKey = os.Getenv("PUSHALERT_API_KEY")
	cfg.PushAlertWebhookSecret = os.Getenv("PUSHALERT_WEBHOOK_SECRET")
	cfg.OneSignalAppID = os.Getenv("ONESIGNAL_APP_ID")
	cfg.OneSignalAPIKey = os.Getenv("ONESIGNAL_API_KEY")

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg
}

func secondsEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func positiveEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
