package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/switch527/coin-base/pkg/postgresql"
	"github.com/switch527/coin-base/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig         `envPrefix:"APP_"`
	Postgres postgresql.Config `envPrefix:"POSTGRES_"`
	Redis    redis.Config      `envPrefix:"REDIS_"`
	Feed     FeedConfig        `envPrefix:"FEED_"`
	Archiver ArchiverConfig    `envPrefix:"ARCHIVER_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"coin-base"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"9900"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// FeedConfig represents the upstream feed connectivity configuration.
type FeedConfig struct {
	// Source selects the connectivity adapter: "ws" or "kafka".
	Source string `env:"SOURCE" envDefault:"ws"`

	Symbols   []string `env:"SYMBOLS" envSeparator:"," envDefault:"BTCUSD"`
	DataTypes []string `env:"DATA_TYPES" envSeparator:"," envDefault:"tickers,books,raw_books,trades,candles"`

	// Websocket gateway settings.
	GatewayURL string `env:"GATEWAY_URL" envDefault:"ws://localhost:8765/feed"`

	// Kafka settings.
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	TopicPrefix   string   `env:"TOPIC_PREFIX" envDefault:"marketdata"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"coin-base"`

	// ChannelBuffer bounds the per-stream demux channels.
	ChannelBuffer int `env:"CHANNEL_BUFFER" envDefault:"64"`
}

// ArchiverConfig represents the persistence worker configuration.
type ArchiverConfig struct {
	CommitEvery   int           `env:"COMMIT_EVERY" envDefault:"10"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"1s"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
