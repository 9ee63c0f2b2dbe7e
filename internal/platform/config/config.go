// Package config loads service configuration from the environment so main
// stays lean.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures all server-level configuration.
type Config struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	AdminToken string `env:"ADMIN_TOKEN" envDefault:"dev-admin-token-change-in-production"`

	// DatabaseURL switches both registries to PostgreSQL stores when set;
	// empty keeps the in-memory stores.
	DatabaseURL string `env:"DATABASE_URL"`

	// RedisURL enables the asset lookup cache when set.
	RedisURL      string        `env:"REDIS_URL"`
	AssetCacheTTL time.Duration `env:"ASSET_CACHE_TTL" envDefault:"5m"`

	// KafkaBrokers enables the Kafka event sink when non-empty.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"registry-events"`
	EventBuffer  int      `env:"EVENT_BUFFER" envDefault:"256"`

	// Deployment identities mixed into every derived account address.
	RegistryID       string `env:"REGISTRY_ID" envDefault:"0x0000000000000000000000000000000000000101"`
	ImplementationID string `env:"IMPLEMENTATION_ID" envDefault:"0x0000000000000000000000000000000000000202"`

	// OwnerAddress pins the mock ownership client to a single owner. Empty
	// keeps the deterministic per-token owner.
	OwnerAddress string `env:"OWNER_ADDRESS"`

	// Asset naming template configuration.
	AssetNameLabel string `env:"ASSET_NAME_LABEL" envDefault:"Ape"`
	AssetBaseURI   string `env:"ASSET_BASE_URI" envDefault:"https://assets.example.com/tokens"`

	RoyaltySnapshotInterval time.Duration `env:"ROYALTY_SNAPSHOT_INTERVAL" envDefault:"168h"`
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
