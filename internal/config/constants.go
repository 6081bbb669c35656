package config

import "time"

// Archive backends
const (
	ArchiveBackendMemory   = "memory"
	ArchiveBackendBolt     = "bolt"
	ArchiveBackendPostgres = "postgres"
)

// Identity modes
const (
	IdentityModeHeader = "header"
	IdentityModeHTTP   = "http"
)

// EnvironmentProduction enables the stricter startup warnings
const EnvironmentProduction = "prod"

// ExampleAPIKey is the placeholder shipped in .env.example
const ExampleAPIKey = "change-me"

// Defaults
const (
	DefaultArchivePath      = "data/archive.db"
	DefaultInventoryCatalog = "configs/catalog.toml"
	DefaultDiscordLocale    = "en-US"

	DefaultRateLimit = 1000

	DefaultDBMaxConns    = 10
	DefaultDBMaxIdle     = 5 * time.Minute
	DefaultDBMaxLifetime = time.Hour

	DefaultIdentityTimeout  = 5 * time.Second
	DefaultIdentityCacheTTL = time.Minute
	DefaultIdentityCacheMax = 1024
	DefaultInventoryTimeout = 5 * time.Second

	DefaultMinParticipants    = 2
	DefaultCountdown          = 30 * time.Second
	DefaultMaxParticipants    = 50
	DefaultMaxItemsPerDeposit = 20
	DefaultRevealLead         = 2 * time.Second
	DefaultRevealDuration     = 10 * time.Second
	DefaultCommissionBps      = 500
)
