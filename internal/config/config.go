package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/JackpotEngine_Go/internal/ledger"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	Environment string `validate:"required"`
	APIKey      string // API key for admin endpoints
	Version     string

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string
	// RateLimit is requests per client per five minutes; negative disables limiting
	RateLimit int

	// Archive
	ArchiveBackend string `validate:"oneof=memory bolt postgres"`
	ArchivePath    string `validate:"required_if=ArchiveBackend bolt"`
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxConns     int           `validate:"min=1"`
	DBMaxIdle      time.Duration `validate:"min=0"`
	DBMaxLifetime  time.Duration `validate:"min=0"`

	// Identity
	IdentityMode     string        `validate:"oneof=header http"`
	IdentityURL      string        `validate:"required_if=IdentityMode http,omitempty,url"`
	IdentityTimeout  time.Duration `validate:"min=0"`
	IdentityCacheTTL time.Duration `validate:"min=0"`
	IdentityCacheMax int           `validate:"min=1"`

	// Inventory
	InventoryCatalog string
	InventoryURL     string `validate:"omitempty,url"`
	InventoryTimeout time.Duration

	// Round policy
	MinParticipants    int           `validate:"min=1"`
	Countdown          time.Duration `validate:"min=0"`
	MaxParticipants    int           `validate:"min=0"`
	MaxPotCents        int64         `validate:"min=0"`
	MaxItemsPerDeposit int           `validate:"min=1"`
	RevealLead         time.Duration `validate:"min=0"`
	RevealDuration     time.Duration `validate:"min=0"`
	CommissionBps      int           `validate:"min=0,max=10000"`

	// Discord announcer (disabled when token is empty)
	DiscordToken     string
	DiscordChannelID string `validate:"required_with=DiscordToken"`
	DiscordLocale    string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		APIKey:      getEnv("API_KEY", ""),
		Version:     getEnv("VERSION", "dev"),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		RateLimit:      getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimit),

		ArchiveBackend: strings.ToLower(getEnv("ARCHIVE_BACKEND", ArchiveBackendMemory)),
		ArchivePath:    getEnv("ARCHIVE_PATH", DefaultArchivePath),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "jackpot"),
		DBMaxConns:     getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdle:      getEnvAsDuration("DB_MAX_IDLE", DefaultDBMaxIdle),
		DBMaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", DefaultDBMaxLifetime),

		IdentityMode:     strings.ToLower(getEnv("IDENTITY_MODE", IdentityModeHeader)),
		IdentityURL:      getEnv("IDENTITY_URL", ""),
		IdentityTimeout:  getEnvAsDuration("IDENTITY_TIMEOUT", DefaultIdentityTimeout),
		IdentityCacheTTL: getEnvAsDuration("IDENTITY_CACHE_TTL", DefaultIdentityCacheTTL),
		IdentityCacheMax: getEnvAsInt("IDENTITY_CACHE_MAX", DefaultIdentityCacheMax),

		InventoryCatalog: getEnv("INVENTORY_CATALOG", DefaultInventoryCatalog),
		InventoryURL:     getEnv("INVENTORY_URL", ""),
		InventoryTimeout: getEnvAsDuration("INVENTORY_TIMEOUT", DefaultInventoryTimeout),

		MinParticipants:    getEnvAsInt("ROUND_MIN_PARTICIPANTS", DefaultMinParticipants),
		Countdown:          getEnvAsDuration("ROUND_COUNTDOWN", DefaultCountdown),
		MaxParticipants:    getEnvAsInt("ROUND_MAX_PARTICIPANTS", DefaultMaxParticipants),
		MaxPotCents:        getEnvAsInt64("ROUND_MAX_POT_CENTS", 0),
		MaxItemsPerDeposit: getEnvAsInt("ROUND_MAX_ITEMS_PER_DEPOSIT", DefaultMaxItemsPerDeposit),
		RevealLead:         getEnvAsDuration("ROUND_REVEAL_LEAD", DefaultRevealLead),
		RevealDuration:     getEnvAsDuration("ROUND_REVEAL_DURATION", DefaultRevealDuration),
		CommissionBps:      getEnvAsInt("ROUND_COMMISSION_BPS", DefaultCommissionBps),

		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
		DiscordLocale:    getEnv("DISCORD_LOCALE", DefaultDiscordLocale),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.MaxParticipants > ledger.MaxDistinctColors {
		return fmt.Errorf("invalid configuration: ROUND_MAX_PARTICIPANTS must be <= %d", ledger.MaxDistinctColors)
	}
	if c.MaxParticipants > 0 && c.MaxParticipants < c.MinParticipants {
		return fmt.Errorf("invalid configuration: ROUND_MAX_PARTICIPANTS must be >= ROUND_MIN_PARTICIPANTS")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default on absence or error
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration parses a Go duration string such as "30s"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
