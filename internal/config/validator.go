package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// MinAPIKeyLength is the shortest operator key accepted without a warning
const MinAPIKeyLength = 16

// Validation errors
var (
	ErrSchemaVersionMissing  = errors.New("ENV_SCHEMA_VERSION is not set")
	ErrSchemaVersionMismatch = errors.New("ENV_SCHEMA_VERSION mismatch")
	ErrMissingEnv            = errors.New("missing required environment variables")
)

// RequiredEnvVars must always be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// envRequirement adds variables that become mandatory once another variable has a value
type envRequirement struct {
	when     func(getenv func(string) string) bool
	requires []string
}

func equalsEnv(key, value string) func(func(string) string) bool {
	return func(getenv func(string) string) bool {
		return strings.EqualFold(getenv(key), value)
	}
}

func setEnv(key string) func(func(string) string) bool {
	return func(getenv func(string) string) bool {
		return getenv(key) != ""
	}
}

var conditionalRequirements = []envRequirement{
	{equalsEnv("ARCHIVE_BACKEND", ArchiveBackendPostgres), []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"}},
	{equalsEnv("ARCHIVE_BACKEND", ArchiveBackendBolt), []string{"ARCHIVE_PATH"}},
	{equalsEnv("IDENTITY_MODE", IdentityModeHTTP), []string{"IDENTITY_URL"}},
	{setEnv("DISCORD_TOKEN"), []string{"DISCORD_CHANNEL_ID"}},
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	return validateEnv(os.Getenv)
}

func validateEnv(getenv func(string) string) error {
	switch version := getenv("ENV_SCHEMA_VERSION"); {
	case version == "":
		return fmt.Errorf("%w - add it to your .env file (expected: %s)", ErrSchemaVersionMissing, ExpectedEnvSchemaVersion)
	case version != ExpectedEnvSchemaVersion:
		return fmt.Errorf("%w: expected %s, got %s - your .env file may be outdated", ErrSchemaVersionMismatch, ExpectedEnvSchemaVersion, version)
	}

	required := append([]string{}, RequiredEnvVars...)
	for _, req := range conditionalRequirements {
		if req.when(getenv) {
			required = append(required, req.requires...)
		}
	}

	var missing []string
	for _, key := range required {
		if getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings validates like ValidateEnv and also reports settings that work
// but are unsafe or surprising outside development
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}
	return envWarnings(os.Getenv), nil
}

func envWarnings(getenv func(string) string) []string {
	var warnings []string
	production := strings.EqualFold(getenv("ENVIRONMENT"), EnvironmentProduction)

	if key := getenv("API_KEY"); key == ExampleAPIKey || len(key) < MinAPIKeyLength {
		warnings = append(warnings, fmt.Sprintf("API_KEY is weak - use at least %d random characters (openssl rand -hex 32)", MinAPIKeyLength))
	}

	backend := strings.ToLower(getenv("ARCHIVE_BACKEND"))
	if production && (backend == "" || backend == ArchiveBackendMemory) {
		warnings = append(warnings, "ARCHIVE_BACKEND is memory - round history and proofs are lost on restart")
	}
	if backend == ArchiveBackendPostgres && production && getenv("DB_PASSWORD") == "postgres" {
		warnings = append(warnings, "DB_PASSWORD is the default value - please use a secure password")
	}

	if getenv("ROUND_COMMISSION_BPS") == "" {
		warnings = append(warnings, fmt.Sprintf("ROUND_COMMISSION_BPS not set - using default of %d basis points", DefaultCommissionBps))
	}

	if !strings.EqualFold(getenv("IDENTITY_MODE"), IdentityModeHTTP) && production {
		warnings = append(warnings, "IDENTITY_MODE is header - bearer credentials are trusted as player IDs")
	}

	return warnings
}
