package database

import "time"

// Connection pool defaults
const (
	DefaultMinConnections int32 = 2
	DefaultMaxConnections       = 10
	DefaultPingTimeout          = 5 * time.Second
)

// Migrations
const (
	MigrationDialect = "postgres"
	MigrationsDir    = "migrations"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
