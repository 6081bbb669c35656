package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is how many earlier session files survive startup
	LogFileRetentionCount = 9

	// ServiceName tags every log record
	ServiceName = "jackpot-engine"
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingEngine      = "Starting JackpotEngine"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Dependency Wiring
// =============================================================================

const (
	// AnnouncerWorkers is the number of goroutines sending Discord messages
	AnnouncerWorkers = 1

	// AnnouncerQueueSize bounds pending Discord messages
	AnnouncerQueueSize = 32

	// AnnouncerJobTimeout bounds one Discord request
	AnnouncerJobTimeout = 10 * time.Second

	// TimersName labels the round timer worker in logs
	TimersName = "round timers"

	// HealthCheckArchive names the archive readiness check
	HealthCheckArchive = "archive"
)

// Log and error messages for dependency wiring
const (
	LogMsgArchiveOpened              = "Archive opened"
	LogMsgIdentityConfigured         = "Identity resolver configured"
	LogMsgInventoryConfigured        = "Inventory checker configured"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgAnnouncerDisabled          = "Discord announcer disabled, no token configured"
	ErrMsgFailedOpenArchive          = "failed to open archive"
	ErrMsgFailedMigrate              = "failed to run migrations"
	ErrMsgFailedConnectDB            = "failed to connect to database"
	ErrMsgFailedLoadCatalog          = "failed to load inventory catalog"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedCreateDiscord        = "failed to create Discord session"
	ErrMsgFailedStartEngine          = "failed to start round engine"
	ErrMsgUnknownArchiveBackend      = "unknown archive backend"
	ErrMsgUnknownIdentityMode        = "unknown identity mode"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgShuttingDownEngine   = "Shutting down round engine..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgEngineShutdownFailed = "Round engine shutdown failed"
	LogMsgArchiveCloseFailed   = "Archive close failed"
)
