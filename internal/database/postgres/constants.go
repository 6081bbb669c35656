package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error contexts
const (
	ErrContextAppendRound = "failed to archive round"
	ErrContextGetRound    = "failed to get archived round"
	ErrContextListRounds  = "failed to list archived rounds"
	ErrContextCountRounds = "failed to count archived rounds"
	ErrContextLatestSeq   = "failed to read latest round sequence"
	ErrContextWalkRounds  = "failed to walk archived rounds"
)

// Log messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
