package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Path parameter error messages
	ErrMsgMissingRoundHash = "Missing round hash"

	// Credential error messages
	ErrMsgMissingCredential = "Missing bearer credential"

	// Verification messages
	ErrMsgVerifyInputRejected = "Verification inputs are malformed"
)

// Success messages for API responses
const (
	MsgRoundLockedSuccess   = "Round locked"
	MsgEngineResumedSuccess = "Engine resumed"
)

// Log messages
const (
	LogMsgJoinFailed          = "Failed to join round"
	LogMsgHistoryFailed       = "Failed to load history"
	LogMsgHistoryEntryFailed  = "Failed to load archived round"
	LogMsgVerifyRoundFailed   = "Failed to verify archived round"
	LogMsgResolveFailed       = "Failed to resolve credential"
	LogMsgForceLockFailed     = "Failed to force lock"
	LogMsgResumeFailed        = "Failed to resume engine"
	LogMsgAdminAction         = "Admin action"
	LogMsgReadinessFailed     = "Readiness check failed"
	LogMsgEncodeFailed        = "Failed to encode JSON response"
	LogMsgWriteFailed         = "Failed to write response buffer"
	LogMsgDecodeFailedFormat  = "Failed to decode %s request"
	LogMsgDecodedFormat       = "%s request decoded"
	LogMsgRequestDetails      = "Request details"
	LogMsgOddRequestFieldArgs = "LogRequestFields called with odd number of arguments"
)

// Query and path parameters
const (
	ParamLimit     = "limit"
	ParamOffset    = "offset"
	ParamRoundHash = "roundHash"
)

// Header names and prefixes
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthStatusHalted      = "halted"
)
