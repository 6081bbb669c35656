package identity

// Credential format
const (
	CredentialSeparator = ":"
	MaxIdentityIDLength = 128
)

// Response limits
const (
	MaxSessionBodyBytes = 64 << 10
	MaxErrorBodyBytes   = 1 << 10
)

// Error contexts
const (
	ErrContextResolve = "failed to resolve identity"
)

// Log messages
const (
	LogMsgSessionLookupFailed = "Session lookup failed"
)
