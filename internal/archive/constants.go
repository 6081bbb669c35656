package archive

import "time"

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Append retry defaults
const (
	DefaultAppendAttempts  = 5
	DefaultAppendBaseDelay = 100 * time.Millisecond
	DefaultAppendMaxDelay  = 2 * time.Second
)

// Bolt layout
const (
	BoltFileMode    = 0o600
	BoltOpenTimeout = time.Second
)

var (
	bucketRounds   = []byte("rounds")
	bucketSequence = []byte("sequence")
)

// Error messages
const (
	ErrMsgMissingHash       = "archive entry has no round hash"
	ErrMsgNotCompleted      = "only completed rounds can be archived, got"
	ErrMsgProofHashMismatch = "proof round hash does not match round"
	ErrMsgWinnerMismatch    = "round winner does not match proof"
	ErrMsgTicketMismatch    = "round ticket does not match proof"
	ErrMsgEntriesMismatch   = "round participants do not match proof entries"
	ErrMsgTotalMismatch     = "round total does not match proof entries"
)

// Error contexts
const (
	ErrContextAppend   = "failed to append archive entry"
	ErrContextGet      = "failed to get archive entry"
	ErrContextList     = "failed to list archive entries"
	ErrContextOpenBolt = "failed to open bolt archive"
)

// Log messages
const (
	LogMsgAppendRetry   = "Archive append failed, retrying"
	LogMsgBoltOpened    = "Bolt archive opened"
	LogMsgEntryAppended = "Round archived"
)
