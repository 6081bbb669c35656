package round

// Lock triggers, recorded on round.locked events
const (
	TriggerCountdown       = "countdown"
	TriggerMaxParticipants = "max_participants"
	TriggerMaxPot          = "max_pot"
	TriggerAdmin           = "admin"
)

// Timer keys are suffixed with the round hash
const (
	TimerKeyCountdown = "countdown:"
	TimerKeyComplete  = "complete:"
)

// Input limits
const (
	MaxClientSeedLength = 64
	MaxItemIDLength     = 128
	BasisPoints         = 10000
)

// Rejection reasons for metrics
const (
	RejectReasonDuplicate       = "duplicate"
	RejectReasonClosed          = "closed"
	RejectReasonInvalidItem     = "invalid_item"
	RejectReasonTooManyItems    = "too_many_items"
	RejectReasonInvalidInput    = "invalid_input"
	RejectReasonHalted          = "halted"
	RejectReasonStopped         = "stopped"
	RejectReasonUnauthenticated = "unauthenticated"
	RejectReasonError           = "error"
)

// Error context strings
const (
	ErrContextStart          = "failed to start round engine"
	ErrContextOpenRound      = "failed to open round"
	ErrContextContribute     = "failed to add contribution"
	ErrContextCheckItem      = "failed to check item"
	ErrContextHistory        = "failed to load history"
	ErrContextHistoryEntry   = "failed to load archived round"
	ErrContextVerifyRound    = "failed to verify archived round"
	ErrContextWarmRegistry   = "failed to load archived items"
	ErrContextInvalidPolicy  = "invalid round policy"
	ErrContextLatestSequence = "failed to read latest sequence"
	ErrContextLockRound      = "failed to lock round"
)

// Log messages
const (
	LogMsgEngineStarted     = "Round engine started"
	LogMsgRoundOpened       = "Round opened"
	LogMsgContribution      = "Contribution admitted"
	LogMsgContributionError = "Contribution rejected"
	LogMsgCountdownStarted  = "Countdown started"
	LogMsgRoundLocked       = "Round locked"
	LogMsgRoundDrawn        = "Round drawn"
	LogMsgRoundCompleted    = "Round completed"
	LogMsgRoundAborted      = "Round aborted"
	LogMsgIntegrityFault    = "Draw failed self-verification, engine halted"
	LogMsgEngineResumed     = "Round engine resumed"
	LogMsgArchiveFailed     = "Failed to archive completed round"
	LogMsgPublishFailed     = "Failed to publish round event"
	LogMsgScheduleRefused   = "Timer refused, worker is shut down"
	LogMsgOpenFailed        = "Failed to open next round"
	LogMsgShuttingDown      = "Shutting down round engine"
)
