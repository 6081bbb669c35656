package event

// EventSchemaVersion is stamped on every round lifecycle event. Consumers accept any
// minor version of the same major.
const EventSchemaVersion = "1.0"

// MetadataKeyTrigger names what locked the round
const MetadataKeyTrigger = "trigger"

// Error messages
const (
	ErrMsgNilPayload         = "event has no payload"
	ErrMsgUnsupportedVersion = "unsupported event schema version"

	ErrContextDecodePayload = "failed to decode event payload"
)

// LogMsgHandlerErrorFormat formats the aggregated error returned by Publish
const LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
