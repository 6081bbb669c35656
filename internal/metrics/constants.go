package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameSecurityEvents       = "http_security_events_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Round metric names
const (
	MetricNameRoundsTotal           = "jackpot_rounds_total"
	MetricNameRoundLocks            = "jackpot_round_locks_total"
	MetricNameContributionsAccepted = "jackpot_contributions_accepted_total"
	MetricNameContributionsRejected = "jackpot_contributions_rejected_total"
	MetricNamePotValueCents         = "jackpot_pot_value_cents"
	MetricNameRoundParticipants     = "jackpot_round_participants"
	MetricNamePayoutCentsTotal      = "jackpot_payout_cents_total"
	MetricNameCommissionCentsTotal  = "jackpot_commission_cents_total"
	MetricNameIntegrityFaults       = "jackpot_integrity_faults_total"
	MetricNameArchiveFailures       = "jackpot_archive_failures_total"
)

// Gateway metric names
const (
	MetricNameSSEClientsConnected = "sse_clients_connected"
	MetricNameSSEEventsDropped    = "sse_events_dropped_total"
	MetricNameAnnouncementsSent   = "discord_announcements_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextSecurityEvents       = "Requests rejected by the security middleware by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Round metric help text
const (
	HelpTextRoundsTotal           = "Total number of finished rounds by outcome"
	HelpTextRoundLocks            = "Total number of round locks by trigger"
	HelpTextContributionsAccepted = "Total number of admitted contributions"
	HelpTextContributionsRejected = "Total number of rejected contributions by reason"
	HelpTextPotValueCents         = "Value of the current pot in cents"
	HelpTextRoundParticipants     = "Participants in the current round"
	HelpTextPayoutCentsTotal      = "Total cents paid out to winners"
	HelpTextCommissionCentsTotal  = "Total cents retained as commission"
	HelpTextIntegrityFaults       = "Draws that failed self-verification"
	HelpTextArchiveFailures       = "Completed rounds that could not be archived"
)

// Gateway metric help text
const (
	HelpTextSSEClientsConnected = "Current number of connected SSE clients"
	HelpTextSSEEventsDropped    = "Events dropped because a client buffer was full"
	HelpTextAnnouncementsSent   = "Discord announcements by delivery status"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelTrigger = "trigger"
	LabelReason  = "reason"
)

// Security event reasons
const (
	SecurityReasonRateLimited = "rate_limited"
	SecurityReasonAuthFailed  = "auth_failed"
)

// Outcome label values
const (
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
	OutcomeHalted    = "halted"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
