package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	SecurityEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSecurityEvents,
			Help: HelpTextSecurityEvents,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Round Metrics
var (
	RoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsTotal,
			Help: HelpTextRoundsTotal,
		},
		[]string{LabelOutcome},
	)

	RoundLocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundLocks,
			Help: HelpTextRoundLocks,
		},
		[]string{LabelTrigger},
	)

	ContributionsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameContributionsAccepted,
			Help: HelpTextContributionsAccepted,
		},
	)

	ContributionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContributionsRejected,
			Help: HelpTextContributionsRejected,
		},
		[]string{LabelReason},
	)

	PotValueCents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePotValueCents,
			Help: HelpTextPotValueCents,
		},
	)

	RoundParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRoundParticipants,
			Help: HelpTextRoundParticipants,
		},
	)

	PayoutCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayoutCentsTotal,
			Help: HelpTextPayoutCentsTotal,
		},
	)

	CommissionCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCommissionCentsTotal,
			Help: HelpTextCommissionCentsTotal,
		},
	)

	IntegrityFaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIntegrityFaults,
			Help: HelpTextIntegrityFaults,
		},
	)

	ArchiveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameArchiveFailures,
			Help: HelpTextArchiveFailures,
		},
	)
)

// Gateway Metrics
var (
	SSEClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClientsConnected,
			Help: HelpTextSSEClientsConnected,
		},
	)

	SSEEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSSEEventsDropped,
			Help: HelpTextSSEEventsDropped,
		},
		[]string{LabelType},
	)

	AnnouncementsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAnnouncementsSent,
			Help: HelpTextAnnouncementsSent,
		},
		[]string{LabelStatus},
	)
)
