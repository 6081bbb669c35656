package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, dropping job"
)

// ============================================================================
// Log Messages - Timers
// ============================================================================

// Log messages for timer operations
const (
	LogMsgTimerScheduled = "Timer scheduled"
	LogMsgTimerFired     = "Timer fired"
	LogMsgTimerCancelled = "Cancelling pending timer"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
