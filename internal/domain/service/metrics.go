package service

import "time"

// Login outcomes reported by the auth flow.
const (
	LoginOutcomeSuccess = "success"
	LoginOutcomeFailure = "failure"
)

// AuthMetrics receives authentication and request telemetry.
type AuthMetrics interface {
	RecordLogin(outcome string)
	RecordAuthRejection(reason string)
	RecordHTTPRequest(method, route string, status int, elapsed time.Duration)
}
