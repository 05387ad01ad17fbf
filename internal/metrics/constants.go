package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNamePostsCreated         = "posts_created_total"
	MetricNamePostLikes            = "post_likes_total"
	MetricNamePostComments         = "post_comments_total"
	MetricNameMembershipsActivated = "memberships_activated_total"
	MetricNameMembershipsExpired   = "memberships_expired_total"
	MetricNameMembershipVolumeUSD  = "membership_volume_usd_total"
	MetricNameUsersCreated         = "users_created_total"
	MetricNameFeedRedactions       = "feed_redactions_total"
	MetricNameStorageBreakerState  = "storage_breaker_state"
	MetricNameStorageUploads       = "storage_uploads_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextPostsCreated         = "Total number of posts created"
	HelpTextPostLikes            = "Total number of post likes"
	HelpTextPostComments         = "Total number of post comments"
	HelpTextMembershipsActivated = "Total number of memberships activated"
	HelpTextMembershipsExpired   = "Total number of memberships expired"
	HelpTextMembershipVolumeUSD  = "Total membership payments in USD"
	HelpTextUsersCreated         = "Total number of users created on first sign-in"
	HelpTextFeedRedactions       = "Total number of post bodies replaced by a teaser"
	HelpTextStorageBreakerState  = "Storage gateway breaker state (0 closed, 1 half-open, 2 open)"
	HelpTextStorageUploads       = "Total number of storage gateway uploads"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelGated    = "gated"
	LabelRenewal  = "renewal"
	LabelProtocol = "protocol"
	LabelBodyType = "body_type"
	LabelResult   = "result"
)

// Upload results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// UnmatchedRoute labels requests that no chi route matched
const UnmatchedRoute = "unmatched"

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
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
