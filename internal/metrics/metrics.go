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

// Business Metrics
var (
	PostsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePostsCreated,
			Help: HelpTextPostsCreated,
		},
		[]string{LabelGated},
	)

	PostLikes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePostLikes,
			Help: HelpTextPostLikes,
		},
	)

	PostComments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePostComments,
			Help: HelpTextPostComments,
		},
	)

	MembershipsActivated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMembershipsActivated,
			Help: HelpTextMembershipsActivated,
		},
		[]string{LabelRenewal},
	)

	MembershipsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMembershipsExpired,
			Help: HelpTextMembershipsExpired,
		},
	)

	MembershipVolumeUSD = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMembershipVolumeUSD,
			Help: HelpTextMembershipVolumeUSD,
		},
	)

	UsersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUsersCreated,
			Help: HelpTextUsersCreated,
		},
		[]string{LabelProtocol},
	)

	FeedRedactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedRedactions,
			Help: HelpTextFeedRedactions,
		},
		[]string{LabelBodyType},
	)

	StorageBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStorageBreakerState,
			Help: HelpTextStorageBreakerState,
		},
	)

	StorageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorageUploads,
			Help: HelpTextStorageUploads,
		},
		[]string{LabelResult},
	)
)
