package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/Mivy_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for operators
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Business BusinessMetrics `json:"business"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type BusinessMetrics struct {
	PostsCreated         float64            `json:"posts_created"`
	MembershipsActivated float64            `json:"memberships_activated"`
	MembershipsExpired   float64            `json:"memberships_expired"`
	MembershipVolumeUSD  float64            `json:"membership_volume_usd"`
	UsersByProtocol      map[string]float64 `json:"users_by_protocol"`
	RedactionsByBodyType map[string]float64 `json:"redactions_by_body_type"`
	StorageBreakerState  float64            `json:"storage_breaker_state"`
}

// AdminMetricsHandler summarizes the Prometheus registry as JSON
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
}

// NewAdminMetricsHandler creates a handler over gatherer, or the default
// registry when gatherer is nil
func NewAdminMetricsHandler(gatherer prometheus.Gatherer) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer}
}

// HandleGetMetrics returns JSON-formatted metrics
// @Summary Metrics summary
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := gatherMetrics(h.gatherer)
		if err != nil {
			respondServiceError(w, r, "Gather metrics", err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func gatherMetrics(g prometheus.Gatherer) (*AdminMetricsResponse, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{RequestsTotalByStatus: make(map[string]float64)},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Business: BusinessMetrics{
			UsersByProtocol:      make(map[string]float64),
			RedactionsByBodyType: make(map[string]float64),
		},
	}

	for _, mf := range families {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			avg, p95 := latencySummary(mf.GetMetric())
			resp.HTTP.AvgLatencyMs = avg * 1000
			resp.HTTP.P95LatencyMs = p95 * 1000
		case metrics.MetricNameHTTPRequestsInFlight:
			resp.HTTP.InFlight = sum(mf)
		case metrics.MetricNameEventsPublished:
			sumByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNamePostsCreated:
			resp.Business.PostsCreated = sum(mf)
		case metrics.MetricNameMembershipsActivated:
			resp.Business.MembershipsActivated = sum(mf)
		case metrics.MetricNameMembershipsExpired:
			resp.Business.MembershipsExpired = sum(mf)
		case metrics.MetricNameMembershipVolumeUSD:
			resp.Business.MembershipVolumeUSD = sum(mf)
		case metrics.MetricNameUsersCreated:
			sumByLabel(mf, metrics.LabelProtocol, resp.Business.UsersByProtocol)
		case metrics.MetricNameFeedRedactions:
			sumByLabel(mf, metrics.LabelBodyType, resp.Business.RedactionsByBodyType)
		case metrics.MetricNameStorageBreakerState:
			resp.Business.StorageBreakerState = sum(mf)
		}
	}

	return resp, nil
}

// value reads a counter or gauge sample
func value(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	return m.GetGauge().GetValue()
}

func sum(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += value(m)
	}
	return total
}

func sumByLabel(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, label); v != "" {
			into[v] += value(m)
		}
	}
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// latencySummary merges every labelled histogram series and returns the mean
// and an approximate p95 in seconds
func latencySummary(series []*dto.Metric) (float64, float64) {
	var count uint64
	var total float64
	var bounds []float64
	cumulative := make(map[float64]uint64)

	for _, m := range series {
		hist := m.GetHistogram()
		if hist == nil {
			continue
		}
		count += hist.GetSampleCount()
		total += hist.GetSampleSum()
		for _, b := range hist.GetBucket() {
			if _, seen := cumulative[b.GetUpperBound()]; !seen {
				bounds = append(bounds, b.GetUpperBound())
			}
			cumulative[b.GetUpperBound()] += b.GetCumulativeCount()
		}
	}
	if count == 0 {
		return 0, 0
	}

	return total / float64(count), estimateQuantile(bounds, cumulative, count, 0.95)
}

// estimateQuantile returns the upper bound of the first bucket reaching the
// quantile. bounds are in registration order, which is ascending.
func estimateQuantile(bounds []float64, cumulative map[float64]uint64, count uint64, quantile float64) float64 {
	target := float64(count) * quantile
	for _, b := range bounds {
		if float64(cumulative[b]) >= target {
			return b
		}
	}
	if len(bounds) > 0 {
		return bounds[len(bounds)-1]
	}
	return 0
}
