package handler

import (
	"fmt"
	"net/http"

	"github.com/mesto/mesto-api/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns counters in Prometheus text exposition format.
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "mesto_http_request_duration_seconds_count %d\n", snap.RequestDurationCount)
	writeMetric(w, "mesto_http_request_duration_seconds_sum %.6f\n", float64(snap.RequestDurationTotalNs)/1e9)
	writeMetric(w, "mesto_http_rate_limited_total %d\n", snap.RateLimited)

	writeMetric(w, "mesto_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "mesto_logins_total{status=\"%s\"} %d\n", metrics.LoginSuccess, snap.LoginsSucceeded)
	writeMetric(w, "mesto_logins_total{status=\"%s\"} %d\n", metrics.LoginFailure, snap.LoginsFailed)
	writeMetric(w, "mesto_profiles_updated_total %d\n", snap.ProfilesUpdated)
	writeMetric(w, "mesto_user_cache_hits_total %d\n", snap.UserCacheHits)
	writeMetric(w, "mesto_user_cache_misses_total %d\n", snap.UserCacheMisses)

	writeMetric(w, "mesto_cards_created_total %d\n", snap.CardsCreated)
	writeMetric(w, "mesto_cards_deleted_total %d\n", snap.CardsDeleted)
	writeMetric(w, "mesto_card_likes_total{action=\"like\"} %d\n", snap.CardsLiked)
	writeMetric(w, "mesto_card_likes_total{action=\"unlike\"} %d\n", snap.CardsUnliked)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
