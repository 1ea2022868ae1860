package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync/atomic"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	})
}

// handleReady reports whether the server can render pages. It does not call
// the backend; a failing backend surfaces as Failed pages, not as an
// unready server.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.shuttingDown.Load() {
		checks["server"] = "shutting_down"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["server"] = "ok"
	}

	if cs, ok := s.reader.(cacheStatser); ok {
		entries := make(map[string]int)
		for name, st := range cs.Stats() {
			entries[name] = st.Size
		}
		checks["cache"] = map[string]any{"entries": entries, "status": "ok"}
	} else {
		checks["cache"] = "disabled"
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.traceMiddleware.GetMetrics()
	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()

	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", name, help, name, kind, name, value)
	}

	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_client_errors_total", "counter", "Responses with a 4xx status", traceMetrics.ClientErrors)
	metric("http_server_errors_total", "counter", "Responses with a 5xx status", traceMetrics.ServerErrors)
	metric("http_requests_in_flight", "gauge", "Requests currently being served", traceMetrics.InFlight)
	metric("http_response_time_avg_microseconds", "gauge", "Average response time", traceMetrics.AverageResponseTime)

	metric("pages_rendered_total", "counter", "Partials rendered in a terminal state", atomic.LoadInt64(&s.appMetrics.pagesRendered))
	metric("fetch_failures_total", "counter", "Partials rendered in the Failed state", atomic.LoadInt64(&s.appMetrics.fetchFailures))

	if cs, ok := s.reader.(cacheStatser); ok {
		stats := cs.Stats()
		names := make([]string, 0, len(stats))
		for name := range stats {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "# HELP cache_hits_total Total cache hits\n# TYPE cache_hits_total counter\n")
		for _, name := range names {
			fmt.Fprintf(w, "cache_hits_total{cache=%q} %d\n", name, stats[name].Hits)
		}
		fmt.Fprintf(w, "\n# HELP cache_misses_total Total cache misses\n# TYPE cache_misses_total counter\n")
		for _, name := range names {
			fmt.Fprintf(w, "cache_misses_total{cache=%q} %d\n", name, stats[name].Misses)
		}
		fmt.Fprintf(w, "\n# HELP cache_entries Current cache entries\n# TYPE cache_entries gauge\n")
		for _, name := range names {
			fmt.Fprintf(w, "cache_entries{cache=%q} %d\n", name, stats[name].Size)
		}
		fmt.Fprintln(w)
	}

	metric("rate_limit_hits_total", "counter", "Requests rejected by the rate limiter", rateLimitMetrics.Limited)
	metric("active_rate_limit_clients", "gauge", "Currently tracked rate limit clients", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "counter", "Total suspicious requests detected", securityMetrics.SuspiciousRequests)
	metric("blocked_requests_total", "counter", "Suspicious requests rejected", securityMetrics.BlockedRequests)
	metric("uptime_seconds", "gauge", "Application uptime in seconds", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
