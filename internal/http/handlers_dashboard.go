package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"activitylog/internal/dashboard"
	"activitylog/internal/log"
	"activitylog/internal/middleware/trace"
)

// dashboardErrorMessage is all a visitor learns about a failed build.
const dashboardErrorMessage = "The activity log could not be processed. Check the server logs for details."

// handleDashboard renders the headline boxes and the four charts. Any
// failure renders nothing of the dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.reportTimeout)
	defer cancel()
	logger := log.FromContext(ctx)

	if s.templates == nil {
		logger.ErrorContext(ctx, "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	report, err := s.reports.Report(ctx)
	if err != nil {
		logger.LogError(ctx, "Dashboard report failed", err, log.OpBuild, nil)
		s.renderError(ctx, w)
		return
	}

	page, err := dashboard.Build(report, s.chartOptions)
	if err != nil {
		logger.LogError(ctx, "Dashboard charts failed", err, log.OpBuild, nil)
		s.renderError(ctx, w)
		return
	}

	// Render into a buffer so a template failure cannot leave half a page.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		logger.LogError(ctx, "Dashboard template execution failed", err, log.OpRender, nil)
		s.renderError(ctx, w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(ctx context.Context, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	data := struct{ Message, RequestID string }{
		Message:   dashboardErrorMessage,
		RequestID: trace.GetRequestID(ctx),
	}
	if err := s.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		log.FromContext(ctx).LogError(ctx, "Error template execution failed", err, log.OpRender, nil)
	}
}

// handleSummary returns the aggregated report as JSON.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.reportTimeout)
	defer cancel()

	report, err := s.reports.Report(ctx)
	if err != nil {
		log.FromContext(ctx).LogError(ctx, "Summary report failed", err, log.OpBuild, nil)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "activity log could not be processed"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
