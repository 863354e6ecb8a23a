// Package api exposes HTTP handlers for the activity analytics service.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/manjuvnair16/MLA-app-group3/internal/aggregate"
	"github.com/manjuvnair16/MLA-app-group3/internal/auth"
	"github.com/manjuvnair16/MLA-app-group3/internal/domain"
	"github.com/manjuvnair16/MLA-app-group3/internal/extractor"
	"github.com/manjuvnair16/MLA-app-group3/internal/importer"
	"github.com/manjuvnair16/MLA-app-group3/internal/timewindow"
)

// maxImportBytes caps FIT uploads.
const maxImportBytes = 8 << 20

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	parser  extractor.Parser
}

// NewHandler builds a Handler. parser may be nil when transcript parsing is
// not configured; /v1/parse then reports 503.
func NewHandler(service *domain.Service, parser extractor.Parser) *Handler {
	return &Handler{service: service, parser: parser}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/activities", h.activities)
	mux.HandleFunc("/v1/activities/", h.activitySubroutes)
	mux.HandleFunc("/v1/journal", h.journal)
	mux.HandleFunc("/v1/stats", h.statsAll)
	mux.HandleFunc("/v1/stats/", h.statsSubroutes)
	mux.HandleFunc("/v1/parse", h.parseTranscript)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createActivity(w, r)
	case http.MethodGet:
		h.listActivities(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) activitySubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/activities/")
	switch {
	case rest == "import":
		h.importActivity(w, r)
	case strings.HasSuffix(rest, "/comment"):
		id := strings.TrimSuffix(rest, "/comment")
		if id == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "missing activity id")
			return
		}
		h.updateComment(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown path")
	}
}

func (h *Handler) statsSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/stats/")
	switch {
	case rest == "":
		h.statsAll(w, r)
	case rest == "weekly" || rest == "weekly/":
		h.weeklyJournal(w, r)
	case strings.HasPrefix(rest, "daily_trend/"):
		h.dailyTrend(w, r, strings.TrimPrefix(rest, "daily_trend/"))
	case strings.HasPrefix(rest, "weekly_summary/"):
		h.weeklySummary(w, r, strings.TrimPrefix(rest, "weekly_summary/"))
	default:
		h.statsForUser(w, r, rest)
	}
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	_, ok := authorize(w, r, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), domain.CreateActivityInput{
		Username:        req.Username,
		ExerciseType:    req.ExerciseType,
		DurationMinutes: req.Duration,
		Description:     req.Description,
		Date:            req.Date,
		Source:          "api",
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, CreateActivityResponse{ID: activity.ID, Status: "created"})
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}

	records, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]ActivityView, 0, len(records))
	for _, record := range records {
		items = append(items, toActivityView(record))
	}
	writeJSON(w, http.StatusOK, ListActivitiesResponse{Activities: items})
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := h.service.UpdateComment(r.Context(), id, req.Comments); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "activity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UpdateCommentResponse{ID: id, Status: "updated"})
}

func (h *Handler) importActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := authorize(w, r, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	username := strings.TrimSpace(r.URL.Query().Get("user"))
	if username == "" {
		username = claims.Username
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to read upload")
		return
	}

	summary, err := importer.Decode(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), domain.CreateActivityInput{
		Username:        username,
		ExerciseType:    summary.ExerciseType,
		DurationMinutes: summary.DurationMinutes,
		Description:     summary.Description,
		Date:            summary.Date.Format(time.RFC3339),
		Source:          "fit_import",
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, CreateActivityResponse{ID: activity.ID, Status: "created"})
}

func (h *Handler) journal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}

	username := r.URL.Query().Get("user")
	if strings.TrimSpace(username) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user parameter")
		return
	}

	entries, err := h.service.ActivitiesInRange(
		r.Context(),
		username,
		r.URL.Query().Get("start"),
		r.URL.Query().Get("end"),
		splitTypes(r.URL.Query().Get("types")),
	)
	if err != nil {
		if errors.Is(err, timewindow.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "invalid_window", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, JournalResponse{Entries: entries})
}

func (h *Handler) statsAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}

	stats, err := h.service.AggregateAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Stats: stats})
}

func (h *Handler) statsForUser(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}

	stats, err := h.service.AggregateForUser(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Stats: stats})
}

func (h *Handler) dailyTrend(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}
	if username == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing username")
		return
	}

	trend, err := h.service.DailyTrend(r.Context(), username, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TrendResponse{Trend: trend})
}

func (h *Handler) weeklyJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}

	username := r.URL.Query().Get("user")
	if strings.TrimSpace(username) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user parameter")
		return
	}

	stats, err := h.service.WeeklyJournal(r.Context(), username, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		if errors.Is(err, timewindow.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "invalid_window", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, WeeklyJournalResponse{Stats: stats})
}

func (h *Handler) weeklySummary(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}
	if username == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing username")
		return
	}

	summary, err := h.service.WeeklySummary(r.Context(), username, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) parseTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	_, ok := authorize(w, r, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}
	if h.parser == nil {
		writeError(w, http.StatusServiceUnavailable, "not_configured", "transcript parsing is not configured")
		return
	}

	var req ParseTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "transcript is required")
		return
	}

	parsed, err := h.parser.Parse(r.Context(), req.Transcript, time.Now().UTC())
	if err != nil {
		if errors.Is(err, extractor.ErrNoWorkout) {
			writeJSON(w, http.StatusOK, ParseTranscriptResponse{Parsed: struct{}{}})
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ParseTranscriptResponse{Parsed: parsed})
}

// authorize extracts claims and enforces the scope. Read access is also
// granted to write-scoped tokens.
func authorize(w http.ResponseWriter, r *http.Request, scope string) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}

	allowed := claims.HasScope(scope)
	if !allowed && scope == auth.ScopeActivitiesRead {
		allowed = claims.HasScope(auth.ScopeActivitiesWrite)
	}
	if !allowed {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
		return nil, false
	}
	return claims, true
}

func splitTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CreateActivityRequest is the payload for POST /v1/activities.
type CreateActivityRequest struct {
	Username     string  `json:"username"`
	ExerciseType string  `json:"exerciseType"`
	Duration     float64 `json:"duration"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
}

// Validate ensures request correctness.
func (r CreateActivityRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(r.ExerciseType) == "" {
		return errors.New("exerciseType is required")
	}
	if r.Duration < 0 {
		return errors.New("duration must be >= 0")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

// CreateActivityResponse describes the response body for create and import.
type CreateActivityResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateCommentRequest carries the new comment text.
type UpdateCommentRequest struct {
	Comments string `json:"comments"`
}

// UpdateCommentResponse acknowledges a comment edit.
type UpdateCommentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ActivityView exposes a stored activity.
type ActivityView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	ExerciseType string    `json:"exerciseType"`
	Duration     float64   `json:"duration"`
	Description  string    `json:"description,omitempty"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListActivitiesResponse packages list results.
type ListActivitiesResponse struct {
	Activities []ActivityView `json:"activities"`
}

// JournalResponse packages date-range journal entries.
type JournalResponse struct {
	Entries []domain.JournalEntry `json:"entries"`
}

// StatsResponse wraps per-user aggregation rows.
type StatsResponse struct {
	Stats []aggregate.UserSummary `json:"stats"`
}

// TrendResponse wraps the dense daily trend series.
type TrendResponse struct {
	Trend []aggregate.TrendPoint `json:"trend"`
}

// WeeklyJournalResponse wraps per-type totals for an explicit range.
type WeeklyJournalResponse struct {
	Stats []aggregate.TypeTotal `json:"stats"`
}

// ParseTranscriptRequest carries the transcript to extract.
type ParseTranscriptRequest struct {
	Transcript string `json:"transcript"`
}

// ParseTranscriptResponse wraps extracted workout fields. Parsed is an empty
// object when the transcript holds no workout.
type ParseTranscriptResponse struct {
	Parsed interface{} `json:"parsed"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toActivityView(activity domain.Activity) ActivityView {
	return ActivityView{
		ID:           activity.ID,
		Username:     activity.Username,
		ExerciseType: activity.ExerciseType,
		Duration:     activity.DurationMinutes,
		Description:  activity.Description,
		Date:         activity.Date.Format(timewindow.DayFormat),
		CreatedAt:    activity.CreatedAt,
	}
}
