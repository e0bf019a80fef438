package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	models "devshare/internal/domain/models/content"
	"devshare/internal/domain/services"
	"devshare/internal/httputil"
)

// ContentHandler handles content HTTP requests
type ContentHandler struct {
	contentService services.ContentService
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService services.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// CreateContent creates a new content record
// POST /api/content
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	var req services.CreateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CreatorID = userID

	rec, err := h.contentService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, rec)
}

// GetContent retrieves a content record by ID. Fetching counts as a view;
// every fetch counts, there is no dedup.
// GET /api/content/{id}
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	h.applyEngagement(w, r, h.contentService.RecordView)
}

// PublishContent publishes a record (idempotent; publishedAt set once)
// POST /api/content/{id}/publish
func (h *ContentHandler) PublishContent(w http.ResponseWriter, r *http.Request) {
	h.applyEngagement(w, r, h.contentService.Publish)
}

// LikeContent adds the authenticated user's like (idempotent)
// POST /api/content/{id}/likes
func (h *ContentHandler) LikeContent(w http.ResponseWriter, r *http.Request) {
	h.applyUserEngagement(w, r, h.contentService.Like)
}

// UnlikeContent removes the authenticated user's like (idempotent)
// DELETE /api/content/{id}/likes
func (h *ContentHandler) UnlikeContent(w http.ResponseWriter, r *http.Request) {
	h.applyUserEngagement(w, r, h.contentService.Unlike)
}

// RateContent records a rating from the authenticated user
// POST /api/content/{id}/ratings
func (h *ContentHandler) RateContent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content ID is required")
		return
	}

	var req services.RateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.contentService.Rate(r.Context(), id, req.Rating)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rec)
}

// ListContentByTags lists published content matching any of the given tags
// GET /api/content?tags=go,testing
func (h *ContentHandler) ListContentByTags(w http.ResponseWriter, r *http.Request) {
	tagsParam := r.URL.Query().Get("tags")
	if tagsParam == "" {
		httputil.RespondError(w, http.StatusBadRequest, "tags query parameter is required")
		return
	}

	records, err := h.contentService.ListByTags(r.Context(), strings.Split(tagsParam, ","))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// ListTrendingContent lists recently created published content by engagement
// GET /api/content/trending?limit=20
func (h *ContentHandler) ListTrendingContent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	records, err := h.contentService.ListTrending(r.Context(), limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// ListQuestions lists published questions, newest first
// GET /api/content/questions
func (h *ContentHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	records, err := h.contentService.ListQuestions(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// ListDiscussions lists published discussions referencing a question
// GET /api/content/{id}/discussions
func (h *ContentHandler) ListDiscussions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "question ID is required")
		return
	}

	records, err := h.contentService.ListDiscussions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// ListCreatorContent lists a creator's published content, newest first
// GET /api/creators/{id}/content
func (h *ContentHandler) ListCreatorContent(w http.ResponseWriter, r *http.Request) {
	creatorID := r.PathValue("id")
	if creatorID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "creator ID is required")
		return
	}

	records, err := h.contentService.ListByCreator(r.Context(), creatorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ContentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// applyEngagement runs an engagement transition that needs only the record id.
func (h *ContentHandler) applyEngagement(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (*models.Record, error),
) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content ID is required")
		return
	}

	rec, err := op(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rec)
}

// applyUserEngagement runs an engagement transition acting on behalf of the
// authenticated user.
func (h *ContentHandler) applyUserEngagement(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id, userID string) (*models.Record, error),
) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content ID is required")
		return
	}

	rec, err := op(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rec)
}
