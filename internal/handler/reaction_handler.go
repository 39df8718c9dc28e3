package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/middleware"
	"github.com/unikampus/kampus-backend/internal/service"
	"github.com/unikampus/kampus-backend/pkg/ginutil"
)

// ReactionHandler serves Like/Dislike endpoints for one content type (entries or answers)
type ReactionHandler struct {
	service service.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(service service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

// React handles POST .../:id/reaction
func (h *ReactionHandler) React(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
		return
	}

	contentID, err := ginutil.ParamID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	var req domain.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Apply(c.Request.Context(), userID, contentID, req.Kind)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// GetReaction handles GET .../:id/reaction
func (h *ReactionHandler) GetReaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
		return
	}

	contentID, err := ginutil.ParamID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	kind, err := h.service.Get(c.Request.Context(), userID, contentID)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, domain.ReactionStatus{Kind: kind}, nil)
}

// GetTally handles GET .../:id/reactions
func (h *ReactionHandler) GetTally(c *gin.Context) {
	contentID, err := ginutil.ParamID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	tally, err := h.service.Tally(c.Request.Context(), contentID)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, tally, nil)
}

// ListLiked handles GET /profile/liked/{entries,answers}
func (h *ReactionHandler) ListLiked(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
		return
	}

	page, limit := pagination(c)
	liked, err := h.service.ListLiked(c.Request.Context(), userID, page, limit)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, liked, &common.Meta{Page: page, Limit: limit, Total: liked.Total})
}

// pagination reads page/limit with the listing defaults applied
func pagination(c *gin.Context) (int, int) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// handleReactionError maps reaction errors to HTTP responses
func handleReactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidReactionKind):
		common.ErrorResponse(c, http.StatusBadRequest, "Reaction kind must be Like or Dislike", err)
	case errors.Is(err, common.ErrContentNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Content not found", err)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Member not found", err)
	case errors.Is(err, common.ErrInactiveMember):
		common.ErrorResponse(c, http.StatusForbidden, "Account is not active", err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
