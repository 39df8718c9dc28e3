package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/middleware"
	"github.com/unikampus/kampus-backend/internal/service"
	"github.com/unikampus/kampus-backend/pkg/ginutil"
)

// QuestionLikeHandler serves question like endpoints
type QuestionLikeHandler struct {
	service service.QuestionLikeService
}

// NewQuestionLikeHandler creates a new QuestionLikeHandler
func NewQuestionLikeHandler(service service.QuestionLikeService) *QuestionLikeHandler {
	return &QuestionLikeHandler{service: service}
}

// Toggle handles POST /questions/:id/like
func (h *QuestionLikeHandler) Toggle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
		return
	}

	questionID, err := ginutil.ParamID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid question ID", err)
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), userID, questionID)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// Status handles GET /questions/:id/like
func (h *QuestionLikeHandler) Status(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
		return
	}

	questionID, err := ginutil.ParamID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid question ID", err)
		return
	}

	status, err := h.service.Status(c.Request.Context(), userID, questionID)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, status, nil)
}

// ListLiked handles GET /profile/liked/questions
func (h *QuestionLikeHandler) ListLiked(c *gin.Context) {
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
