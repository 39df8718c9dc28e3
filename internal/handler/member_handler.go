package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/middleware"
	"github.com/unikampus/kampus-backend/internal/service"
)

// MemberHandler handles member HTTP requests
type MemberHandler struct {
	service service.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(service service.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// GetMyPoints handles GET /members/me/points
func (h *MemberHandler) GetMyPoints(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
		return
	}

	balance, err := h.service.PointBalance(c.Request.Context(), userID)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	common.SuccessResponse(c, balance, nil)
}
