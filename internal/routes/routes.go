package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/unikampus/kampus-backend/internal/handler"
	"github.com/unikampus/kampus-backend/internal/middleware"
	"github.com/unikampus/kampus-backend/pkg/jwt"
)

// Handlers groups the handlers mounted under /api/v1
type Handlers struct {
	EntryReactions  *handler.ReactionHandler
	AnswerReactions *handler.ReactionHandler
	QuestionLikes   *handler.QuestionLikeHandler
	Members         *handler.MemberHandler
}

// Setup configures the reaction API routes
func Setup(
	router *gin.Engine,
	h Handlers,
	jwtManager *jwt.Manager,
	activity middleware.ActivityChecker,
	redisClient *redis.Client,
	writeRateLimit int,
) {
	api := router.Group("/api/v1", middleware.JWTAuth(jwtManager))

	// Writes additionally require an active account and are rate limited per member
	activeOnly := middleware.RequireActiveMember(activity)
	limit := middleware.RateLimitPerUser(redisClient, middleware.DefaultWriteRateLimitConfig(writeRateLimit))
	write := func(next gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{activeOnly, limit, next}
	}

	// Forum entries
	entries := api.Group("/forum/entries/:id")
	entries.POST("/reaction", write(h.EntryReactions.React)...)
	entries.GET("/reaction", h.EntryReactions.GetReaction)
	entries.GET("/reactions", h.EntryReactions.GetTally)

	// Question answers
	answers := api.Group("/questions/answers/:id")
	answers.POST("/reaction", write(h.AnswerReactions.React)...)
	answers.GET("/reaction", h.AnswerReactions.GetReaction)
	answers.GET("/reactions", h.AnswerReactions.GetTally)

	// Questions
	questions := api.Group("/questions/:id")
	questions.POST("/like", write(h.QuestionLikes.Toggle)...)
	questions.GET("/like", h.QuestionLikes.Status)

	// Profile listings
	liked := api.Group("/profile/liked")
	liked.GET("/entries", h.EntryReactions.ListLiked)
	liked.GET("/answers", h.AnswerReactions.ListLiked)
	liked.GET("/questions", h.QuestionLikes.ListLiked)

	api.GET("/members/me/points", h.Members.GetMyPoints)
}
