package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/repository"
	"github.com/unikampus/kampus-backend/pkg/cache"
	"gorm.io/gorm"
)

// QuestionLikeService is the single-kind like engine for whole questions.
// Removing a like debits the asker with the balance floored at 0.
type QuestionLikeService interface {
	// Toggle likes the question, or removes the like if one exists. Outcome is Added or Removed.
	Toggle(ctx context.Context, actorID, questionID int64) (*domain.ReactionResult, error)
	HasLiked(ctx context.Context, actorID, questionID int64) (bool, error)
	Count(ctx context.Context, questionID int64) (int64, error)
	// Status combines HasLiked and Count
	Status(ctx context.Context, actorID, questionID int64) (*domain.LikeStatus, error)
	ListLiked(ctx context.Context, actorID int64, page, limit int) (*domain.LikedContentResponse, error)
}

type questionLikeService struct {
	engine ReactionService
}

// NewQuestionLikeService wraps a toggle engine over question_likes with flooring enabled
func NewQuestionLikeService(db *gorm.DB, points int, cacheService cache.Service, log *zerolog.Logger) QuestionLikeService {
	policy := ReactionPolicy{
		Source:      domain.QuestionSource,
		Points:      points,
		FloorAtZero: true,
	}
	engine := NewReactionService(
		db,
		policy,
		repository.NewContentRepository(db),
		repository.NewReactionRepository(db, policy.Source.ReactionTable),
		repository.NewPointRepository(db),
		cacheService,
		log,
	)
	return &questionLikeService{engine: engine}
}

func (s *questionLikeService) Toggle(ctx context.Context, actorID, questionID int64) (*domain.ReactionResult, error) {
	return s.engine.Apply(ctx, actorID, questionID, string(domain.ReactionLike))
}

func (s *questionLikeService) HasLiked(ctx context.Context, actorID, questionID int64) (bool, error) {
	kind, err := s.engine.Get(ctx, actorID, questionID)
	if err != nil {
		return false, err
	}
	return kind != nil && *kind == domain.ReactionLike, nil
}

func (s *questionLikeService) Count(ctx context.Context, questionID int64) (int64, error) {
	tally, err := s.engine.Tally(ctx, questionID)
	if err != nil {
		return 0, err
	}
	return tally.Likes, nil
}

func (s *questionLikeService) Status(ctx context.Context, actorID, questionID int64) (*domain.LikeStatus, error) {
	liked, err := s.HasLiked(ctx, actorID, questionID)
	if err != nil {
		return nil, err
	}
	count, err := s.Count(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeStatus{Liked: liked, Count: count}, nil
}

func (s *questionLikeService) ListLiked(ctx context.Context, actorID int64, page, limit int) (*domain.LikedContentResponse, error) {
	return s.engine.ListLiked(ctx, actorID, page, limit)
}
