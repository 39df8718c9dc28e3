package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/repository"
	"github.com/unikampus/kampus-backend/pkg/cache"
	"gorm.io/gorm"
)

// maxTransitionAttempts bounds how often one request re-evaluates the
// transition table after another request changed the same row
const maxTransitionAttempts = 3

// ReactionPolicy parameterizes a toggle engine for one content type
type ReactionPolicy struct {
	Source domain.ContentSource
	// Points is the point constant N; each transition moves the author by Sign*N
	Points int
	// FloorAtZero clamps the author's balance at 0 when a debit is applied; credits are never clamped
	FloorAtZero bool
}

// ReactionService is the Like/Dislike toggle engine for one content type
type ReactionService interface {
	// Apply toggles, adds or switches actorID's reaction on contentID and moves the author's points.
	// rawKind must be "Like" or "Dislike".
	Apply(ctx context.Context, actorID, contentID int64, rawKind string) (*domain.ReactionResult, error)
	// Get returns actorID's stored kind, or nil when there is none
	Get(ctx context.Context, actorID, contentID int64) (*domain.ReactionKind, error)
	Tally(ctx context.Context, contentID int64) (*domain.ReactionTally, error)
	ListLiked(ctx context.Context, actorID int64, page, limit int) (*domain.LikedContentResponse, error)
}

type reactionService struct {
	db           *gorm.DB
	policy       ReactionPolicy
	contentRepo  repository.ContentRepository
	reactionRepo repository.ReactionRepository
	pointRepo    repository.PointRepository
	cache        cache.Service
	log          *zerolog.Logger
}

// NewReactionService creates a toggle engine. reactionRepo must be bound to policy.Source.ReactionTable.
func NewReactionService(
	db *gorm.DB,
	policy ReactionPolicy,
	contentRepo repository.ContentRepository,
	reactionRepo repository.ReactionRepository,
	pointRepo repository.PointRepository,
	cacheService cache.Service,
	log *zerolog.Logger,
) ReactionService {
	if cacheService == nil {
		cacheService = cache.NewService(nil, 0)
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &reactionService{
		db:           db,
		policy:       policy,
		contentRepo:  contentRepo,
		reactionRepo: reactionRepo,
		pointRepo:    pointRepo,
		cache:        cacheService,
		log:          log,
	}
}

// NewEntryReactionService wires the engine for forum entries
func NewEntryReactionService(db *gorm.DB, points int, cacheService cache.Service, log *zerolog.Logger) ReactionService {
	return newTableService(db, ReactionPolicy{Source: domain.EntrySource, Points: points}, cacheService, log)
}

// NewAnswerReactionService wires the engine for question answers
func NewAnswerReactionService(db *gorm.DB, points int, cacheService cache.Service, log *zerolog.Logger) ReactionService {
	return newTableService(db, ReactionPolicy{Source: domain.AnswerSource, Points: points}, cacheService, log)
}

func newTableService(db *gorm.DB, policy ReactionPolicy, cacheService cache.Service, log *zerolog.Logger) ReactionService {
	return NewReactionService(
		db,
		policy,
		repository.NewContentRepository(db),
		repository.NewReactionRepository(db, policy.Source.ReactionTable),
		repository.NewPointRepository(db),
		cacheService,
		log,
	)
}

// applied is what a committed transaction did
type applied struct {
	result   domain.ReactionResult
	authorID int64
	delta    int
	credited bool
}

func (s *reactionService) Apply(ctx context.Context, actorID, contentID int64, rawKind string) (*domain.ReactionResult, error) {
	kind, ok := domain.ParseReactionKind(rawKind)
	if !ok {
		return nil, common.ErrInvalidReactionKind
	}

	var out applied
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.applyTx(ctx, tx, actorID, contentID, kind)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrReactionConflict) {
			reactionConflicts.WithLabelValues(string(s.policy.Source.Type)).Inc()
		}
		return nil, err
	}

	contentType := string(s.policy.Source.Type)
	reactionsApplied.WithLabelValues(contentType, string(out.result.Outcome)).Inc()
	if out.credited {
		observePointDelta(contentType, out.delta)
	}
	if err := s.cache.InvalidateTally(ctx, contentType, contentID); err != nil {
		s.log.Warn().Err(err).
			Str("content_type", contentType).
			Int64("content_id", contentID).
			Msg("tally cache invalidation failed")
	}

	s.log.Debug().
		Str("content_type", contentType).
		Int64("content_id", contentID).
		Int64("actor_id", actorID).
		Int64("author_id", out.authorID).
		Str("outcome", string(out.result.Outcome)).
		Int("delta", out.delta).
		Msg("reaction applied")

	result := out.result
	return &result, nil
}

func (s *reactionService) applyTx(ctx context.Context, tx *gorm.DB, actorID, contentID int64, kind domain.ReactionKind) (applied, error) {
	contents := s.contentRepo.WithTx(tx)
	reactions := s.reactionRepo.WithTx(tx)
	points := s.pointRepo.WithTx(tx)

	authorID, err := contents.AuthorOf(ctx, s.policy.Source, contentID)
	if err != nil {
		return applied{}, err
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		existing, err := reactions.FindForUpdate(ctx, contentID, actorID)
		if err != nil {
			return applied{}, err
		}

		var current *domain.ReactionKind
		if existing != nil {
			k := existing.Kind
			current = &k
		}

		t, ok := domain.NextTransition(current, kind)
		if !ok {
			return applied{}, fmt.Errorf("no transition from stored kind %q", existing.Kind)
		}

		done, err := s.write(ctx, reactions, t, current, contentID, actorID, kind)
		if err != nil {
			return applied{}, err
		}
		if !done {
			// Another request changed the row between read and write
			continue
		}

		out := applied{
			result:   domain.ReactionResult{Outcome: t.Outcome},
			authorID: authorID,
			delta:    t.Sign * s.policy.Points,
		}
		if t.Action != domain.ActionDelete {
			stored := kind
			out.result.Kind = &stored
		}

		if out.delta != 0 {
			out.credited, err = s.credit(ctx, points, authorID, out.delta)
			if err != nil {
				return applied{}, err
			}
		}
		return out, nil
	}

	return applied{}, common.ErrReactionConflict
}

// write performs the store mutation of t as a compare-and-swap against current
func (s *reactionService) write(
	ctx context.Context,
	reactions repository.ReactionRepository,
	t domain.Transition,
	current *domain.ReactionKind,
	contentID, actorID int64,
	kind domain.ReactionKind,
) (bool, error) {
	switch t.Action {
	case domain.ActionInsert:
		return reactions.Insert(ctx, contentID, actorID, kind)
	case domain.ActionDelete:
		return reactions.Delete(ctx, contentID, actorID, *current)
	case domain.ActionUpdate:
		return reactions.UpdateKind(ctx, contentID, actorID, *current, kind)
	default:
		return false, fmt.Errorf("unknown reaction action %d", t.Action)
	}
}

// credit applies delta to the author. A vanished author is logged and tolerated.
func (s *reactionService) credit(ctx context.Context, points repository.PointRepository, authorID int64, delta int) (bool, error) {
	balance, err := points.ApplyDelta(ctx, authorID, delta, s.policy.FloorAtZero)
	if errors.Is(err, common.ErrUserNotFound) {
		authorMissing.WithLabelValues(string(s.policy.Source.Type)).Inc()
		s.log.Warn().
			Str("content_type", string(s.policy.Source.Type)).
			Int64("author_id", authorID).
			Int("delta", delta).
			Msg("author not found, point delta skipped")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("apply point delta: %w", err)
	}

	s.log.Debug().Int64("author_id", authorID).Int("delta", delta).Int("balance", balance).Msg("points applied")
	return true, nil
}

func (s *reactionService) Get(ctx context.Context, actorID, contentID int64) (*domain.ReactionKind, error) {
	reaction, err := s.reactionRepo.Find(ctx, contentID, actorID)
	if err != nil {
		return nil, err
	}
	if reaction == nil {
		return nil, nil
	}
	kind := reaction.Kind
	return &kind, nil
}

func (s *reactionService) Tally(ctx context.Context, contentID int64) (*domain.ReactionTally, error) {
	contentType := string(s.policy.Source.Type)

	var cached domain.ReactionTally
	err := s.cache.GetTally(ctx, contentType, contentID, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("content_type", contentType).Int64("content_id", contentID).Msg("tally cache read failed")
	}

	tally, err := s.reactionRepo.Tally(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTally(ctx, contentType, contentID, tally); err != nil {
		s.log.Warn().Err(err).Str("content_type", contentType).Int64("content_id", contentID).Msg("tally cache write failed")
	}
	return tally, nil
}

func (s *reactionService) ListLiked(ctx context.Context, actorID int64, page, limit int) (*domain.LikedContentResponse, error) {
	ids, total, err := s.reactionRepo.ListLiked(ctx, actorID, page, limit)
	if err != nil {
		return nil, err
	}
	return &domain.LikedContentResponse{
		ContentType: s.policy.Source.Type,
		IDs:         ids,
		Total:       total,
	}, nil
}
