package repository

import (
	"context"
	"time"

	"github.com/unikampus/kampus-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository stores at most one reaction per (content, user) in a single reaction table.
// Writes report whether a row was touched so callers can detect concurrent changes.
type ReactionRepository interface {
	WithTx(tx *gorm.DB) ReactionRepository
	// Find returns the user's reaction or nil when there is none
	Find(ctx context.Context, contentID, userID int64) (*domain.Reaction, error)
	// FindForUpdate is Find with a row lock where the dialect supports it
	FindForUpdate(ctx context.Context, contentID, userID int64) (*domain.Reaction, error)
	// Insert returns false when a row for (contentID, userID) already exists
	Insert(ctx context.Context, contentID, userID int64, kind domain.ReactionKind) (bool, error)
	// UpdateKind switches from -> to; returns false when the stored kind is no longer from
	UpdateKind(ctx context.Context, contentID, userID int64, from, to domain.ReactionKind) (bool, error)
	// Delete removes the row if it still has kind; returns false otherwise
	Delete(ctx context.Context, contentID, userID int64, kind domain.ReactionKind) (bool, error)
	Tally(ctx context.Context, contentID int64) (*domain.ReactionTally, error)
	// ListLiked returns content IDs the user currently likes, most recent first
	ListLiked(ctx context.Context, userID int64, page, limit int) ([]int64, int64, error)
}

type reactionRepository struct {
	db    *gorm.DB
	table string
}

// NewReactionRepository creates a ReactionRepository over the given reaction table
func NewReactionRepository(db *gorm.DB, table string) ReactionRepository {
	return &reactionRepository{db: db, table: table}
}

func (r *reactionRepository) WithTx(tx *gorm.DB) ReactionRepository {
	return &reactionRepository{db: tx, table: r.table}
}

func (r *reactionRepository) Find(ctx context.Context, contentID, userID int64) (*domain.Reaction, error) {
	return r.find(r.db.WithContext(ctx), contentID, userID)
}

func (r *reactionRepository) FindForUpdate(ctx context.Context, contentID, userID int64) (*domain.Reaction, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), contentID, userID)
}

func (r *reactionRepository) find(db *gorm.DB, contentID, userID int64) (*domain.Reaction, error) {
	var reaction domain.Reaction
	res := db.Table(r.table).
		Where("content_id = ? AND user_id = ?", contentID, userID).
		Limit(1).
		Find(&reaction)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &reaction, nil
}

func (r *reactionRepository) Insert(ctx context.Context, contentID, userID int64, kind domain.ReactionKind) (bool, error) {
	reaction := &domain.Reaction{
		ContentID: contentID,
		UserID:    userID,
		Kind:      kind,
		UpdatedAt: time.Now(),
	}
	res := r.db.WithContext(ctx).
		Table(r.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(reaction)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) UpdateKind(ctx context.Context, contentID, userID int64, from, to domain.ReactionKind) (bool, error) {
	res := r.db.WithContext(ctx).
		Table(r.table).
		Where("content_id = ? AND user_id = ? AND kind = ?", contentID, userID, from).
		Updates(map[string]interface{}{
			"kind":       to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) Delete(ctx context.Context, contentID, userID int64, kind domain.ReactionKind) (bool, error) {
	res := r.db.WithContext(ctx).
		Table(r.table).
		Where("content_id = ? AND user_id = ? AND kind = ?", contentID, userID, kind).
		Delete(&domain.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) Tally(ctx context.Context, contentID int64) (*domain.ReactionTally, error) {
	var result struct {
		Likes    int64 `gorm:"column:likes"`
		Dislikes int64 `gorm:"column:dislikes"`
	}
	err := r.db.WithContext(ctx).
		Table(r.table).
		Select(
			"COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0) AS likes, "+
				"COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0) AS dislikes",
			domain.ReactionLike, domain.ReactionDislike,
		).
		Where("content_id = ?", contentID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &domain.ReactionTally{
		ContentID: contentID,
		Likes:     result.Likes,
		Dislikes:  result.Dislikes,
	}, nil
}

func (r *reactionRepository) ListLiked(ctx context.Context, userID int64, page, limit int) ([]int64, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND kind = ?", userID, domain.ReactionLike).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ids := []int64{}
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND kind = ?", userID, domain.ReactionLike).
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
