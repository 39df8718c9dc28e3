package repository

import (
	"context"

	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"gorm.io/gorm"
)

// ContentRepository resolves authorship of entries, answers and questions
type ContentRepository interface {
	WithTx(tx *gorm.DB) ContentRepository
	// AuthorOf returns the author's user ID, or common.ErrContentNotFound
	AuthorOf(ctx context.Context, src domain.ContentSource, contentID int64) (int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) WithTx(tx *gorm.DB) ContentRepository {
	return &contentRepository{db: tx}
}

func (r *contentRepository) AuthorOf(ctx context.Context, src domain.ContentSource, contentID int64) (int64, error) {
	var result struct {
		AuthorID int64 `gorm:"column:author_id"`
	}
	res := r.db.WithContext(ctx).
		Table(src.Table).
		Select(src.AuthorColumn+" AS author_id").
		Where(src.IDColumn+" = ?", contentID).
		Limit(1).
		Scan(&result)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, common.ErrContentNotFound
	}
	return result.AuthorID, nil
}
