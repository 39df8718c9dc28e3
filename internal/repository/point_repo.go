package repository

import (
	"context"
	"errors"

	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"gorm.io/gorm"
)

// PointRepository is the point ledger: members.points is only ever changed through ApplyDelta
type PointRepository interface {
	WithTx(tx *gorm.DB) PointRepository
	// ApplyDelta atomically adds delta to the member's balance and returns the new balance.
	// With floorAtZero a debit is clamped at 0; credits are always added in full.
	// Returns common.ErrUserNotFound if the member is gone.
	ApplyDelta(ctx context.Context, userID int64, delta int, floorAtZero bool) (int, error)
	Balance(ctx context.Context, userID int64) (int, error)
}

type pointRepository struct {
	db *gorm.DB
}

// NewPointRepository creates a new PointRepository
func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) WithTx(tx *gorm.DB) PointRepository {
	return &pointRepository{db: tx}
}

func (r *pointRepository) ApplyDelta(ctx context.Context, userID int64, delta int, floorAtZero bool) (int, error) {
	db := r.db.WithContext(ctx)

	// Increment in SQL, never read-modify-write in Go
	expr := gorm.Expr("points + ?", delta)
	if floorAtZero && delta < 0 {
		expr = gorm.Expr("CASE WHEN points + ? < 0 THEN 0 ELSE points + ? END", delta, delta)
	}

	res := db.Model(&domain.Member{}).
		Where("id = ?", userID).
		UpdateColumn("points", expr)
	if res.Error != nil {
		return 0, res.Error
	}
	// MySQL reports 0 affected rows when the value did not change (e.g. floored 0 -> 0),
	// so a miss is confirmed by reading the balance below.

	return r.balance(db, userID)
}

func (r *pointRepository) Balance(ctx context.Context, userID int64) (int, error) {
	return r.balance(r.db.WithContext(ctx), userID)
}

func (r *pointRepository) balance(db *gorm.DB, userID int64) (int, error) {
	var member domain.Member
	err := db.Select("id", "points").
		Where("id = ?", userID).
		Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, common.ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return member.Points, nil
}
