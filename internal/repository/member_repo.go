package repository

import (
	"context"
	"errors"

	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository member data access
type MemberRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// FindByID returns the member or common.ErrUserNotFound
func (r *memberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}
