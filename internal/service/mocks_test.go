package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/repository"
	"gorm.io/gorm"
)

// MockReactionRepository is a mock implementation of ReactionRepository
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) WithTx(tx *gorm.DB) repository.ReactionRepository {
	return m
}

func (m *MockReactionRepository) Find(ctx context.Context, contentID, userID int64) (*domain.Reaction, error) {
	args := m.Called(contentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reaction), args.Error(1)
}

func (m *MockReactionRepository) FindForUpdate(ctx context.Context, contentID, userID int64) (*domain.Reaction, error) {
	args := m.Called(contentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reaction), args.Error(1)
}

func (m *MockReactionRepository) Insert(ctx context.Context, contentID, userID int64, kind domain.ReactionKind) (bool, error) {
	args := m.Called(contentID, userID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionRepository) UpdateKind(ctx context.Context, contentID, userID int64, from, to domain.ReactionKind) (bool, error) {
	args := m.Called(contentID, userID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionRepository) Delete(ctx context.Context, contentID, userID int64, kind domain.ReactionKind) (bool, error) {
	args := m.Called(contentID, userID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionRepository) Tally(ctx context.Context, contentID int64) (*domain.ReactionTally, error) {
	args := m.Called(contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionTally), args.Error(1)
}

func (m *MockReactionRepository) ListLiked(ctx context.Context, userID int64, page, limit int) ([]int64, int64, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]int64), args.Get(1).(int64), args.Error(2)
}

// MockCache is a mock implementation of cache.Service
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(key).Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(keys).Error(0)
}

func (m *MockCache) GetTally(ctx context.Context, contentType string, contentID int64, dest interface{}) error {
	args := m.Called(contentType, contentID)
	if fill, ok := args.Get(1).(*domain.ReactionTally); ok && fill != nil {
		*dest.(*domain.ReactionTally) = *fill
	}
	return args.Error(0)
}

func (m *MockCache) SetTally(ctx context.Context, contentType string, contentID int64, value interface{}) error {
	return m.Called(contentType, contentID, value).Error(0)
}

func (m *MockCache) InvalidateTally(ctx context.Context, contentType string, contentID int64) error {
	return m.Called(contentType, contentID).Error(0)
}

func (m *MockCache) IsAvailable() bool {
	return m.Called().Bool(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called().Error(0)
}

// MockPointRepository is a mock implementation of PointRepository
type MockPointRepository struct {
	mock.Mock
}

func (m *MockPointRepository) WithTx(tx *gorm.DB) repository.PointRepository {
	return m
}

func (m *MockPointRepository) ApplyDelta(ctx context.Context, userID int64, delta int, floorAtZero bool) (int, error) {
	args := m.Called(userID, delta, floorAtZero)
	return args.Int(0), args.Error(1)
}

func (m *MockPointRepository) Balance(ctx context.Context, userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
