package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/pkg/cache"
)

func newMockedEngine(reactions *MockReactionRepository, tallies *MockCache) ReactionService {
	return NewReactionService(
		nil,
		ReactionPolicy{Source: domain.AnswerSource, Points: 5},
		nil,
		reactions,
		nil,
		tallies,
		nil,
	)
}

func TestTally_CacheHitSkipsRepository(t *testing.T) {
	reactions := new(MockReactionRepository)
	tallies := new(MockCache)
	svc := newMockedEngine(reactions, tallies)

	hit := &domain.ReactionTally{ContentID: 3, Likes: 4, Dislikes: 1}
	tallies.On("GetTally", "answer", int64(3)).Return(nil, hit)

	got, err := svc.Tally(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, hit, got)
	reactions.AssertNotCalled(t, "Tally", mock.Anything)
}

func TestTally_MissLoadsAndStores(t *testing.T) {
	reactions := new(MockReactionRepository)
	tallies := new(MockCache)
	svc := newMockedEngine(reactions, tallies)

	fresh := &domain.ReactionTally{ContentID: 3, Likes: 2}
	tallies.On("GetTally", "answer", int64(3)).Return(cache.ErrMiss, nil)
	reactions.On("Tally", int64(3)).Return(fresh, nil)
	tallies.On("SetTally", "answer", int64(3), fresh).Return(nil)

	got, err := svc.Tally(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	tallies.AssertExpectations(t)
}

func TestTally_CacheFailureFallsBackToRepository(t *testing.T) {
	reactions := new(MockReactionRepository)
	tallies := new(MockCache)
	svc := newMockedEngine(reactions, tallies)

	fresh := &domain.ReactionTally{ContentID: 3, Dislikes: 1}
	tallies.On("GetTally", "answer", int64(3)).Return(errors.New("connection refused"), nil)
	reactions.On("Tally", int64(3)).Return(fresh, nil)
	tallies.On("SetTally", "answer", int64(3), fresh).Return(errors.New("connection refused"))

	got, err := svc.Tally(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestApply_InvalidKindTouchesNothing(t *testing.T) {
	reactions := new(MockReactionRepository)
	tallies := new(MockCache)
	svc := newMockedEngine(reactions, tallies)

	_, err := svc.Apply(context.Background(), 1, 2, "Neutral")
	assert.ErrorIs(t, err, common.ErrInvalidReactionKind)
	reactions.AssertExpectations(t)
	tallies.AssertExpectations(t)
}

func TestGet_PropagatesStoreError(t *testing.T) {
	reactions := new(MockReactionRepository)
	svc := newMockedEngine(reactions, new(MockCache))

	reactions.On("Find", int64(2), int64(1)).Return(nil, errors.New("db down"))

	kind, err := svc.Get(context.Background(), 1, 2)
	assert.Error(t, err)
	assert.Nil(t, kind)
}

func TestMemberService(t *testing.T) {
	members := new(MockMemberRepository)
	points := new(MockPointRepository)
	svc := NewMemberService(members, points)
	ctx := context.Background()

	points.On("Balance", int64(7)).Return(12, nil)
	points.On("Balance", int64(8)).Return(0, common.ErrUserNotFound)
	members.On("FindByID", int64(7)).Return(&domain.Member{ID: 7, Active: false}, nil)

	balance, err := svc.PointBalance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, &domain.PointBalanceResponse{UserID: 7, Points: 12}, balance)

	_, err = svc.PointBalance(ctx, 8)
	assert.ErrorIs(t, err, common.ErrUserNotFound)

	active, err := svc.IsActive(ctx, 7)
	require.NoError(t, err)
	assert.False(t, active)
}
