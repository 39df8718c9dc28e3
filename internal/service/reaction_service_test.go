package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/unikampus/kampus-backend/internal/common"
	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/testutil"
	"github.com/unikampus/kampus-backend/pkg/cache"
	"gorm.io/gorm"
)

const (
	testEntryPoints  = 2
	testAnswerPoints = 5
)

type ReactionEngineSuite struct {
	suite.Suite
	db      *gorm.DB
	ctx     context.Context
	entries ReactionService
	answers ReactionService

	author *domain.Member
	actor  *domain.Member
	other  *domain.Member
}

func TestReactionEngineSuite(t *testing.T) {
	suite.Run(t, new(ReactionEngineSuite))
}

func (s *ReactionEngineSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.ctx = context.Background()
	s.entries = NewEntryReactionService(s.db, testEntryPoints, nil, nil)
	s.answers = NewAnswerReactionService(s.db, testAnswerPoints, nil, nil)

	s.author = testutil.CreateMember(s.T(), s.db, "author", 10)
	s.actor = testutil.CreateMember(s.T(), s.db, "actor", 0)
	s.other = testutil.CreateMember(s.T(), s.db, "other", 0)
}

func (s *ReactionEngineSuite) points() int {
	return testutil.Points(s.T(), s.db, s.author.ID)
}

func (s *ReactionEngineSuite) setPoints(v int) {
	s.Require().NoError(s.db.Model(&domain.Member{}).Where("id = ?", s.author.ID).UpdateColumn("points", v).Error)
}

func (s *ReactionEngineSuite) apply(svc ReactionService, actorID, contentID int64, kind string) *domain.ReactionResult {
	res, err := svc.Apply(s.ctx, actorID, contentID, kind)
	s.Require().NoError(err)
	s.Require().NotNil(res)
	return res
}

func (s *ReactionEngineSuite) stored(svc ReactionService, actorID, contentID int64) *domain.ReactionKind {
	kind, err := svc.Get(s.ctx, actorID, contentID)
	s.Require().NoError(err)
	return kind
}

func (s *ReactionEngineSuite) TestTransitionTable() {
	like, dislike := domain.ReactionLike, domain.ReactionDislike

	tests := []struct {
		name        string
		existing    *domain.ReactionKind
		requested   domain.ReactionKind
		wantOutcome domain.Outcome
		wantKind    *domain.ReactionKind
		wantDelta   int
	}{
		{"none+like", nil, like, domain.OutcomeAdded, &like, +testEntryPoints},
		{"none+dislike", nil, dislike, domain.OutcomeAdded, &dislike, 0},
		{"like+like", &like, like, domain.OutcomeRemoved, nil, -testEntryPoints},
		{"dislike+dislike", &dislike, dislike, domain.OutcomeRemoved, nil, 0},
		{"like+dislike", &like, dislike, domain.OutcomeSwitched, &dislike, -testEntryPoints},
		{"dislike+like", &dislike, like, domain.OutcomeSwitched, &like, +testEntryPoints},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)
			if tt.existing != nil {
				s.apply(s.entries, s.actor.ID, entry.ID, string(*tt.existing))
			}
			before := s.points()

			res := s.apply(s.entries, s.actor.ID, entry.ID, string(tt.requested))

			s.Equal(tt.wantOutcome, res.Outcome)
			s.Equal(tt.wantKind, res.Kind)
			s.Equal(tt.wantKind, s.stored(s.entries, s.actor.ID, entry.ID))
			s.Equal(before+tt.wantDelta, s.points())
			s.LessOrEqual(testutil.CountReactions(s.T(), s.db, domain.EntrySource.ReactionTable, entry.ID, s.actor.ID), int64(1))
		})
	}
}

func (s *ReactionEngineSuite) TestToggleOffIsIdempotent() {
	for _, kind := range []string{"Like", "Dislike"} {
		s.Run(kind, func() {
			answer := testutil.CreateAnswer(s.T(), s.db, s.author.ID)
			before := s.points()

			s.apply(s.answers, s.actor.ID, answer.ID, kind)
			s.apply(s.answers, s.actor.ID, answer.ID, kind)

			s.Nil(s.stored(s.answers, s.actor.ID, answer.ID))
			s.Equal(before, s.points())
		})
	}
}

func (s *ReactionEngineSuite) TestSwitchConservation() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)

	s.apply(s.entries, s.actor.ID, entry.ID, "Like")
	afterLike := s.points()
	res := s.apply(s.entries, s.actor.ID, entry.ID, "Dislike")

	s.Equal(domain.OutcomeSwitched, res.Outcome)
	s.Equal(afterLike-testEntryPoints, s.points())
	s.Equal(int64(1), testutil.CountReactions(s.T(), s.db, domain.EntrySource.ReactionTable, entry.ID, s.actor.ID))
	s.Equal(domain.ReactionDislike, *s.stored(s.entries, s.actor.ID, entry.ID))
}

func (s *ReactionEngineSuite) TestNonInterference() {
	e1 := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	e2 := testutil.CreateEntry(s.T(), s.db, s.author.ID)

	s.apply(s.entries, s.other.ID, e1.ID, "Dislike")
	s.apply(s.entries, s.actor.ID, e2.ID, "Like")

	s.apply(s.entries, s.actor.ID, e1.ID, "Like")
	s.apply(s.entries, s.actor.ID, e1.ID, "Like")

	s.Equal(domain.ReactionDislike, *s.stored(s.entries, s.other.ID, e1.ID))
	s.Equal(domain.ReactionLike, *s.stored(s.entries, s.actor.ID, e2.ID))

	// Same ID in another content type is a different item
	s.Nil(s.stored(s.answers, s.actor.ID, e2.ID))
}

// U1 likes answer A1 authored by U2 at balance 0, then toggles it off
func (s *ReactionEngineSuite) TestScenario_AnswerLikeAndToggleOff() {
	s.setPoints(0)
	answer := testutil.CreateAnswer(s.T(), s.db, s.author.ID)

	res := s.apply(s.answers, s.actor.ID, answer.ID, "Like")
	s.Equal(domain.OutcomeAdded, res.Outcome)
	s.Equal(5, s.points())

	res = s.apply(s.answers, s.actor.ID, answer.ID, "Like")
	s.Equal(domain.OutcomeRemoved, res.Outcome)
	s.Nil(res.Kind)
	s.Equal(0, s.points())
}

// U1 dislikes entry E1 authored by U2 at balance 10, switches to Like, then back
func (s *ReactionEngineSuite) TestScenario_EntryDislikeSwitchBack() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	s.Equal(10, s.points())

	s.apply(s.entries, s.actor.ID, entry.ID, "Dislike")
	s.Equal(10, s.points())

	s.apply(s.entries, s.actor.ID, entry.ID, "Like")
	s.Equal(12, s.points())

	s.apply(s.entries, s.actor.ID, entry.ID, "Dislike")
	s.Equal(10, s.points())
}

func (s *ReactionEngineSuite) TestInvalidKindChangesNothing() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)

	for _, kind := range []string{"Neutral", "like", "", "LIKE"} {
		res, err := s.entries.Apply(s.ctx, s.actor.ID, entry.ID, kind)
		s.ErrorIs(err, common.ErrInvalidReactionKind, kind)
		s.Nil(res)
	}
	s.Nil(s.stored(s.entries, s.actor.ID, entry.ID))
	s.Equal(10, s.points())
}

func (s *ReactionEngineSuite) TestGetReaction() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	s.Nil(s.stored(s.entries, s.actor.ID, entry.ID))

	s.apply(s.entries, s.actor.ID, entry.ID, "Like")
	s.Equal(domain.ReactionLike, *s.stored(s.entries, s.actor.ID, entry.ID))

	// Unknown content reads as no reaction
	s.Nil(s.stored(s.entries, s.actor.ID, entry.ID+1000))
}

func (s *ReactionEngineSuite) TestContentNotFound() {
	res, err := s.entries.Apply(s.ctx, s.actor.ID, 9999, "Like")
	s.ErrorIs(err, common.ErrContentNotFound)
	s.Nil(res)
	s.Equal(int64(0), testutil.CountReactions(s.T(), s.db, domain.EntrySource.ReactionTable, 9999, s.actor.ID))
}

func (s *ReactionEngineSuite) TestDeletedAuthorIsTolerated() {
	ghost := testutil.CreateMember(s.T(), s.db, "ghost", 0)
	entry := testutil.CreateEntry(s.T(), s.db, ghost.ID)
	s.Require().NoError(s.db.Delete(&domain.Member{}, ghost.ID).Error)

	res, err := s.entries.Apply(s.ctx, s.actor.ID, entry.ID, "Like")
	s.Require().NoError(err)
	s.Equal(domain.OutcomeAdded, res.Outcome)
	s.Equal(domain.ReactionLike, *s.stored(s.entries, s.actor.ID, entry.ID))
}

func (s *ReactionEngineSuite) TestEntryPathDoesNotFloor() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	s.apply(s.entries, s.actor.ID, entry.ID, "Like")
	s.setPoints(0)

	s.apply(s.entries, s.actor.ID, entry.ID, "Dislike")
	s.Equal(-testEntryPoints, s.points())
}

func (s *ReactionEngineSuite) TestConcurrentSameUserNeverDuplicates() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	before := s.points()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.entries.Apply(s.ctx, s.actor.ID, entry.ID, "Like")
			assert.NoError(s.T(), err)
		}()
	}
	wg.Wait()

	rows := testutil.CountReactions(s.T(), s.db, domain.EntrySource.ReactionTable, entry.ID, s.actor.ID)
	s.LessOrEqual(rows, int64(1))
	s.Equal(before+int(rows)*testEntryPoints, s.points())
}

func (s *ReactionEngineSuite) TestConcurrentDifferentUsersAllCount() {
	entry := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	before := s.points()

	actors := make([]*domain.Member, 8)
	for i := range actors {
		actors[i] = testutil.CreateMember(s.T(), s.db, "fan"+string(rune('a'+i)), 0)
	}

	var wg sync.WaitGroup
	for _, a := range actors {
		wg.Add(1)
		go func(actorID int64) {
			defer wg.Done()
			_, err := s.entries.Apply(s.ctx, actorID, entry.ID, "Like")
			assert.NoError(s.T(), err)
		}(a.ID)
	}
	wg.Wait()

	tally, err := s.entries.Tally(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal(int64(len(actors)), tally.Likes)
	s.Equal(before+len(actors)*testEntryPoints, s.points())
}

func (s *ReactionEngineSuite) TestListLiked() {
	e1 := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	e2 := testutil.CreateEntry(s.T(), s.db, s.author.ID)
	e3 := testutil.CreateEntry(s.T(), s.db, s.author.ID)

	s.apply(s.entries, s.actor.ID, e1.ID, "Like")
	s.apply(s.entries, s.actor.ID, e2.ID, "Dislike")
	s.apply(s.entries, s.actor.ID, e3.ID, "Like")
	s.apply(s.entries, s.actor.ID, e3.ID, "Like")

	liked, err := s.entries.ListLiked(s.ctx, s.actor.ID, 1, 20)
	s.Require().NoError(err)
	s.Equal(domain.ContentEntry, liked.ContentType)
	s.Equal(int64(1), liked.Total)
	s.Equal([]int64{e1.ID}, liked.IDs)
}

func TestTally_InvalidatedAfterApply(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	tallies := cache.NewService(client, time.Minute)

	svc := NewEntryReactionService(db, testEntryPoints, tallies, nil)
	author := testutil.CreateMember(t, db, "author", 0)
	actor := testutil.CreateMember(t, db, "actor", 0)
	entry := testutil.CreateEntry(t, db, author.ID)
	key := fmt.Sprintf("tally:entry:%d", entry.ID)

	tally, err := svc.Tally(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tally.Likes)
	assert.True(t, mr.Exists(key))

	_, err = svc.Apply(ctx, actor.ID, entry.ID, "Like")
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	tally, err = svc.Tally(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.Likes)
	assert.Equal(t, int64(0), tally.Dislikes)
}
