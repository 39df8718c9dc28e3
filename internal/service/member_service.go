package service

import (
	"context"

	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/repository"
)

// MemberService exposes member state needed by the reaction surface
type MemberService interface {
	PointBalance(ctx context.Context, userID int64) (*domain.PointBalanceResponse, error)
	// IsActive returns common.ErrUserNotFound for unknown members
	IsActive(ctx context.Context, userID int64) (bool, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	pointRepo  repository.PointRepository
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repository.MemberRepository, pointRepo repository.PointRepository) MemberService {
	return &memberService{memberRepo: memberRepo, pointRepo: pointRepo}
}

func (s *memberService) PointBalance(ctx context.Context, userID int64) (*domain.PointBalanceResponse, error) {
	points, err := s.pointRepo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.PointBalanceResponse{UserID: userID, Points: points}, nil
}

func (s *memberService) IsActive(ctx context.Context, userID int64) (bool, error) {
	member, err := s.memberRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return member.Active, nil
}
