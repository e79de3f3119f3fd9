package service

import (
	"context"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/models"
)

type memberService struct {
	memberRepository    store.MemberRepository
	borrowingRepository store.BorrowingRepository
	now                 Clock

	logger *logger.Logger
}

func NewMemberService(
	memberRepository store.MemberRepository,
	borrowingRepository store.BorrowingRepository,
	now Clock,
	logger *logger.Logger,
) MemberService {
	return &memberService{
		memberRepository:    memberRepository,
		borrowingRepository: borrowingRepository,
		now:                 now,
		logger:              logger,
	}
}

func (s *memberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := s.memberRepository.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range members {
		members[i].Penalized = members[i].IsPenalized(now)
	}

	return members, nil
}

func (s *memberService) GetMember(ctx context.Context, code string) (models.Member, error) {
	member, err := s.memberRepository.GetMember(ctx, code)
	if err != nil {
		return models.Member{}, err
	}

	member.Penalized = member.IsPenalized(s.now())
	return member, nil
}

func (s *memberService) CreateMember(ctx context.Context, member models.Member) (models.Member, error) {
	created, err := s.memberRepository.CreateMember(ctx, member)
	if err != nil {
		return models.Member{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*memberService.CreateMember").
		Str("member_code", created.Code).
		Msg("member registered")

	return created, nil
}

func (s *memberService) ListBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error) {
	if _, err := s.memberRepository.GetMember(ctx, memberCode); err != nil {
		return nil, err
	}

	return s.borrowingRepository.ListActiveBorrowings(ctx, memberCode)
}
