package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository"
)

var (
	ErrMemberNotFound = repository.ErrMemberNotFound
	ErrInvalidAmount  = repository.ErrInvalidAmount
)

type MemberRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Member, error)
	UpdateProfile(ctx context.Context, member domain.Member) (domain.Member, error)
	Credit(ctx context.Context, id uint, amount int) (domain.Member, error)
	Delete(ctx context.Context, id uint) error
}

type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{
		repo: repo,
	}
}

// Get reloads the member so the balance reflects orders and charges made since
// the token was issued.
func (s *MemberService) Get(ctx context.Context, id uint) (domain.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return member, nil
}

// UpdateProfile changes the email and, when password is not empty, replaces the
// credential with a new password hash.
func (s *MemberService) UpdateProfile(ctx context.Context, member domain.Member, email, password string) (domain.Member, error) {
	member.Email = email

	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return domain.Member{}, err
		}
		member.Auth = domain.PasswordCredential{Hash: hash}
	}

	updated, err := s.repo.UpdateProfile(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

func (s *MemberService) ChargePoint(ctx context.Context, member domain.Member, amount int) (domain.Member, error) {
	if amount <= 0 {
		return domain.Member{}, ErrInvalidAmount
	}

	credited, err := s.repo.Credit(ctx, member.ID, amount)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Credit -> %w", err)
	}

	return credited, nil
}

// LinkKakao stores the access token used to send order notifications to the member.
func (s *MemberService) LinkKakao(ctx context.Context, member domain.Member, accessToken string) (domain.Member, error) {
	member.NotificationHandle = accessToken

	updated, err := s.repo.UpdateProfile(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

// Delete removes the member and their wish list. Placed orders are kept.
func (s *MemberService) Delete(ctx context.Context, member domain.Member) error {
	if err := s.repo.Delete(ctx, member.ID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
