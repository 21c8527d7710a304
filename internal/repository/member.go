package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository/dao"
)

var (
	ErrMemberEmailExists   = dao.ErrMemberEmailExists
	ErrMemberNotFound      = dao.ErrMemberNotFound
	ErrInsufficientBalance = dao.ErrInsufficientBalance
	ErrInvalidAmount       = domain.ErrInvalidAmount
)

type MemberDAO interface {
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	FindByID(ctx context.Context, id uint) (dao.Member, error)
	FindByEmail(ctx context.Context, email string) (dao.Member, error)
	UpdateProfile(ctx context.Context, member dao.Member) (dao.Member, error)
	Delete(ctx context.Context, id uint) error
	ChargePoint(ctx context.Context, id uint, amount int) (dao.Member, error)
	CreditPoint(ctx context.Context, id uint, amount int) (dao.Member, error)
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint) (domain.Member, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (domain.Member, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MemberRepository) UpdateProfile(ctx context.Context, member domain.Member) (domain.Member, error) {
	updated, err := r.dao.UpdateProfile(ctx, r.domainToDao(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MemberRepository) Charge(ctx context.Context, id uint, amount int) (domain.Member, error) {
	if amount <= 0 {
		return domain.Member{}, ErrInvalidAmount
	}

	charged, err := r.dao.ChargePoint(ctx, id, amount)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.ChargePoint -> %w", err)
	}

	return r.daoToDomain(charged), nil
}

func (r *MemberRepository) Credit(ctx context.Context, id uint, amount int) (domain.Member, error) {
	if amount <= 0 {
		return domain.Member{}, ErrInvalidAmount
	}

	credited, err := r.dao.CreditPoint(ctx, id, amount)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.CreditPoint -> %w", err)
	}

	return r.daoToDomain(credited), nil
}

func (r *MemberRepository) daoToDomain(m dao.Member) domain.Member {
	member := domain.Member{
		ID:        m.ID,
		Email:     m.Email,
		Point:     m.Point,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	switch {
	case m.Password != nil:
		member.Auth = domain.PasswordCredential{Hash: *m.Password}
	case m.KakaoID != nil:
		member.Auth = domain.ExternallyLinked{Handle: *m.KakaoID}
	default:
		member.Auth = domain.ExternallyLinked{}
	}

	if m.KakaoAccessToken != nil {
		member.NotificationHandle = *m.KakaoAccessToken
	}

	return member
}

func (r *MemberRepository) domainToDao(m domain.Member) dao.Member {
	member := dao.Member{
		ID:        m.ID,
		Email:     m.Email,
		Point:     m.Point,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	switch a := m.Auth.(type) {
	case domain.PasswordCredential:
		member.Password = &a.Hash
	case domain.ExternallyLinked:
		if a.Handle != "" {
			member.KakaoID = &a.Handle
		}
	}

	if handle, ok := m.NotificationTarget(); ok {
		member.KakaoAccessToken = &handle
	}

	return member
}
