package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository"
)

var (
	ErrMemberEmailExists = repository.ErrMemberEmailExists
	ErrWrongCredentials  = domain.ErrWrongCredentials
	ErrPasswordTooLong   = fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
)

type AuthMemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	FindByEmail(ctx context.Context, email string) (domain.Member, error)
}

type TokenIssuer interface {
	GenerateToken(subject string) (string, error)
}

type AuthService struct {
	repo   AuthMemberRepository
	tokens TokenIssuer
}

func NewAuthService(repo AuthMemberRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a password member and returns a token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashPassword -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Member{
		Email: email,
		Auth:  domain.PasswordCredential{Hash: hash},
	})
	if err != nil {
		return "", fmt.Errorf("s.repo.Create -> %w", err)
	}

	token, err := s.tokens.GenerateToken(created.Email)
	if err != nil {
		return "", fmt.Errorf("s.tokens.GenerateToken -> %w", err)
	}

	return token, nil
}

// Login checks the password of a member and returns a fresh token. Unknown emails,
// wrong passwords and externally linked accounts all fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	member, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return "", ErrWrongCredentials
		}

		return "", fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	hash, ok := member.PasswordHash()
	if !ok {
		return "", ErrWrongCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrWrongCredentials
	}

	token, err := s.tokens.GenerateToken(member.Email)
	if err != nil {
		return "", fmt.Errorf("s.tokens.GenerateToken -> %w", err)
	}

	return token, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}

		return "", err
	}

	return string(hash), nil
}
