package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/gift-api/internal/repository"
)

const bearerScheme = "Bearer "

var ErrUnauthorized = domain.ErrUnauthorized

type TokenVerifier interface {
	ParseToken(token string) (string, error)
}

type GateMemberRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.Member, error)
}

// IdentityGate turns an Authorization header into a member. It keeps no session
// state: a token is trusted until its own expiry.
type IdentityGate struct {
	tokens TokenVerifier
	repo   GateMemberRepository
}

func NewIdentityGate(tokens TokenVerifier, repo GateMemberRepository) *IdentityGate {
	return &IdentityGate{
		tokens: tokens,
		repo:   repo,
	}
}

// Resolve returns the member the header authenticates. Every rejection is
// ErrUnauthorized with the cause only logged. A failing member store is
// returned as is.
func (g *IdentityGate) Resolve(ctx context.Context, header string) (domain.Member, error) {
	if header == "" {
		return g.reject("missing_header", nil)
	}

	token, ok := strings.CutPrefix(header, bearerScheme)
	if !ok || token == "" {
		return g.reject("bad_scheme", nil)
	}

	subject, err := g.tokens.ParseToken(token)
	if err != nil {
		return g.reject(rejectionClass(err), err)
	}

	member, err := g.repo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return g.reject("unknown_subject", nil)
		}

		return domain.Member{}, fmt.Errorf("g.repo.FindByEmail -> %w", err)
	}

	return member, nil
}

func (g *IdentityGate) reject(class string, err error) (domain.Member, error) {
	fields := []zap.Field{zap.String("reason", class)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	zap.L().Warn("unauthorized request", fields...)

	return domain.Member{}, ErrUnauthorized
}

func rejectionClass(err error) string {
	switch {
	case errors.Is(err, jwthelper.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwthelper.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
