package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/gift-api/internal/domain"
)

const memberContextKey = "member"

type IdentityResolver interface {
	Resolve(ctx context.Context, header string) (domain.Member, error)
}

type Authenticator struct {
	gate IdentityResolver
}

func NewAuthenticator(gate IdentityResolver) *Authenticator {
	return &Authenticator{
		gate: gate,
	}
}

// VerifyJWT resolves the Authorization header into a member and stores it on the
// request. Rejected requests end with an empty 401, any other resolver failure
// with a 500.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		member, err := a.gate.Resolve(ctx.Request.Context(), ctx.GetHeader("Authorization"))
		if errors.Is(err, domain.ErrUnauthorized) {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err != nil {
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.Set(memberContextKey, member)
		ctx.Next()
	}
}

// MemberFromContext returns the member stored by VerifyJWT.
func MemberFromContext(ctx *gin.Context) (domain.Member, bool) {
	value, ok := ctx.Get(memberContextKey)
	if !ok {
		return domain.Member{}, false
	}

	member, ok := value.(domain.Member)

	return member, ok
}
