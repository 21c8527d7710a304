package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/gift-api/internal/api/middleware"
	"github.com/vietanh2810/gift-api/internal/domain"
)

var errMissingMember = errors.New("no authenticated member on request")

func getMemberFromContext(ctx *gin.Context) (domain.Member, *response.Err) {
	member, ok := middleware.MemberFromContext(ctx)
	if !ok {
		return domain.Member{}, response.ErrUnauthorized(errMissingMember)
	}

	return member, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", name, ctx.Param(name)))
	}

	return uint(id), nil
}

// errResponse maps a service error to its HTTP rendering by error kind.
func errResponse(where string, err error) *response.Err {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return response.ErrUnauthorized(err)
	case errors.Is(err, domain.ErrForbidden):
		return response.ErrPermissionDenied(err)
	case errors.Is(err, domain.ErrNotFound):
		return response.ErrNotFound(reason(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrValidation):
		return response.ErrBadRequest(reason(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrInsufficientResource):
		return response.ErrBadRequest(reason(err, domain.ErrInsufficientResource))
	case errors.Is(err, domain.ErrConflict):
		return response.ErrConflict(reason(err, domain.ErrConflict))
	default:
		return response.ErrInternalServerError(fmt.Errorf("%s -> %w", where, err))
	}
}

// reason returns the error in err's chain that directly wraps kind, dropping the
// call-path prefixes added on the way up.
func reason(err, kind error) error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		next := e.Unwrap()
		if next == kind {
			return err
		}
		if next != nil {
			return reason(next, kind)
		}
	case interface{ Unwrap() []error }:
		for _, next := range e.Unwrap() {
			if errors.Is(next, kind) {
				return reason(next, kind)
			}
		}
	}

	return err
}
