package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterRequest true "request body"
// @Success      201      {object}  response.Token
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /members/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, err := h.svc.Register(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleRegister -> h.svc.Register", err))
		return
	}

	ctx.JSON(http.StatusCreated, response.Token{Token: token})
}

// HandleLogin godoc
// @Summary      Log in with email and password
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest true "request body"
// @Success      200      {object}  response.Token
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /members/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleLogin -> h.svc.Login", err))
		return
	}

	ctx.JSON(http.StatusOK, response.Token{Token: token})
}
