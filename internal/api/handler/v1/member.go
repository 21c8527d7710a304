package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/gift-api/internal/domain"
)

type MemberService interface {
	Get(ctx context.Context, id uint) (domain.Member, error)
	UpdateProfile(ctx context.Context, member domain.Member, email, password string) (domain.Member, error)
	ChargePoint(ctx context.Context, member domain.Member, amount int) (domain.Member, error)
	LinkKakao(ctx context.Context, member domain.Member, accessToken string) (domain.Member, error)
	Delete(ctx context.Context, member domain.Member) error
}

type MemberHandler struct {
	svc MemberService
}

func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the authenticated member
// @Tags         members
// @Produce      json
// @Success      200  {object}  response.Member
// @Failure      401
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/me [get]
// @Security BearerAuth
func (h *MemberHandler) HandleGetMe(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fresh, err := h.svc.Get(ctx.Request.Context(), member.ID)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetMe -> h.svc.Get", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewMember(fresh))
}

// HandleUpdateMe godoc
// @Summary      Update email and password
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}  response.Member
// @Failure      400      {object}  response.Err
// @Failure      401
// @Failure      500      {object}  response.Err
// @Router       /members/me [put]
// @Security BearerAuth
func (h *MemberHandler) HandleUpdateMe(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateProfile(ctx.Request.Context(), member, req.Email, req.Password)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleUpdateMe -> h.svc.UpdateProfile", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewMember(updated))
}

// HandleChargePoint godoc
// @Summary      Add point to the member's balance
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body      request.ChargePointRequest true "request body"
// @Success      200      {object}  response.Member
// @Failure      400      {object}  response.Err
// @Failure      401
// @Failure      500      {object}  response.Err
// @Router       /members/me/points [post]
// @Security BearerAuth
func (h *MemberHandler) HandleChargePoint(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ChargePointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	charged, err := h.svc.ChargePoint(ctx.Request.Context(), member, req.Amount)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleChargePoint -> h.svc.ChargePoint", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewMember(charged))
}

// HandleLinkKakao godoc
// @Summary      Store the Kakao access token used for order notifications
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body      request.LinkKakaoRequest true "request body"
// @Success      200      {object}  response.Member
// @Failure      400      {object}  response.Err
// @Failure      401
// @Failure      500      {object}  response.Err
// @Router       /members/me/kakao [put]
// @Security BearerAuth
func (h *MemberHandler) HandleLinkKakao(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.LinkKakaoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	linked, err := h.svc.LinkKakao(ctx.Request.Context(), member, req.AccessToken)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleLinkKakao -> h.svc.LinkKakao", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewMember(linked))
}

// HandleDeleteMe godoc
// @Summary      Delete the authenticated member and their wish list
// @Tags         members
// @Success      204
// @Failure      401
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/me [delete]
// @Security BearerAuth
func (h *MemberHandler) HandleDeleteMe(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), member); err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleDeleteMe -> h.svc.Delete", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
