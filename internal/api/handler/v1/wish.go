package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/gift-api/internal/domain"
)

type WishService interface {
	GetWishes(ctx context.Context, member domain.Member, page, size int) (domain.Page[domain.Wish], error)
	AddWish(ctx context.Context, member domain.Member, productID uint) (domain.Wish, bool, error)
	RemoveWish(ctx context.Context, member domain.Member, wishID uint) error
}

type WishHandler struct {
	svc WishService
}

func NewWishHandler(svc WishService) *WishHandler {
	return &WishHandler{
		svc: svc,
	}
}

// HandleGetWishes godoc
// @Summary      List the member's wishes
// @Tags         wishes
// @Produce      json
// @Param        page  query     int  false "page number, from 0"
// @Param        size  query     int  false "page size"
// @Success      200   {object}  domain.Page[domain.Wish]
// @Failure      400   {object}  response.Err
// @Failure      401
// @Failure      500   {object}  response.Err
// @Router       /wishes [get]
// @Security BearerAuth
func (h *WishHandler) HandleGetWishes(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PageRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	wishes, err := h.svc.GetWishes(ctx.Request.Context(), member, req.Page, req.Size)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetWishes -> h.svc.GetWishes", err))
		return
	}

	ctx.JSON(http.StatusOK, wishes)
}

// HandleAddWish godoc
// @Summary      Add a product to the member's wishes
// @Description  Returns 201 for a new wish and 200 when the product was already wished.
// @Tags         wishes
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddWishRequest true "request body"
// @Success      200      {object}  domain.Wish
// @Success      201      {object}  domain.Wish
// @Failure      400      {object}  response.Err
// @Failure      401
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /wishes [post]
// @Security BearerAuth
func (h *WishHandler) HandleAddWish(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddWishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	wish, created, err := h.svc.AddWish(ctx.Request.Context(), member, req.ProductID)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleAddWish -> h.svc.AddWish", err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, wish)
}

// HandleRemoveWish godoc
// @Summary      Remove one of the member's wishes
// @Tags         wishes
// @Param        wishId  path  int  true "wish ID"
// @Success      204
// @Failure      401
// @Failure      403
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /wishes/{wishId} [delete]
// @Security BearerAuth
func (h *WishHandler) HandleRemoveWish(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	wishID, respErr := parseIDParam(ctx, "wishId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemoveWish(ctx.Request.Context(), member, wishID); err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleRemoveWish -> h.svc.RemoveWish", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
