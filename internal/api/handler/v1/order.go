package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/service"
)

const idempotencyKeyHeader = "Idempotency-Key"

type OrderService interface {
	CreateOrder(ctx context.Context, member domain.Member, params service.CreateOrderParams) (domain.Order, error)
	GetOrders(ctx context.Context, member domain.Member, page, size int) (domain.Page[domain.Order], error)
	GetOrder(ctx context.Context, member domain.Member, id uint) (domain.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCreateOrder godoc
// @Summary      Order a gift option
// @Description  Subtracts stock and charges the member's point balance atomically.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                      false "client generated key"
// @Param        request          body      request.CreateOrderRequest  true  "request body"
// @Success      201              {object}  response.Order
// @Failure      400              {object}  response.Err
// @Failure      401
// @Failure      404              {object}  response.Err
// @Failure      409              {object}  response.Err
// @Failure      500              {object}  response.Err
// @Router       /orders [post]
// @Security BearerAuth
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), member, service.CreateOrderParams{
		OptionID:       req.OptionID,
		Quantity:       req.Quantity,
		Message:        req.Message,
		IdempotencyKey: ctx.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleCreateOrder -> h.svc.CreateOrder", err))
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/orders/%d", order.ID))
	ctx.JSON(http.StatusCreated, response.NewOrder(order))
}

// HandleGetOrders godoc
// @Summary      List the member's orders, newest first
// @Tags         orders
// @Produce      json
// @Param        page  query     int  false "page number, from 0"
// @Param        size  query     int  false "page size"
// @Success      200   {object}  domain.Page[response.Order]
// @Failure      400   {object}  response.Err
// @Failure      401
// @Failure      500   {object}  response.Err
// @Router       /orders [get]
// @Security BearerAuth
func (h *OrderHandler) HandleGetOrders(ctx *gin.Context) {
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

	orders, err := h.svc.GetOrders(ctx.Request.Context(), member, req.Page, req.Size)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetOrders -> h.svc.GetOrders", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrderPage(orders))
}

// HandleGetOrder godoc
// @Summary      Get one of the member's orders
// @Tags         orders
// @Produce      json
// @Param        orderId  path      int  true "order ID"
// @Success      200      {object}  response.Order
// @Failure      401
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderId} [get]
// @Security BearerAuth
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	member, respErr := getMemberFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orderID, respErr := parseIDParam(ctx, "orderId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), member, orderID)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetOrder -> h.svc.GetOrder", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrder(order))
}
