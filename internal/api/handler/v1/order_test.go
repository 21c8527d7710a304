package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/gift-api/internal/api/middleware"
	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/service"
)

type stubGate struct {
	member domain.Member
	err    error
}

func (g stubGate) Resolve(context.Context, string) (domain.Member, error) {
	return g.member, g.err
}

type stubOrderService struct {
	order  domain.Order
	page   domain.Page[domain.Order]
	err    error
	params service.CreateOrderParams
	member domain.Member
}

func (s *stubOrderService) CreateOrder(_ context.Context, member domain.Member, params service.CreateOrderParams) (domain.Order, error) {
	s.member = member
	s.params = params
	return s.order, s.err
}

func (s *stubOrderService) GetOrders(_ context.Context, member domain.Member, page, size int) (domain.Page[domain.Order], error) {
	s.member = member
	s.page.Page, s.page.Size = page, size
	return s.page, s.err
}

func (s *stubOrderService) GetOrder(_ context.Context, member domain.Member, id uint) (domain.Order, error) {
	s.member = member
	if s.err != nil {
		return domain.Order{}, s.err
	}
	return s.order, nil
}

func newOrderRouter(svc OrderService, gate middleware.IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewOrderHandler(svc)
	orders := r.Group("/api/orders", middleware.NewAuthenticator(gate).VerifyJWT())
	orders.POST("", h.HandleCreateOrder)
	orders.GET("", h.HandleGetOrders)
	orders.GET("/:orderId", h.HandleGetOrder)

	return r
}

func doRequest(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestOrderHandler_HandleCreateOrder(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &stubOrderService{order: domain.Order{
		ID: 9, OptionID: 3, MemberID: 1, Quantity: 2, Amount: 20000, Message: "happy birthday", CreatedAt: createdAt,
	}}
	r := newOrderRouter(svc, stubGate{member: domain.Member{ID: 1}})

	w := doRequest(r, http.MethodPost, "/api/orders",
		`{"optionId":3,"quantity":2,"message":"happy birthday"}`,
		map[string]string{"Idempotency-Key": "abc-123"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/orders/9", w.Header().Get("Location"))
	assert.JSONEq(t, `{
		"id": 9,
		"optionId": 3,
		"quantity": 2,
		"amount": 20000,
		"message": "happy birthday",
		"createdAt": "2024-05-01T12:00:00Z"
	}`, w.Body.String())

	assert.Equal(t, uint(1), svc.member.ID)
	assert.Equal(t, service.CreateOrderParams{
		OptionID: 3, Quantity: 2, Message: "happy birthday", IdempotencyKey: "abc-123",
	}, svc.params)
}

func TestOrderHandler_HandleCreateOrder_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed body",
			body:       `{"optionId":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing option",
			body:       `{"quantity":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid quantity",
			body:       `{"optionId":3,"quantity":0}`,
			err:        fmt.Errorf("s.CreateOrder -> %w", service.ErrInvalidQuantity),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Bad Request","message":"validation failed: quantity must be greater than zero"}`,
		},
		{
			name:       "unknown option",
			body:       `{"optionId":3,"quantity":1}`,
			err:        fmt.Errorf("s.inventory.Subtract -> %w", fmt.Errorf("r.dao.SubtractQuantity -> %w", domain.ErrOptionNotFound)),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"status":"Not Found","message":"not found: option"}`,
		},
		{
			name:       "insufficient stock",
			body:       `{"optionId":3,"quantity":100}`,
			err:        fmt.Errorf("s.inventory.Subtract -> %w", domain.ErrInsufficientStock),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Bad Request","message":"insufficient resource: insufficient stock"}`,
		},
		{
			name: "insufficient balance with failed restore",
			body: `{"optionId":3,"quantity":1}`,
			err: errors.Join(
				fmt.Errorf("s.balance.Charge -> %w", domain.ErrInsufficientBalance),
				errors.New("s.inventory.Restore -> connection reset"),
			),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Bad Request","message":"insufficient resource: insufficient point balance"}`,
		},
		{
			name:       "duplicate idempotency key",
			body:       `{"optionId":3,"quantity":1}`,
			err:        service.ErrDuplicateOrder,
			wantStatus: http.StatusConflict,
			wantBody:   `{"status":"Conflict","message":"conflict: order request already submitted"}`,
		},
		{
			name:       "store failure",
			body:       `{"optionId":3,"quantity":1}`,
			err:        errors.New("r.dao.Insert -> connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"Internal Server Error","message":"something went wrong, please try again later"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newOrderRouter(&stubOrderService{err: tt.err}, stubGate{member: domain.Member{ID: 1}})

			w := doRequest(r, http.MethodPost, "/api/orders", tt.body, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, w.Header().Get("Location"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestOrderHandler_Unauthenticated(t *testing.T) {
	svc := &stubOrderService{}
	r := newOrderRouter(svc, stubGate{err: domain.ErrUnauthorized})

	w := doRequest(r, http.MethodPost, "/api/orders", `{"optionId":3,"quantity":1}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, svc.params.OptionID)
}

func TestOrderHandler_HandleGetOrders(t *testing.T) {
	svc := &stubOrderService{page: domain.Page[domain.Order]{
		Items: []domain.Order{{ID: 2, OptionID: 3, Quantity: 1, Amount: 100}},
		Total: 1,
	}}
	r := newOrderRouter(svc, stubGate{member: domain.Member{ID: 1}})

	w := doRequest(r, http.MethodGet, "/api/orders?page=0&size=5", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"optionId":3`)
	assert.Contains(t, w.Body.String(), `"total_elements":1`)
	assert.Equal(t, 5, svc.page.Size)

	w = doRequest(r, http.MethodGet, "/api/orders?size=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_HandleGetOrder(t *testing.T) {
	r := newOrderRouter(&stubOrderService{order: domain.Order{ID: 2}}, stubGate{member: domain.Member{ID: 1}})

	w := doRequest(r, http.MethodGet, "/api/orders/2", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/orders/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newOrderRouter(&stubOrderService{err: service.ErrOrderNotFound}, stubGate{member: domain.Member{ID: 1}})
	w = doRequest(r, http.MethodGet, "/api/orders/2", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, ""},
		{"wrong credentials", service.ErrWrongCredentials, http.StatusBadRequest, "validation failed: wrong email or password"},
		{"forbidden", fmt.Errorf("s.RemoveWish -> %w", domain.ErrNotWishOwner), http.StatusForbidden, ""},
		{"duplicate email", fmt.Errorf("r.dao.Insert -> %w", domain.ErrMemberEmailExists), http.StatusBadRequest, "validation failed: email is already registered"},
		{"conflict", domain.ErrDuplicateOrder, http.StatusConflict, "conflict: order request already submitted"},
		{"referenced by orders", fmt.Errorf("s.DeleteProduct -> %w", domain.ErrReferencedByOrders), http.StatusBadRequest, "validation failed: referenced by existing orders"},
		{"amount out of range", errors.Join(fmt.Errorf("4 x 5 -> %w", domain.ErrAmountOutOfRange), nil), http.StatusBadRequest, "validation failed: amount is out of range"},
		{"validation", fmt.Errorf("s.DeleteOption -> %w", domain.ErrLastOptionOfProduct), http.StatusBadRequest, "validation failed: cannot delete the last option of a product"},
		{"service level validation", fmt.Errorf("s.CreateProduct -> %w", service.ErrMissingOption), http.StatusBadRequest, service.ErrMissingOption.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errResponse("test", tt.err)

			assert.Equal(t, tt.wantStatus, got.HTTPStatusCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}
