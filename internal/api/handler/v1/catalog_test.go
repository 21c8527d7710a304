package v1

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/service"
)

type stubCatalogService struct {
	CatalogService

	option domain.Option
	err    error
}

func (s stubCatalogService) GetOption(_ context.Context, _, _ uint) (domain.Option, error) {
	return s.option, s.err
}

func (s stubCatalogService) DeleteOption(_ context.Context, _, _ uint) error {
	return s.err
}

func (s stubCatalogService) DeleteProduct(_ context.Context, _ uint) error {
	return s.err
}

func (s stubCatalogService) DeleteCategory(_ context.Context, _ uint) error {
	return s.err
}

func newCatalogRouter(svc CatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewCatalogHandler(svc)
	r.DELETE("/api/categories/:categoryId", h.HandleDeleteCategory)
	r.DELETE("/api/products/:productId", h.HandleDeleteProduct)
	r.GET("/api/products/:productId/options/:optionId", h.HandleGetOption)
	r.DELETE("/api/products/:productId/options/:optionId", h.HandleDeleteOption)

	return r
}

func TestCatalogHandler_HandleGetOption(t *testing.T) {
	option := domain.Option{ID: 7, ProductID: 2, Name: "Tall", Quantity: 10}
	w := doRequest(newCatalogRouter(stubCatalogService{option: option}), http.MethodGet, "/api/products/2/options/7", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"product_id":2,"name":"Tall","quantity":10}`, w.Body.String())

	r := newCatalogRouter(stubCatalogService{err: service.ErrOptionNotFound})
	w = doRequest(r, http.MethodGet, "/api/products/3/options/7", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/api/products/3/options/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_DeleteReferencedRows(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
	}{
		{name: "option with orders", target: "/api/products/2/options/7", err: domain.ErrReferencedByOrders},
		{name: "product with orders", target: "/api/products/2", err: domain.ErrReferencedByOrders},
		{name: "category with products", target: "/api/categories/1", err: domain.ErrCategoryHasProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCatalogRouter(stubCatalogService{err: fmt.Errorf("s.repo.Delete -> %w", tt.err)})

			w := doRequest(r, http.MethodDelete, tt.target, "", nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}
