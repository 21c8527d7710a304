package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/gift-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/gift-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/gift-api/internal/domain"
)

type CatalogService interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	GetProducts(ctx context.Context, page, size int) (domain.Page[domain.Product], error)
	GetProduct(ctx context.Context, id uint) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product, options []domain.Option) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetOptions(ctx context.Context, productID uint) ([]domain.Option, error)
	GetOption(ctx context.Context, productID, optionID uint) (domain.Option, error)
	CreateOption(ctx context.Context, option domain.Option) (domain.Option, error)
	DeleteOption(ctx context.Context, productID, optionID uint) error
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleGetCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   domain.Category
// @Failure      500  {object}  response.Err
// @Router       /categories [get]
func (h *CatalogHandler) HandleGetCategories(ctx *gin.Context) {
	categories, err := h.svc.GetCategories(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetCategories -> h.svc.GetCategories", err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleCreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request  body      request.CategoryRequest true "request body"
// @Success      201      {object}  domain.Category
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /categories [post]
func (h *CatalogHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateCategory(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleCreateCategory -> h.svc.CreateCategory", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateCategory godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId  path      int                     true "category ID"
// @Param        request     body      request.CategoryRequest true "request body"
// @Success      200         {object}  domain.Category
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /categories/{categoryId} [put]
func (h *CatalogHandler) HandleUpdateCategory(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "categoryId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateCategory(ctx.Request.Context(), req.ToDomain(id))
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleUpdateCategory -> h.svc.UpdateCategory", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteCategory godoc
// @Summary      Delete a category
// @Tags         categories
// @Param        categoryId  path  int  true "category ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{categoryId} [delete]
func (h *CatalogHandler) HandleDeleteCategory(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "categoryId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteCategory(ctx.Request.Context(), id); err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleDeleteCategory -> h.svc.DeleteCategory", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetProducts godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page  query     int  false "page number, from 0"
// @Param        size  query     int  false "page size"
// @Success      200   {object}  domain.Page[domain.Product]
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /products [get]
func (h *CatalogHandler) HandleGetProducts(ctx *gin.Context) {
	var req request.PageRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	products, err := h.svc.GetProducts(ctx.Request.Context(), req.Page, req.Size)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetProducts -> h.svc.GetProducts", err))
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleGetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        productId  path      int  true "product ID"
// @Success      200        {object}  domain.Product
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productId} [get]
func (h *CatalogHandler) HandleGetProduct(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	product, err := h.svc.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetProduct -> h.svc.GetProduct", err))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleCreateProduct godoc
// @Summary      Create a product with its initial options
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateProductRequest true "request body"
// @Success      201      {object}  domain.Product
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /products [post]
func (h *CatalogHandler) HandleCreateProduct(ctx *gin.Context) {
	var req request.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateProduct(ctx.Request.Context(), req.ToDomain(0), req.OptionsToDomain())
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleCreateProduct -> h.svc.CreateProduct", err))
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/products/%d", created.ID))
	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateProduct godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productId  path      int                    true "product ID"
// @Param        request    body      request.ProductRequest true "request body"
// @Success      200        {object}  domain.Product
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productId} [put]
func (h *CatalogHandler) HandleUpdateProduct(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateProduct(ctx.Request.Context(), req.ToDomain(id))
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleUpdateProduct -> h.svc.UpdateProduct", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteProduct godoc
// @Summary      Delete a product and its options
// @Tags         products
// @Param        productId  path  int  true "product ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /products/{productId} [delete]
func (h *CatalogHandler) HandleDeleteProduct(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteProduct(ctx.Request.Context(), id); err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleDeleteProduct -> h.svc.DeleteProduct", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetOptions godoc
// @Summary      List the options of a product
// @Tags         options
// @Produce      json
// @Param        productId  path      int  true "product ID"
// @Success      200        {array}   domain.Option
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productId}/options [get]
func (h *CatalogHandler) HandleGetOptions(ctx *gin.Context) {
	productID, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	options, err := h.svc.GetOptions(ctx.Request.Context(), productID)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetOptions -> h.svc.GetOptions", err))
		return
	}

	ctx.JSON(http.StatusOK, options)
}

// HandleGetOption godoc
// @Summary      Get one option of a product
// @Tags         options
// @Produce      json
// @Param        productId  path      int  true "product ID"
// @Param        optionId   path      int  true "option ID"
// @Success      200        {object}  domain.Option
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productId}/options/{optionId} [get]
func (h *CatalogHandler) HandleGetOption(ctx *gin.Context) {
	productID, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	optionID, respErr := parseIDParam(ctx, "optionId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	option, err := h.svc.GetOption(ctx.Request.Context(), productID, optionID)
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleGetOption -> h.svc.GetOption", err))
		return
	}

	ctx.JSON(http.StatusOK, option)
}

// HandleCreateOption godoc
// @Summary      Add an option to a product
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        productId  path      int                   true "product ID"
// @Param        request    body      request.OptionRequest true "request body"
// @Success      201        {object}  domain.Option
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productId}/options [post]
func (h *CatalogHandler) HandleCreateOption(ctx *gin.Context) {
	productID, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.OptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateOption(ctx.Request.Context(), req.ToDomain(productID))
	if err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleCreateOption -> h.svc.CreateOption", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeleteOption godoc
// @Summary      Delete an option of a product
// @Tags         options
// @Param        productId  path  int  true "product ID"
// @Param        optionId   path  int  true "option ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /products/{productId}/options/{optionId} [delete]
func (h *CatalogHandler) HandleDeleteOption(ctx *gin.Context) {
	productID, respErr := parseIDParam(ctx, "productId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	optionID, respErr := parseIDParam(ctx, "optionId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteOption(ctx.Request.Context(), productID, optionID); err != nil {
		response.RenderErr(ctx, errResponse("v1.HandleDeleteOption -> h.svc.DeleteOption", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
