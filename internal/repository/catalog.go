package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound    = dao.ErrCategoryNotFound
	ErrProductNotFound     = dao.ErrProductNotFound
	ErrOptionNotFound      = dao.ErrOptionNotFound
	ErrOptionNameExists    = dao.ErrOptionNameExists
	ErrLastOptionOfProduct = dao.ErrLastOptionOfProduct
	ErrInsufficientStock   = dao.ErrInsufficientStock
	ErrInvalidQuantity     = domain.ErrInvalidQuantity
)

type CatalogDAO interface {
	FindAllCategories(ctx context.Context) ([]dao.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.Category, error)
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	UpdateCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	FindProducts(ctx context.Context, limit, offset int) ([]dao.Product, int64, error)
	FindProductByID(ctx context.Context, id uint) (dao.Product, error)
	InsertProduct(ctx context.Context, product dao.Product, options []dao.Option) (dao.Product, error)
	UpdateProduct(ctx context.Context, product dao.Product) (dao.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	FindOptionsByProductID(ctx context.Context, productID uint) ([]dao.Option, error)
	FindOptionByID(ctx context.Context, id uint) (dao.Option, error)
	InsertOption(ctx context.Context, option dao.Option) (dao.Option, error)
	DeleteOption(ctx context.Context, productID, optionID uint) error
	SubtractQuantity(ctx context.Context, optionID uint, quantity int) (dao.Option, error)
	RestoreQuantity(ctx context.Context, optionID uint, quantity int) error
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func (r *CatalogRepository) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	found, err := r.dao.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllCategories -> %w", err)
	}

	categories := make([]domain.Category, len(found))
	for i, c := range found {
		categories[i] = r.categoryDaoToDomain(c)
	}

	return categories, nil
}

func (r *CatalogRepository) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return r.categoryDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, r.categoryDomainToDao(category))
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return r.categoryDaoToDomain(created), nil
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	updated, err := r.dao.UpdateCategory(ctx, r.categoryDomainToDao(category))
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.UpdateCategory -> %w", err)
	}

	return r.categoryDaoToDomain(updated), nil
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	if err := r.dao.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCategory -> %w", err)
	}

	return nil
}

func (r *CatalogRepository) FindProducts(ctx context.Context, page, size int) (domain.Page[domain.Product], error) {
	found, total, err := r.dao.FindProducts(ctx, size, page*size)
	if err != nil {
		return domain.Page[domain.Product]{}, fmt.Errorf("r.dao.FindProducts -> %w", err)
	}

	products := make([]domain.Product, len(found))
	for i, p := range found {
		products[i] = r.productDaoToDomain(p)
	}

	return domain.Page[domain.Product]{Items: products, Page: page, Size: size, Total: total}, nil
}

func (r *CatalogRepository) FindProductByID(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindProductByID -> %w", err)
	}

	return r.productDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, product domain.Product, options []domain.Option) (domain.Product, error) {
	daoOptions := make([]dao.Option, len(options))
	for i, o := range options {
		daoOptions[i] = r.optionDomainToDao(o)
	}

	created, err := r.dao.InsertProduct(ctx, r.productDomainToDao(product), daoOptions)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.InsertProduct -> %w", err)
	}

	return r.productDaoToDomain(created), nil
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.UpdateProduct(ctx, r.productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.UpdateProduct -> %w", err)
	}

	return r.productDaoToDomain(updated), nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uint) error {
	if err := r.dao.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteProduct -> %w", err)
	}

	return nil
}

func (r *CatalogRepository) FindOptionsByProductID(ctx context.Context, productID uint) ([]domain.Option, error) {
	found, err := r.dao.FindOptionsByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOptionsByProductID -> %w", err)
	}

	options := make([]domain.Option, len(found))
	for i, o := range found {
		options[i] = r.optionDaoToDomain(o)
	}

	return options, nil
}

func (r *CatalogRepository) FindOptionByID(ctx context.Context, id uint) (domain.Option, error) {
	found, err := r.dao.FindOptionByID(ctx, id)
	if err != nil {
		return domain.Option{}, fmt.Errorf("r.dao.FindOptionByID -> %w", err)
	}

	return r.optionDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateOption(ctx context.Context, option domain.Option) (domain.Option, error) {
	created, err := r.dao.InsertOption(ctx, r.optionDomainToDao(option))
	if err != nil {
		return domain.Option{}, fmt.Errorf("r.dao.InsertOption -> %w", err)
	}

	return r.optionDaoToDomain(created), nil
}

func (r *CatalogRepository) DeleteOption(ctx context.Context, productID, optionID uint) error {
	if err := r.dao.DeleteOption(ctx, productID, optionID); err != nil {
		return fmt.Errorf("r.dao.DeleteOption -> %w", err)
	}

	return nil
}

// Subtract is the inventory ledger's atomic check-and-subtract.
func (r *CatalogRepository) Subtract(ctx context.Context, optionID uint, quantity int) (domain.Option, error) {
	if quantity <= 0 {
		return domain.Option{}, ErrInvalidQuantity
	}

	option, err := r.dao.SubtractQuantity(ctx, optionID, quantity)
	if err != nil {
		return domain.Option{}, fmt.Errorf("r.dao.SubtractQuantity -> %w", err)
	}

	return r.optionDaoToDomain(option), nil
}

// Restore undoes a previous Subtract.
func (r *CatalogRepository) Restore(ctx context.Context, optionID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if err := r.dao.RestoreQuantity(ctx, optionID, quantity); err != nil {
		return fmt.Errorf("r.dao.RestoreQuantity -> %w", err)
	}

	return nil
}

func (r *CatalogRepository) categoryDaoToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Color:       c.Color,
		ImageURL:    c.ImageURL,
		Description: c.Description,
	}
}

func (r *CatalogRepository) categoryDomainToDao(c domain.Category) dao.Category {
	return dao.Category{
		ID:          c.ID,
		Name:        c.Name,
		Color:       c.Color,
		ImageURL:    c.ImageURL,
		Description: c.Description,
	}
}

func (r *CatalogRepository) productDaoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		ImageURL:   p.ImageURL,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *CatalogRepository) productDomainToDao(p domain.Product) dao.Product {
	return dao.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		ImageURL:   p.ImageURL,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *CatalogRepository) optionDaoToDomain(o dao.Option) domain.Option {
	option := domain.Option{
		ID:        o.ID,
		ProductID: o.ProductID,
		Name:      o.Name,
		Quantity:  o.Quantity,
	}

	if o.Product.ID != 0 {
		option.Product = r.productDaoToDomain(o.Product)
	}

	return option
}

func (r *CatalogRepository) optionDomainToDao(o domain.Option) dao.Option {
	return dao.Option{
		ID:        o.ID,
		ProductID: o.ProductID,
		Name:      o.Name,
		Quantity:  o.Quantity,
	}
}
