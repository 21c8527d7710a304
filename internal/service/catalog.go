package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository"
)

var (
	ErrCategoryNotFound    = repository.ErrCategoryNotFound
	ErrProductNotFound     = repository.ErrProductNotFound
	ErrOptionNotFound      = repository.ErrOptionNotFound
	ErrOptionNameExists    = repository.ErrOptionNameExists
	ErrLastOptionOfProduct = repository.ErrLastOptionOfProduct
	ErrMissingOption       = fmt.Errorf("%w: a product needs at least one option", domain.ErrValidation)
)

type CatalogRepository interface {
	FindAllCategories(ctx context.Context) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	FindProducts(ctx context.Context, page, size int) (domain.Page[domain.Product], error)
	FindProductByID(ctx context.Context, id uint) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product, options []domain.Option) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	FindOptionsByProductID(ctx context.Context, productID uint) ([]domain.Option, error)
	FindOptionByID(ctx context.Context, id uint) (domain.Option, error)
	CreateOption(ctx context.Context, option domain.Option) (domain.Option, error)
	DeleteOption(ctx context.Context, productID, optionID uint) error
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllCategories -> %w", err)
	}

	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.UpdateCategory -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteCategory -> %w", err)
	}

	return nil
}

func (s *CatalogService) GetProducts(ctx context.Context, page, size int) (domain.Page[domain.Product], error) {
	products, err := s.repo.FindProducts(ctx, page, size)
	if err != nil {
		return domain.Page[domain.Product]{}, fmt.Errorf("s.repo.FindProducts -> %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (domain.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindProductByID -> %w", err)
	}

	return product, nil
}

// CreateProduct stores product together with its initial options.
func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product, options []domain.Option) (domain.Product, error) {
	if len(options) == 0 {
		return domain.Product{}, ErrMissingOption
	}

	if err := s.checkCategory(ctx, product.CategoryID); err != nil {
		return domain.Product{}, err
	}

	created, err := s.repo.CreateProduct(ctx, product, options)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.CreateProduct -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.checkCategory(ctx, product.CategoryID); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.UpdateProduct -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteProduct -> %w", err)
	}

	return nil
}

func (s *CatalogService) GetOptions(ctx context.Context, productID uint) ([]domain.Option, error) {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("s.repo.FindProductByID -> %w", err)
	}

	options, err := s.repo.FindOptionsByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOptionsByProductID -> %w", err)
	}

	return options, nil
}

// GetOption returns optionID only when it belongs to productID.
func (s *CatalogService) GetOption(ctx context.Context, productID, optionID uint) (domain.Option, error) {
	option, err := s.repo.FindOptionByID(ctx, optionID)
	if err != nil {
		return domain.Option{}, fmt.Errorf("s.repo.FindOptionByID -> %w", err)
	}
	if option.ProductID != productID {
		return domain.Option{}, ErrOptionNotFound
	}

	return option, nil
}

func (s *CatalogService) CreateOption(ctx context.Context, option domain.Option) (domain.Option, error) {
	if _, err := s.repo.FindProductByID(ctx, option.ProductID); err != nil {
		return domain.Option{}, fmt.Errorf("s.repo.FindProductByID -> %w", err)
	}

	created, err := s.repo.CreateOption(ctx, option)
	if err != nil {
		return domain.Option{}, fmt.Errorf("s.repo.CreateOption -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) DeleteOption(ctx context.Context, productID, optionID uint) error {
	if err := s.repo.DeleteOption(ctx, productID, optionID); err != nil {
		return fmt.Errorf("s.repo.DeleteOption -> %w", err)
	}

	return nil
}

func (s *CatalogService) checkCategory(ctx context.Context, categoryID uint) error {
	_, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return ErrCategoryNotFound
	}

	return fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
}
