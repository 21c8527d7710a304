package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository"
)

var (
	ErrWishNotFound = repository.ErrWishNotFound
	ErrNotWishOwner = domain.ErrNotWishOwner
)

type WishRepository interface {
	Create(ctx context.Context, memberID, productID uint) (domain.Wish, bool, error)
	FindByID(ctx context.Context, id uint) (domain.Wish, error)
	FindByMemberID(ctx context.Context, memberID uint, page, size int) (domain.Page[domain.Wish], error)
	Delete(ctx context.Context, id uint) error
}

type WishProductFinder interface {
	FindProductByID(ctx context.Context, id uint) (domain.Product, error)
}

type WishService struct {
	repo     WishRepository
	products WishProductFinder
}

func NewWishService(repo WishRepository, products WishProductFinder) *WishService {
	return &WishService{
		repo:     repo,
		products: products,
	}
}

func (s *WishService) GetWishes(ctx context.Context, member domain.Member, page, size int) (domain.Page[domain.Wish], error) {
	wishes, err := s.repo.FindByMemberID(ctx, member.ID, page, size)
	if err != nil {
		return domain.Page[domain.Wish]{}, fmt.Errorf("s.repo.FindByMemberID -> %w", err)
	}

	return wishes, nil
}

// AddWish returns the member's wish for the product and whether it was just created.
func (s *WishService) AddWish(ctx context.Context, member domain.Member, productID uint) (domain.Wish, bool, error) {
	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		return domain.Wish{}, false, fmt.Errorf("s.products.FindProductByID -> %w", err)
	}

	wish, created, err := s.repo.Create(ctx, member.ID, productID)
	if err != nil {
		return domain.Wish{}, false, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return wish, created, nil
}

func (s *WishService) RemoveWish(ctx context.Context, member domain.Member, wishID uint) error {
	wish, err := s.repo.FindByID(ctx, wishID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if wish.MemberID != member.ID {
		return ErrNotWishOwner
	}

	if err = s.repo.Delete(ctx, wishID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
