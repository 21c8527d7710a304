package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository/dao"
)

var ErrWishNotFound = dao.ErrWishNotFound

type WishDAO interface {
	Insert(ctx context.Context, wish dao.Wish) (dao.Wish, bool, error)
	FindByID(ctx context.Context, id uint) (dao.Wish, error)
	FindByMemberAndProduct(ctx context.Context, memberID, productID uint) (dao.Wish, error)
	FindByMemberID(ctx context.Context, memberID uint, limit, offset int) ([]dao.Wish, int64, error)
	Delete(ctx context.Context, id uint) error
}

type WishRepository struct {
	dao WishDAO
}

func NewWishRepository(dao WishDAO) *WishRepository {
	return &WishRepository{
		dao: dao,
	}
}

func (r *WishRepository) Create(ctx context.Context, memberID, productID uint) (domain.Wish, bool, error) {
	wish, created, err := r.dao.Insert(ctx, dao.Wish{MemberID: memberID, ProductID: productID})
	if err != nil {
		return domain.Wish{}, false, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(wish), created, nil
}

func (r *WishRepository) FindByID(ctx context.Context, id uint) (domain.Wish, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Wish{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *WishRepository) FindByMemberID(ctx context.Context, memberID uint, page, size int) (domain.Page[domain.Wish], error) {
	found, total, err := r.dao.FindByMemberID(ctx, memberID, size, page*size)
	if err != nil {
		return domain.Page[domain.Wish]{}, fmt.Errorf("r.dao.FindByMemberID -> %w", err)
	}

	wishes := make([]domain.Wish, len(found))
	for i, w := range found {
		wishes[i] = r.daoToDomain(w)
	}

	return domain.Page[domain.Wish]{Items: wishes, Page: page, Size: size, Total: total}, nil
}

func (r *WishRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *WishRepository) daoToDomain(w dao.Wish) domain.Wish {
	return domain.Wish{
		ID:        w.ID,
		MemberID:  w.MemberID,
		ProductID: w.ProductID,
		Product: domain.Product{
			ID:         w.Product.ID,
			Name:       w.Product.Name,
			Price:      w.Product.Price,
			ImageURL:   w.Product.ImageURL,
			CategoryID: w.Product.CategoryID,
		},
		CreatedAt: w.CreatedAt,
	}
}
