package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/gift-api/internal/domain"
	"github.com/vietanh2810/gift-api/internal/repository/dao"
)

var ErrOrderNotFound = dao.ErrOrderNotFound

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	FindByMemberID(ctx context.Context, memberID uint, limit, offset int) ([]dao.Order, int64, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(order))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrderRepository) FindByMemberID(ctx context.Context, memberID uint, page, size int) (domain.Page[domain.Order], error) {
	found, total, err := r.dao.FindByMemberID(ctx, memberID, size, page*size)
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("r.dao.FindByMemberID -> %w", err)
	}

	orders := make([]domain.Order, len(found))
	for i, o := range found {
		orders[i] = r.daoToDomain(o)
	}

	return domain.Page[domain.Order]{Items: orders, Page: page, Size: size, Total: total}, nil
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	order := domain.Order{
		ID:        o.ID,
		OptionID:  o.OptionID,
		MemberID:  o.MemberID,
		Quantity:  o.Quantity,
		Amount:    o.Amount,
		CreatedAt: o.CreatedAt,
	}
	if o.Message != nil {
		order.Message = *o.Message
	}

	return order
}

func (r *OrderRepository) domainToDao(o domain.Order) dao.Order {
	order := dao.Order{
		ID:        o.ID,
		OptionID:  o.OptionID,
		MemberID:  o.MemberID,
		Quantity:  o.Quantity,
		Amount:    o.Amount,
		CreatedAt: o.CreatedAt,
	}
	if o.Message != "" {
		order.Message = &o.Message
	}

	return order
}
