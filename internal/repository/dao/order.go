package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Order struct {
	ID        uint   `gorm:"primaryKey"`
	OptionID  uint   `gorm:"index;not null"`
	Option    Option `gorm:"foreignKey:OptionID"`
	MemberID  uint   `gorm:"index;not null"`
	Quantity  int    `gorm:"not null;check:chk_orders_quantity,quantity > 0"`
	Amount    int    `gorm:"not null"`
	Message   *string
	CreatedAt time.Time `gorm:"not null"`
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return Order{}, err
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).First(&order, id)
	if result.Error != nil {
		return Order{}, notFoundAs(result.Error, ErrOrderNotFound)
	}

	return order, nil
}

func (d *OrderDAO) FindByMemberID(ctx context.Context, memberID uint, limit, offset int) ([]Order, int64, error) {
	var (
		orders []Order
		total  int64
	)

	if err := d.db.WithContext(ctx).Model(&Order{}).Where("member_id = ?", memberID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := d.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return orders, total, nil
}
