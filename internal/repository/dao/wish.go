package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Wish struct {
	ID        uint    `gorm:"primaryKey"`
	MemberID  uint    `gorm:"uniqueIndex:idx_wishes_member_product;not null"`
	ProductID uint    `gorm:"uniqueIndex:idx_wishes_member_product;not null"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type WishDAO struct {
	db *gorm.DB
}

func NewWishDAO(db *gorm.DB) *WishDAO {
	return &WishDAO{
		db: db,
	}
}

// Insert stores a wish, or returns the existing one when the member already
// wishes for the product. The bool reports whether a row was created.
func (d *WishDAO) Insert(ctx context.Context, wish Wish) (Wish, bool, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&wish)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			existing, err := d.FindByMemberAndProduct(ctx, wish.MemberID, wish.ProductID)
			return existing, false, err
		}

		return Wish{}, false, result.Error
	}

	created, err := d.FindByID(ctx, wish.ID)

	return created, true, err
}

func (d *WishDAO) FindByID(ctx context.Context, id uint) (Wish, error) {
	var wish Wish

	result := d.db.WithContext(ctx).Preload("Product").First(&wish, id)
	if result.Error != nil {
		return Wish{}, notFoundAs(result.Error, ErrWishNotFound)
	}

	return wish, nil
}

func (d *WishDAO) FindByMemberAndProduct(ctx context.Context, memberID, productID uint) (Wish, error) {
	var wish Wish

	result := d.db.WithContext(ctx).
		Preload("Product").
		Where("member_id = ? AND product_id = ?", memberID, productID).
		First(&wish)
	if result.Error != nil {
		return Wish{}, notFoundAs(result.Error, ErrWishNotFound)
	}

	return wish, nil
}

func (d *WishDAO) FindByMemberID(ctx context.Context, memberID uint, limit, offset int) ([]Wish, int64, error) {
	var (
		wishes []Wish
		total  int64
	)

	if err := d.db.WithContext(ctx).Model(&Wish{}).Where("member_id = ?", memberID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := d.db.WithContext(ctx).
		Preload("Product").
		Where("member_id = ?", memberID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&wishes)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return wishes, total, nil
}

func (d *WishDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Wish{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishNotFound
	}

	return nil
}
