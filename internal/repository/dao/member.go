package dao

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Member struct {
	ID uint `gorm:"primaryKey"`

	Email    string  `gorm:"uniqueIndex;size:255;not null"`
	Password *string `gorm:"size:255"`

	// KakaoID is set for accounts created through the external login flow.
	KakaoID          *string `gorm:"uniqueIndex;size:64"`
	KakaoAccessToken *string `gorm:"size:512"`

	Point int `gorm:"not null;default:0;check:chk_members_point,point >= 0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Create(&member)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Member{}, ErrMemberEmailExists
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByID(ctx context.Context, id uint) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, id)
	if result.Error != nil {
		return Member{}, notFoundAs(result.Error, ErrMemberNotFound)
	}

	return member, nil
}

func (d *MemberDAO) FindByEmail(ctx context.Context, email string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "email = ?", email)
	if result.Error != nil {
		return Member{}, notFoundAs(result.Error, ErrMemberNotFound)
	}

	return member, nil
}

// UpdateProfile rewrites the credentials and notification handle. Point is only
// changed by ChargePoint and CreditPoint.
func (d *MemberDAO) UpdateProfile(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).
		Model(&Member{ID: member.ID}).
		Select("email", "password", "kakao_access_token", "updated_at").
		Updates(&member)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Member{}, ErrMemberEmailExists
		}

		return Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Member{}, ErrMemberNotFound
	}

	return d.FindByID(ctx, member.ID)
}

// Delete removes the member together with their wishes.
func (d *MemberDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&Wish{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Member{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberNotFound
		}

		return nil
	})
}

// ChargePoint subtracts amount from the member's balance under a row lock.
// The balance is untouched when it is smaller than amount.
func (d *MemberDAO) ChargePoint(ctx context.Context, id uint, amount int) (Member, error) {
	var member Member

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&member, id).Error; err != nil {
			return notFoundAs(err, ErrMemberNotFound)
		}

		if member.Point < amount {
			return ErrInsufficientBalance
		}

		member.Point -= amount

		return tx.Model(&member).Update("point", member.Point).Error
	})
	if err != nil {
		return Member{}, err
	}

	return member, nil
}

func (d *MemberDAO) CreditPoint(ctx context.Context, id uint, amount int) (Member, error) {
	var member Member

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&member, id).Error; err != nil {
			return notFoundAs(err, ErrMemberNotFound)
		}

		point, err := creditedPoint(member.Point, amount)
		if err != nil {
			return err
		}
		member.Point = point

		return tx.Model(&member).Update("point", member.Point).Error
	})
	if err != nil {
		return Member{}, err
	}

	return member, nil
}

// creditedPoint returns point + amount, or ErrAmountOutOfRange when the sum does
// not fit in an int.
func creditedPoint(point, amount int) (int, error) {
	if amount > math.MaxInt-point {
		return 0, ErrAmountOutOfRange
	}

	return point + amount, nil
}
