package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Color       string `gorm:"size:7;not null"`
	ImageURL    string `gorm:"size:1000;not null"`
	Description string `gorm:"size:500"`
}

type Product struct {
	ID         uint     `gorm:"primaryKey"`
	Name       string   `gorm:"size:15;not null"`
	Price      int      `gorm:"not null"`
	ImageURL   string   `gorm:"size:1000;not null"`
	CategoryID uint     `gorm:"index;not null"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Options    []Option `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Option is one stocked variant of a product. Quantity only ever moves through
// SubtractQuantity and RestoreQuantity once the row exists.
type Option struct {
	ID        uint    `gorm:"primaryKey"`
	ProductID uint    `gorm:"uniqueIndex:idx_options_product_name;not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Name      string  `gorm:"uniqueIndex:idx_options_product_name;size:50;not null"`
	Quantity  int     `gorm:"not null;check:chk_options_quantity,quantity >= 0"`
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) FindAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category

	result := d.db.WithContext(ctx).Order("id").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *CatalogDAO) FindCategoryByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		return Category{}, notFoundAs(result.Error, ErrCategoryNotFound)
	}

	return category, nil
}

func (d *CatalogDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	if err := d.db.WithContext(ctx).Create(&category).Error; err != nil {
		return Category{}, err
	}

	return category, nil
}

func (d *CatalogDAO) UpdateCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).
		Model(&Category{ID: category.ID}).
		Select("name", "color", "image_url", "description").
		Updates(&category)
	if result.Error != nil {
		return Category{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Category{}, ErrCategoryNotFound
	}

	return category, nil
}

func (d *CatalogDAO) DeleteCategory(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Category{}, id)
	if result.Error != nil {
		return referencedAs(result.Error, ErrCategoryHasProducts)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (d *CatalogDAO) FindProducts(ctx context.Context, limit, offset int) ([]Product, int64, error) {
	var (
		products []Product
		total    int64
	)

	if err := d.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := d.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return products, total, nil
}

func (d *CatalogDAO) FindProductByID(ctx context.Context, id uint) (Product, error) {
	var product Product

	result := d.db.WithContext(ctx).First(&product, id)
	if result.Error != nil {
		return Product{}, notFoundAs(result.Error, ErrProductNotFound)
	}

	return product, nil
}

// InsertProduct creates the product together with its initial options so a
// product is never visible without at least one option.
func (d *CatalogDAO) InsertProduct(ctx context.Context, product Product, options []Option) (Product, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
			return err
		}

		for i := range options {
			options[i].ProductID = product.ID
		}

		if err := tx.Omit(clause.Associations).Create(&options).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrOptionNameExists
			}

			return err
		}

		product.Options = options

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	return product, nil
}

func (d *CatalogDAO) UpdateProduct(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).
		Model(&Product{ID: product.ID}).
		Select("name", "price", "image_url", "category_id", "updated_at").
		Updates(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Product{}, ErrProductNotFound
	}

	return d.FindProductByID(ctx, product.ID)
}

func (d *CatalogDAO) DeleteProduct(ctx context.Context, id uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&Option{}).Error; err != nil {
			return referencedAs(err, ErrReferencedByOrders)
		}

		result := tx.Delete(&Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		return nil
	})

	return err
}

func (d *CatalogDAO) FindOptionsByProductID(ctx context.Context, productID uint) ([]Option, error) {
	var options []Option

	result := d.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&options)
	if result.Error != nil {
		return nil, result.Error
	}

	return options, nil
}

func (d *CatalogDAO) FindOptionByID(ctx context.Context, id uint) (Option, error) {
	var option Option

	result := d.db.WithContext(ctx).Preload("Product").First(&option, id)
	if result.Error != nil {
		return Option{}, notFoundAs(result.Error, ErrOptionNotFound)
	}

	return option, nil
}

func (d *CatalogDAO) InsertOption(ctx context.Context, option Option) (Option, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&option)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Option{}, ErrOptionNameExists
		}

		return Option{}, result.Error
	}

	return option, nil
}

// DeleteOption removes optionID from productID. The product row is locked for the
// duration so two concurrent deletes cannot both pass the last-option check.
func (d *CatalogDAO) DeleteOption(ctx context.Context, productID, optionID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
			return notFoundAs(err, ErrProductNotFound)
		}

		var option Option
		if err := tx.Where("id = ? AND product_id = ?", optionID, productID).First(&option).Error; err != nil {
			return notFoundAs(err, ErrOptionNotFound)
		}

		var count int64
		if err := tx.Model(&Option{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastOptionOfProduct
		}

		if err := tx.Delete(&option).Error; err != nil {
			return referencedAs(err, ErrReferencedByOrders)
		}

		return nil
	})
}

// SubtractQuantity is the inventory ledger's check-and-subtract. The option row is
// locked FOR UPDATE so concurrent callers serialize on it and never act on a stale
// quantity. On success the returned option carries its product for pricing.
func (d *CatalogDAO) SubtractQuantity(ctx context.Context, optionID uint, quantity int) (Option, error) {
	var option Option

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&option, optionID).Error; err != nil {
			return notFoundAs(err, ErrOptionNotFound)
		}

		if option.Quantity < quantity {
			return ErrInsufficientStock
		}

		option.Quantity -= quantity
		if err := tx.Model(&option).Update("quantity", option.Quantity).Error; err != nil {
			return err
		}

		return tx.First(&option.Product, option.ProductID).Error
	})
	if err != nil {
		return Option{}, err
	}

	return option, nil
}

// RestoreQuantity puts quantity back on an option. It is a single relative UPDATE,
// so it composes safely with concurrent subtractions.
func (d *CatalogDAO) RestoreQuantity(ctx context.Context, optionID uint, quantity int) error {
	result := d.db.WithContext(ctx).
		Model(&Option{}).
		Where("id = ?", optionID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOptionNotFound
	}

	return nil
}
