package domain

import "time"

type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

type Product struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	ImageURL   string    `json:"image_url"`
	CategoryID uint      `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Option is a purchasable variant of a product with its own stock counter.
type Option struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"-"`
}

// UnitPrice is the price charged per unit of this option.
func (o Option) UnitPrice() int {
	return o.Product.Price
}

type Wish struct {
	ID        uint      `json:"id"`
	MemberID  uint      `json:"member_id"`
	ProductID uint      `json:"product_id"`
	Product   Product   `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one slice of a paged listing.
type Page[T any] struct {
	Items []T   `json:"content"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total_elements"`
}
