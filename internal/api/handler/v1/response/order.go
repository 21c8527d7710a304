package response

import (
	"time"

	"github.com/vietanh2810/gift-api/internal/domain"
)

type Order struct {
	ID        uint      `json:"id"`
	OptionID  uint      `json:"optionId"`
	Quantity  int       `json:"quantity"`
	Amount    int       `json:"amount"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewOrder(o domain.Order) Order {
	return Order{
		ID:        o.ID,
		OptionID:  o.OptionID,
		Quantity:  o.Quantity,
		Amount:    o.Amount,
		Message:   o.Message,
		CreatedAt: o.CreatedAt,
	}
}

func NewOrderPage(p domain.Page[domain.Order]) domain.Page[Order] {
	items := make([]Order, len(p.Items))
	for i, o := range p.Items {
		items[i] = NewOrder(o)
	}

	return domain.Page[Order]{Items: items, Page: p.Page, Size: p.Size, Total: p.Total}
}
