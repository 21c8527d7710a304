package domain

import "time"

type Order struct {
	ID        uint      `json:"id"`
	OptionID  uint      `json:"option_id"`
	MemberID  uint      `json:"member_id"`
	Quantity  int       `json:"quantity"`
	Amount    int       `json:"amount"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
