package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateOrderRequest struct {
	OptionID uint   `json:"optionId"`
	Quantity int    `json:"quantity"`
	Message  string `json:"message,omitempty"`
}

// Validate leaves quantity to the order service, which rejects it before any
// ledger is touched.
func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OptionID, validation.Required),
		validation.Field(&req.Message, validation.RuneLength(0, 255)),
	)
}

type AddWishRequest struct {
	ProductID uint `json:"product_id"`
}

func (req *AddWishRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required),
	)
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type PageRequest struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

func (req *PageRequest) Validate() error {
	if req.Size == 0 {
		req.Size = defaultPageSize
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Page, validation.Min(0)),
		validation.Field(&req.Size, validation.Min(1), validation.Max(maxPageSize)),
	)
}
