package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpdateProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.By(checkPassword)),
	)
}

const chargeMaxAmount = 100_000_000

type ChargePointRequest struct {
	Amount int `json:"amount"`
}

func (req *ChargePointRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(1), validation.Max(chargeMaxAmount)),
	)
}

type LinkKakaoRequest struct {
	AccessToken string `json:"access_token"`
}

func (req *LinkKakaoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AccessToken, validation.Required, validation.Length(1, 512)),
	)
}
