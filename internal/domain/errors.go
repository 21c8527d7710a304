package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every concrete error below wraps exactly one of them so callers can
// branch on the kind with errors.Is and still match the concrete error when needed.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
)

var (
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrAmountOutOfRange = fmt.Errorf("%w: amount is out of range", ErrValidation)

	ErrMemberNotFound   = fmt.Errorf("%w: member", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
	ErrOptionNotFound   = fmt.Errorf("%w: option", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order", ErrNotFound)
	ErrWishNotFound     = fmt.Errorf("%w: wish", ErrNotFound)

	ErrInsufficientStock   = fmt.Errorf("%w: insufficient stock", ErrInsufficientResource)
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient point balance", ErrInsufficientResource)

	ErrMemberEmailExists   = fmt.Errorf("%w: email is already registered", ErrValidation)
	ErrWrongCredentials    = fmt.Errorf("%w: wrong email or password", ErrValidation)
	ErrOptionNameExists    = fmt.Errorf("%w: option name already exists", ErrValidation)
	ErrLastOptionOfProduct = fmt.Errorf("%w: cannot delete the last option of a product", ErrValidation)
	ErrReferencedByOrders  = fmt.Errorf("%w: referenced by existing orders", ErrValidation)
	ErrCategoryHasProducts = fmt.Errorf("%w: category still has products", ErrValidation)

	ErrDuplicateOrder = fmt.Errorf("%w: order request already submitted", ErrConflict)

	ErrNotWishOwner = fmt.Errorf("%w: cannot delete another member's wish", ErrForbidden)
)
