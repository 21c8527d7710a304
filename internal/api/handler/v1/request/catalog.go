package request

import (
	"errors"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/gift-api/internal/domain"
)

const (
	productNameMaxLength = 15
	optionNameMaxLength  = 50
	productMaxPrice      = 100_000_000
	optionMaxQuantity    = 100_000_000
	reservedBrand        = "카카오"
)

var (
	// Letters, digits, spaces and ( ) [ ] + - & / _ only.
	productNameExp = regexp2.MustCompile(`^[\p{L}\p{N} ()\[\]+\-&/_]+$`, regexp2.None)
	optionNameExp  = regexp2.MustCompile(`^[\p{L}\p{N} ()\[\]+\-&/_]+$`, regexp2.None)
	colorExp       = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	errInvalidNameCharacters = errors.New("only letters, digits, spaces and ( ) [ ] + - & / _ are allowed")
	errReservedBrand         = errors.New("\"카카오\" can only be used after agreement with the brand owner")
	errOptionNamesNotUnique  = errors.New("option names must be unique within a product")
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

func (req *CategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&req.Color, validation.Required, validation.Match(colorExp)),
		validation.Field(&req.ImageURL, validation.Required, is.URL),
		validation.Field(&req.Description, validation.RuneLength(0, 255)),
	)
}

func (req *CategoryRequest) ToDomain(id uint) domain.Category {
	return domain.Category{
		ID:          id,
		Name:        req.Name,
		Color:       req.Color,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
}

type ProductRequest struct {
	Name       string `json:"name"`
	Price      int    `json:"price"`
	ImageURL   string `json:"image_url"`
	CategoryID uint   `json:"category_id"`
}

func (req *ProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, productNameMaxLength), validation.By(checkProductName)),
		validation.Field(&req.Price, validation.Required, validation.Min(1), validation.Max(productMaxPrice)),
		validation.Field(&req.ImageURL, validation.Required, is.URL),
		validation.Field(&req.CategoryID, validation.Required),
	)
}

func (req *ProductRequest) ToDomain(id uint) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	}
}

type CreateProductRequest struct {
	ProductRequest
	Options []OptionRequest `json:"options"`
}

func (req *CreateProductRequest) Validate() error {
	if err := req.ProductRequest.Validate(); err != nil {
		return err
	}

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Options, validation.Required),
	)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(req.Options))
	for i := range req.Options {
		if err = req.Options[i].Validate(); err != nil {
			return err
		}
		if _, ok := seen[req.Options[i].Name]; ok {
			return errOptionNamesNotUnique
		}
		seen[req.Options[i].Name] = struct{}{}
	}

	return nil
}

func (req *CreateProductRequest) OptionsToDomain() []domain.Option {
	options := make([]domain.Option, len(req.Options))
	for i, o := range req.Options {
		options[i] = o.ToDomain(0)
	}

	return options
}

type OptionRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (req *OptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, optionNameMaxLength), validation.By(checkOptionName)),
		validation.Field(&req.Quantity, validation.Min(0), validation.Max(optionMaxQuantity)),
	)
}

func (req *OptionRequest) ToDomain(productID uint) domain.Option {
	return domain.Option{
		ProductID: productID,
		Name:      req.Name,
		Quantity:  req.Quantity,
	}
}

func checkProductName(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}

	if strings.Contains(name, reservedBrand) {
		return errReservedBrand
	}

	return matchName(productNameExp, name)
}

func checkOptionName(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}

	return matchName(optionNameExp, name)
}

func matchName(exp *regexp2.Regexp, name string) error {
	ok, err := exp.MatchString(name)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidNameCharacters
	}

	return nil
}
