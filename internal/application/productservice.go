package application

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// ProductService manages a seller's catalog.
type ProductService struct {
	products driven.ProductStore
}

// NewProductService creates a new ProductService.
func NewProductService(products driven.ProductStore) *ProductService {
	return &ProductService{products: products}
}

type productInput struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	Stock           *int     `json:"stock"`
	Incoming        *int     `json:"incoming"`
	CategoryType    *string  `json:"category_type"`
	CategoryName    *string  `json:"category_name"`
	Brand           *string  `json:"brand"`
	DeliveryCharges *float64 `json:"delivery_charges"`
	DeliveryDay     *int     `json:"delivery_day"`
	Discounts       *float64 `json:"discounts"`
}

// validate checks every non-nil field. With required set, name and both
// category fields must also be present and non-empty.
func (in productInput) validate(required bool) error {
	var presence validation.Rule = validation.NilOrNotEmpty
	if required {
		presence = validation.Required
	}

	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, presence, validation.RuneLength(1, 255)),
		validation.Field(&in.Price, validation.Min(0.0)),
		validation.Field(&in.Stock, validation.Min(0)),
		validation.Field(&in.Incoming, validation.Min(0)),
		validation.Field(&in.CategoryType, presence, validation.RuneLength(1, 100)),
		validation.Field(&in.CategoryName, presence, validation.RuneLength(1, 100)),
		validation.Field(&in.Brand, validation.RuneLength(0, 100)),
		validation.Field(&in.DeliveryCharges, validation.Min(0.0)),
		validation.Field(&in.DeliveryDay, validation.By(atLeastOne)),
		validation.Field(&in.Discounts, validation.Min(0.0), validation.Max(100.0)),
	))
}

// atLeastOne rejects integer values below one, including zero, which
// validation.Min treats as empty and skips.
func atLeastOne(value any) error {
	p, ok := value.(*int)
	if !ok || p == nil {
		return nil
	}
	if *p < 1 {
		return errors.New("must be no less than 1")
	}
	return nil
}

// Create validates p and stores it for ownerID. A zero DeliveryDay defaults to one.
func (s *ProductService) Create(ctx context.Context, ownerID string, p model.Product) (model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.CategoryType = strings.TrimSpace(p.CategoryType)
	p.CategoryName = strings.TrimSpace(p.CategoryName)
	p.SubCategory = strings.TrimSpace(p.SubCategory)
	p.Brand = strings.TrimSpace(p.Brand)
	if p.DeliveryDay == 0 {
		p.DeliveryDay = 1
	}

	in := productInput{
		Name:            &p.Name,
		Price:           &p.Price,
		Stock:           &p.Stock,
		Incoming:        &p.Incoming,
		CategoryType:    &p.CategoryType,
		CategoryName:    &p.CategoryName,
		Brand:           &p.Brand,
		DeliveryCharges: &p.DeliveryCharges,
		DeliveryDay:     &p.DeliveryDay,
		Discounts:       &p.Discounts,
	}
	if err := in.validate(true); err != nil {
		return model.Product{}, err
	}

	p.ID = 0
	p.OwnerID = ownerID
	return s.products.Create(ctx, p)
}

// List returns the owner's products matching filter.
func (s *ProductService) List(ctx context.Context, ownerID string, filter model.ProductFilter) ([]model.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, invalid("min_price must not exceed max_price")
	}
	return s.products.List(ctx, ownerID, filter)
}

// Get returns one of the owner's products.
func (s *ProductService) Get(ctx context.Context, ownerID string, id int64) (*model.Product, error) {
	return s.products.Get(ctx, ownerID, id)
}

// Update applies the present fields of patch after validating them.
func (s *ProductService) Update(ctx context.Context, ownerID string, id int64, patch model.ProductPatch) (*model.Product, error) {
	trimPtr(patch.Name)
	trimPtr(patch.CategoryType)
	trimPtr(patch.CategoryName)
	trimPtr(patch.SubCategory)
	trimPtr(patch.Brand)

	if patch == (model.ProductPatch{}) {
		return nil, invalid("no fields to update")
	}

	in := productInput{
		Name:            patch.Name,
		Price:           patch.Price,
		Stock:           patch.Stock,
		Incoming:        patch.Incoming,
		CategoryType:    patch.CategoryType,
		CategoryName:    patch.CategoryName,
		Brand:           patch.Brand,
		DeliveryCharges: patch.DeliveryCharges,
		DeliveryDay:     patch.DeliveryDay,
		Discounts:       patch.Discounts,
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}

	return s.products.Update(ctx, ownerID, id, patch)
}

// Delete removes one of the owner's products. Its variants are kept.
func (s *ProductService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.products.Delete(ctx, ownerID, id)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
