package application

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// ShippingService manages a user's shipping addresses.
type ShippingService struct {
	addresses driven.ShippingStore
}

// NewShippingService creates a new ShippingService.
func NewShippingService(addresses driven.ShippingStore) *ShippingService {
	return &ShippingService{addresses: addresses}
}

type shippingInput struct {
	Region        *string `json:"region"`
	Number        *string `json:"number"`
	StreetAddress *string `json:"street_address"`
	LandMark      *string `json:"land_mark"`
	Province      *string `json:"province"`
	City          *string `json:"city"`
	ZipCode       *string `json:"zip_code"`
}

func (in shippingInput) validate(required bool) error {
	var presence validation.Rule = validation.NilOrNotEmpty
	if required {
		presence = validation.Required
	}
	maxLen := validation.RuneLength(0, 255)

	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Region, presence, maxLen),
		validation.Field(&in.Number, presence, maxLen),
		validation.Field(&in.StreetAddress, presence, maxLen),
		validation.Field(&in.LandMark, maxLen),
		validation.Field(&in.Province, presence, maxLen),
		validation.Field(&in.City, presence, maxLen),
		validation.Field(&in.ZipCode, presence, maxLen),
	))
}

// Create validates a and stores it for the caller.
func (s *ShippingService) Create(ctx context.Context, claims model.Claims, a model.ShippingAddress) (model.ShippingAddress, error) {
	for _, f := range []*string{&a.Region, &a.Number, &a.StreetAddress, &a.LandMark, &a.Province, &a.City, &a.ZipCode} {
		*f = strings.TrimSpace(*f)
	}

	in := shippingInput{
		Region:        &a.Region,
		Number:        &a.Number,
		StreetAddress: &a.StreetAddress,
		LandMark:      &a.LandMark,
		Province:      &a.Province,
		City:          &a.City,
		ZipCode:       &a.ZipCode,
	}
	if err := in.validate(true); err != nil {
		return model.ShippingAddress{}, err
	}

	a.ID = 0
	a.OwnerID = claims.UserID
	a.Username = claims.Username
	return s.addresses.Create(ctx, a)
}

// List returns the caller's addresses.
func (s *ShippingService) List(ctx context.Context, ownerID string) ([]model.ShippingAddress, error) {
	return s.addresses.List(ctx, ownerID)
}

// Get returns one of the caller's addresses.
func (s *ShippingService) Get(ctx context.Context, ownerID string, id int64) (*model.ShippingAddress, error) {
	return s.addresses.Get(ctx, ownerID, id)
}

// Update applies the present fields of patch after validating them.
func (s *ShippingService) Update(ctx context.Context, ownerID string, id int64, patch model.ShippingPatch) (*model.ShippingAddress, error) {
	for _, f := range []*string{patch.Region, patch.Number, patch.StreetAddress, patch.LandMark, patch.Province, patch.City, patch.ZipCode} {
		trimPtr(f)
	}

	if patch == (model.ShippingPatch{}) {
		return nil, invalid("no fields to update")
	}

	in := shippingInput{
		Region:        patch.Region,
		Number:        patch.Number,
		StreetAddress: patch.StreetAddress,
		LandMark:      patch.LandMark,
		Province:      patch.Province,
		City:          patch.City,
		ZipCode:       patch.ZipCode,
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}

	return s.addresses.Update(ctx, ownerID, id, patch)
}

// Delete removes one of the caller's addresses.
func (s *ShippingService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.addresses.Delete(ctx, ownerID, id)
}
