package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// MaxBulkVariants is the largest number of variants accepted by AddBulk.
const MaxBulkVariants = 50

// BulkAddResult reports the outcome of a bulk variant insert.
type BulkAddResult struct {
	Requested int
	Added     []model.Variant
	Skipped   []model.SkippedVariant
}

// ProductVariants groups the caller's variants under their product.
type ProductVariants struct {
	ProductID   int64
	ProductName string
	Variants    []model.Variant
}

// VariantService manages product variants. Product ownership is checked
// against the product store before variants are written to their own store.
type VariantService struct {
	variants driven.VariantStore
	products driven.ProductStore
}

// NewVariantService creates a new VariantService.
func NewVariantService(variants driven.VariantStore, products driven.ProductStore) *VariantService {
	return &VariantService{variants: variants, products: products}
}

type variantInput struct {
	ProductID   *int64   `json:"product_id"`
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock"`
}

func (in variantInput) validate(required bool) error {
	var presence validation.Rule = validation.NilOrNotEmpty
	if required {
		presence = validation.Required
	}

	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.ProductID, presence, validation.Min(int64(1))),
		validation.Field(&in.Name, presence, validation.RuneLength(2, 255)),
		validation.Field(&in.Price, validation.Min(0.0)),
		validation.Field(&in.Description, validation.RuneLength(0, 1000)),
		validation.Field(&in.Stock, validation.Min(0)),
	))
}

// foldName lower-cases ASCII letters only, the same folding SQLite's lower()
// applies in the variants unique index and the skip lookup.
func foldName(name string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)
}

// AddBulk validates the batch, checks that every referenced product belongs
// to ownerID, then inserts the variants. Names that already exist for a
// product are skipped.
func (s *VariantService) AddBulk(ctx context.Context, ownerID string, variants []model.Variant) (*BulkAddResult, error) {
	if len(variants) == 0 {
		return nil, invalid("variants must contain at least one entry")
	}
	if len(variants) > MaxBulkVariants {
		return nil, invalid(fmt.Sprintf("variants must contain at most %d entries", MaxBulkVariants))
	}

	type key struct {
		productID int64
		name      string
	}
	seen := make(map[key]struct{}, len(variants))
	productIDs := make([]int64, 0, len(variants))
	known := make(map[int64]struct{})

	for i := range variants {
		v := &variants[i]
		v.Name = strings.TrimSpace(v.Name)

		in := variantInput{
			ProductID:   &v.ProductID,
			Name:        &v.Name,
			Price:       &v.Price,
			Description: &v.Description,
			Stock:       &v.Stock,
		}
		if err := in.validate(true); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Message = fmt.Sprintf("variants[%d]: %s", i, ve.Message)
			}
			return nil, err
		}

		k := key{productID: v.ProductID, name: foldName(v.Name)}
		if _, dup := seen[k]; dup {
			return nil, invalid(fmt.Sprintf("variants[%d]: duplicate variant %q for product %d in request", i, v.Name, v.ProductID))
		}
		seen[k] = struct{}{}

		if _, ok := known[v.ProductID]; !ok {
			known[v.ProductID] = struct{}{}
			productIDs = append(productIDs, v.ProductID)
		}
	}

	for _, id := range productIDs {
		if _, err := s.products.Get(ctx, ownerID, id); err != nil {
			return nil, err
		}
	}

	added, skipped, err := s.variants.AddBulk(ctx, ownerID, variants)
	if err != nil {
		return nil, err
	}

	return &BulkAddResult{Requested: len(variants), Added: added, Skipped: skipped}, nil
}

// ListByProduct returns the variants of one of the owner's products.
func (s *VariantService) ListByProduct(ctx context.Context, ownerID string, productID int64) ([]model.Variant, error) {
	if _, err := s.products.Get(ctx, ownerID, productID); err != nil {
		return nil, err
	}
	return s.variants.ListByProduct(ctx, ownerID, productID)
}

// ListGrouped returns all of the owner's variants grouped by product, ordered
// by product ID. Variants whose product was deleted keep an empty name.
func (s *VariantService) ListGrouped(ctx context.Context, ownerID string) ([]ProductVariants, error) {
	variants, err := s.variants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int64][]model.Variant)
	var ids []int64
	for _, v := range variants {
		if _, ok := byProduct[v.ProductID]; !ok {
			ids = append(ids, v.ProductID)
		}
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	names, err := s.products.NamesByID(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	groups := make([]ProductVariants, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, ProductVariants{
			ProductID:   id,
			ProductName: names[id],
			Variants:    byProduct[id],
		})
	}

	return groups, nil
}

// Get returns one of the owner's variants.
func (s *VariantService) Get(ctx context.Context, ownerID string, id int64) (*model.Variant, error) {
	return s.variants.Get(ctx, ownerID, id)
}

// Update applies the present fields of patch after validating them.
func (s *VariantService) Update(ctx context.Context, ownerID string, id int64, patch model.VariantPatch) (*model.Variant, error) {
	trimPtr(patch.Name)

	if patch == (model.VariantPatch{}) {
		return nil, invalid("no fields to update")
	}

	in := variantInput{
		Name:        patch.Name,
		Price:       patch.Price,
		Description: patch.Description,
		Stock:       patch.Stock,
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}

	return s.variants.Update(ctx, ownerID, id, patch)
}

// Delete removes one of the owner's variants.
func (s *VariantService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.variants.Delete(ctx, ownerID, id)
}
