package model

import "time"

// Variant is a purchasable option of a product, e.g. a size or colour.
type Variant struct {
	ID          int64
	ProductID   int64
	OwnerID     string
	Name        string
	Price       float64
	Description string
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SkippedVariant records a bulk-add entry that was not inserted because a
// variant with the same name already exists for the product.
type SkippedVariant struct {
	Name              string
	ProductID         int64
	Reason            string
	ExistingVariantID int64
}

// VariantPatch holds the fields of a partial variant update. Nil means unchanged.
type VariantPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Stock       *int
	IsActive    *bool
}
