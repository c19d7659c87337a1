package model

import "time"

// Product is a catalog item owned by a seller.
type Product struct {
	ID              int64
	OwnerID         string
	Name            string
	Price           float64
	Stock           int
	Incoming        int
	CategoryType    string
	CategoryName    string
	SubCategory     string
	Brand           string
	Description     string
	Specifications  string
	DeliveryCharges float64
	DeliveryDay     int
	Discounts       float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductFilter narrows a product listing. Zero values disable a filter;
// all set filters are ANDed.
type ProductFilter struct {
	CategoryType string
	CategoryName string
	Brand        string
	MinPrice     *float64
	MaxPrice     *float64
	InStockOnly  bool
}

// ProductPatch holds the fields of a partial product update. Nil means unchanged.
type ProductPatch struct {
	Name            *string
	Price           *float64
	Stock           *int
	Incoming        *int
	CategoryType    *string
	CategoryName    *string
	SubCategory     *string
	Brand           *string
	Description     *string
	Specifications  *string
	DeliveryCharges *float64
	DeliveryDay     *int
	Discounts       *float64
}
