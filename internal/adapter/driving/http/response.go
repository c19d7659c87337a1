package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/marketplace/internal/application"
	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// Error status codes carried in the "status" field of error responses.
const (
	statusValidation       = "validation_error"
	statusUnauthorized     = "unauthorized"
	statusForbidden        = "forbidden"
	statusNotFound         = "not_found"
	statusConflict         = "conflict"
	statusDuplicateProduct = "duplicate_product"
	statusInternal         = "internal_error"
	statusSuccess          = "success"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error","status":"internal_error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response whose status code is derived from
// the HTTP status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message, Status: statusCodeFor(status)})
}

func statusCodeFor(httpStatus int) string {
	switch httpStatus {
	case http.StatusBadRequest:
		return statusValidation
	case http.StatusUnauthorized:
		return statusUnauthorized
	case http.StatusForbidden:
		return statusForbidden
	case http.StatusNotFound:
		return statusNotFound
	case http.StatusConflict:
		return statusConflict
	default:
		return statusInternal
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// --- Auth ---

// CredentialsRequest is the JSON body for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse carries a freshly issued session token.
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
	ExpiresAt string `json:"expires_at"`
}

// MeResponse describes the authenticated account.
type MeResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// --- Products ---

// ProductResponse is the JSON representation of a product.
type ProductResponse struct {
	ProductID       int64   `json:"product_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Stock           int     `json:"stock"`
	Incoming        int     `json:"incoming"`
	CategoryType    string  `json:"category_type"`
	CategoryName    string  `json:"category_name"`
	SubCategory     string  `json:"sub_category"`
	Brand           string  `json:"brand"`
	Description     string  `json:"description"`
	DescriptionHTML string  `json:"description_html"`
	Specifications  string  `json:"specifications"`
	DeliveryCharges float64 `json:"delivery_charges"`
	DeliveryDay     int     `json:"delivery_day"`
	Discounts       float64 `json:"discounts"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Stock:           p.Stock,
		Incoming:        p.Incoming,
		CategoryType:    p.CategoryType,
		CategoryName:    p.CategoryName,
		SubCategory:     p.SubCategory,
		Brand:           p.Brand,
		Description:     p.Description,
		DescriptionHTML: RenderMarkdown(p.Description),
		Specifications:  p.Specifications,
		DeliveryCharges: p.DeliveryCharges,
		DeliveryDay:     p.DeliveryDay,
		Discounts:       p.Discounts,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func toProductResponses(products []model.Product) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return resp
}

// FiltersApplied echoes the product list filters back to the client.
type FiltersApplied struct {
	CategoryType string   `json:"category_type,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	InStockOnly  bool     `json:"in_stock_only"`
}

// --- Variants ---

// VariantResponse is the JSON representation of a variant.
type VariantResponse struct {
	VariantID       int64   `json:"variant_id"`
	ProductID       int64   `json:"product_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	DescriptionHTML string  `json:"description_html"`
	Stock           int     `json:"stock"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toVariantResponse(v model.Variant) VariantResponse {
	return VariantResponse{
		VariantID:       v.ID,
		ProductID:       v.ProductID,
		Name:            v.Name,
		Price:           v.Price,
		Description:     v.Description,
		DescriptionHTML: RenderMarkdown(v.Description),
		Stock:           v.Stock,
		IsActive:        v.IsActive,
		CreatedAt:       formatTime(v.CreatedAt),
		UpdatedAt:       formatTime(v.UpdatedAt),
	}
}

func toVariantResponses(variants []model.Variant) []VariantResponse {
	resp := make([]VariantResponse, 0, len(variants))
	for _, v := range variants {
		resp = append(resp, toVariantResponse(v))
	}
	return resp
}

// SkippedVariantResponse explains why a bulk entry was not inserted.
type SkippedVariantResponse struct {
	Name              string `json:"name"`
	ProductID         int64  `json:"product_id"`
	Reason            string `json:"reason"`
	ExistingVariantID int64  `json:"existing_variant_id"`
}

// BulkSummary counts the outcome of a bulk variant insert.
type BulkSummary struct {
	TotalRequested int `json:"total_requested"`
	Added          int `json:"added"`
	Skipped        int `json:"skipped"`
}

// ProductVariantsResponse groups variants under their product.
type ProductVariantsResponse struct {
	ProductID   int64             `json:"product_id"`
	ProductName string            `json:"product_name"`
	Variants    []VariantResponse `json:"variants"`
}

func toProductVariantsResponse(g application.ProductVariants) ProductVariantsResponse {
	return ProductVariantsResponse{
		ProductID:   g.ProductID,
		ProductName: g.ProductName,
		Variants:    toVariantResponses(g.Variants),
	}
}

// --- Payments ---

// PaymentResponse is the JSON representation of a stored payment method.
// The full card number and CVV are never returned.
type PaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	PaymentType string `json:"payment_type"`
	CardLast4   string `json:"card_last_4"`
	ExpiryDate  string `json:"expiry_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toPaymentResponse(p model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		UserID:      p.OwnerID,
		Username:    p.Username,
		Name:        p.Name,
		PaymentType: string(p.PaymentType),
		CardLast4:   p.CardLast4,
		ExpiryDate:  p.ExpiryDate,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

// --- Shipping ---

// ShippingResponse is the JSON representation of a shipping address.
type ShippingResponse struct {
	ShippingID    int64  `json:"shipping_id"`
	Region        string `json:"region"`
	Number        string `json:"number"`
	StreetAddress string `json:"street_address"`
	LandMark      string `json:"land_mark"`
	Province      string `json:"province"`
	City          string `json:"city"`
	ZipCode       string `json:"zip_code"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toShippingResponse(a model.ShippingAddress) ShippingResponse {
	return ShippingResponse{
		ShippingID:    a.ID,
		Region:        a.Region,
		Number:        a.Number,
		StreetAddress: a.StreetAddress,
		LandMark:      a.LandMark,
		Province:      a.Province,
		City:          a.City,
		ZipCode:       a.ZipCode,
		CreatedAt:     formatTime(a.CreatedAt),
		UpdatedAt:     formatTime(a.UpdatedAt),
	}
}

// --- Reviews ---

// ReviewResponse is the JSON representation of a review.
type ReviewResponse struct {
	ReviewID  int64  `json:"review_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Review    string `json:"review"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ReviewID:  r.ID,
		UserID:    r.OwnerID,
		Username:  r.Username,
		Review:    r.Text,
		Rating:    r.Rating,
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

func toReviewResponses(reviews []model.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, toReviewResponse(r))
	}
	return resp
}

// --- Profile ---

// ProfileResponse is the JSON representation of a user profile.
type ProfileResponse struct {
	ProfileID    int64  `json:"profile_id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Gender       string `json:"gender"`
	EmailAddress string `json:"email_address"`
	Birthday     string `json:"birthday"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toProfileResponse(p model.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID:    p.ID,
		UserID:       p.OwnerID,
		Username:     p.Username,
		Gender:       p.Gender,
		EmailAddress: p.EmailAddress,
		Birthday:     p.Birthday,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}
