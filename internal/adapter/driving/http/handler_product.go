package httphandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// ProductRequest is the JSON body for creating a product and, with every
// field optional, for updating one.
type ProductRequest struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	Stock           *int     `json:"stock"`
	Incoming        *int     `json:"incoming"`
	CategoryType    *string  `json:"category_type"`
	CategoryName    *string  `json:"category_name"`
	SubCategory     *string  `json:"sub_category"`
	Brand           *string  `json:"brand"`
	Description     *string  `json:"description"`
	Specifications  *string  `json:"specifications"`
	DeliveryCharges *float64 `json:"delivery_charges"`
	DeliveryDay     *int     `json:"delivery_day"`
	Discounts       *float64 `json:"discounts"`
}

func (req ProductRequest) toProduct() model.Product {
	var p model.Product
	assign(&p.Name, req.Name)
	assign(&p.Price, req.Price)
	assign(&p.Stock, req.Stock)
	assign(&p.Incoming, req.Incoming)
	assign(&p.CategoryType, req.CategoryType)
	assign(&p.CategoryName, req.CategoryName)
	assign(&p.SubCategory, req.SubCategory)
	assign(&p.Brand, req.Brand)
	assign(&p.Description, req.Description)
	assign(&p.Specifications, req.Specifications)
	assign(&p.DeliveryCharges, req.DeliveryCharges)
	assign(&p.DeliveryDay, req.DeliveryDay)
	assign(&p.Discounts, req.Discounts)
	return p
}

func (req ProductRequest) toPatch() model.ProductPatch {
	return model.ProductPatch{
		Name:            req.Name,
		Price:           req.Price,
		Stock:           req.Stock,
		Incoming:        req.Incoming,
		CategoryType:    req.CategoryType,
		CategoryName:    req.CategoryName,
		SubCategory:     req.SubCategory,
		Brand:           req.Brand,
		Description:     req.Description,
		Specifications:  req.Specifications,
		DeliveryCharges: req.DeliveryCharges,
		DeliveryDay:     req.DeliveryDay,
		Discounts:       req.Discounts,
	}
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// CreateProduct adds a product from a JSON body.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.createProduct(w, r, req.toProduct())
}

// CreateProductForm adds a product from form or multipart form data.
func (h *Handler) CreateProductForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	p, err := productFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.createProduct(w, r, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request, p model.Product) {
	claims := mustClaims(r)

	created, err := h.svc.Products.Create(r.Context(), claims.UserID, p)
	if errors.Is(err, driven.ErrAlreadyExists) {
		writeDuplicateProduct(w, p.Name)
		return
	}
	if err != nil {
		h.fail(w, r, "product", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Product added successfully",
		"status":     statusSuccess,
		"product_id": created.ID,
		"product":    toProductResponse(created),
	})
}

// writeDuplicateProduct reports a name collision with another of the
// caller's products, on create and on rename.
func writeDuplicateProduct(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusConflict, errorResponse{
		Error:  fmt.Sprintf("a product named %q already exists", strings.TrimSpace(name)),
		Status: statusDuplicateProduct,
	})
}

// productFromForm reads product fields from r.Form. Numeric fields that are
// present must parse.
func productFromForm(r *http.Request) (model.Product, error) {
	p := model.Product{
		Name:           r.FormValue("name"),
		CategoryType:   r.FormValue("category_type"),
		CategoryName:   r.FormValue("category_name"),
		SubCategory:    r.FormValue("sub_category"),
		Brand:          r.FormValue("brand"),
		Description:    r.FormValue("description"),
		Specifications: r.FormValue("specifications"),
	}

	var err error
	if p.Price, err = formFloat(r, "price"); err != nil {
		return p, err
	}
	if p.DeliveryCharges, err = formFloat(r, "delivery_charges"); err != nil {
		return p, err
	}
	if p.Discounts, err = formFloat(r, "discounts"); err != nil {
		return p, err
	}
	if p.Stock, err = formInt(r, "stock"); err != nil {
		return p, err
	}
	if p.Incoming, err = formInt(r, "incoming"); err != nil {
		return p, err
	}
	if p.DeliveryDay, err = formInt(r, "delivery_day"); err != nil {
		return p, err
	}

	return p, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	s := strings.TrimSpace(r.FormValue(key))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

func formInt(r *http.Request, key string) (int, error) {
	s := strings.TrimSpace(r.FormValue(key))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// parseProductFilter reads list filters from the query string.
func parseProductFilter(r *http.Request) (model.ProductFilter, error) {
	q := r.URL.Query()
	f := model.ProductFilter{
		CategoryType: strings.TrimSpace(q.Get("category_type")),
		CategoryName: strings.TrimSpace(q.Get("category_name")),
		Brand:        strings.TrimSpace(q.Get("brand")),
	}

	for key, dst := range map[string]**float64{"min_price": &f.MinPrice, "max_price": &f.MaxPrice} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, fmt.Errorf("%s must be a number", key)
		}
		*dst = &v
	}

	if raw := q.Get("in_stock_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, errors.New("in_stock_only must be true or false")
		}
		f.InStockOnly = v
	}

	return f, nil
}

// ListProducts returns the caller's products, optionally filtered.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.svc.Products.List(r.Context(), mustClaims(r).UserID, filter)
	if err != nil {
		h.fail(w, r, "product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products":    toProductResponses(products),
		"total_count": len(products),
		"filters_applied": FiltersApplied{
			CategoryType: filter.CategoryType,
			CategoryName: filter.CategoryName,
			Brand:        filter.Brand,
			MinPrice:     filter.MinPrice,
			MaxPrice:     filter.MaxPrice,
			InStockOnly:  filter.InStockOnly,
		},
		"status": statusSuccess,
	})
}

// GetProduct returns one of the caller's products.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.Products.Get(r.Context(), mustClaims(r).UserID, id)
	if err != nil {
		h.fail(w, r, "product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product": toProductResponse(*p),
		"status":  statusSuccess,
	})
}

// UpdateProduct applies a partial update to one of the caller's products.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Products.Update(r.Context(), mustClaims(r).UserID, id, req.toPatch())
	if errors.Is(err, driven.ErrAlreadyExists) && req.Name != nil {
		writeDuplicateProduct(w, *req.Name)
		return
	}
	if err != nil {
		h.fail(w, r, "product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": toProductResponse(*p),
		"status":  statusSuccess,
	})
}

// DeleteProduct removes one of the caller's products.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.svc.Products.Delete(r.Context(), mustClaims(r).UserID, id); err != nil {
		h.fail(w, r, "product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Product deleted successfully",
		"product_id": id,
		"status":     statusSuccess,
	})
}
