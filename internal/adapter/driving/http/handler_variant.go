package httphandler

import (
	"fmt"
	"net/http"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// VariantRequest is one entry of a bulk insert and the body of a variant
// update. ProductID is ignored on update.
type VariantRequest struct {
	ProductID   int64    `json:"product_id"`
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"is_active"`
}

// BulkVariantsRequest is the JSON body of a bulk variant insert.
type BulkVariantsRequest struct {
	Variants []VariantRequest `json:"variants"`
}

func (req VariantRequest) toVariant() model.Variant {
	v := model.Variant{ProductID: req.ProductID, IsActive: true}
	assign(&v.Name, req.Name)
	assign(&v.Price, req.Price)
	assign(&v.Description, req.Description)
	assign(&v.Stock, req.Stock)
	assign(&v.IsActive, req.IsActive)
	return v
}

// AddVariantsBulk inserts up to the bulk limit of variants in one request.
func (h *Handler) AddVariantsBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkVariantsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := mustClaims(r)

	variants := make([]model.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, v.toVariant())
	}

	res, err := h.svc.Variants.AddBulk(r.Context(), claims.UserID, variants)
	if err != nil {
		h.fail(w, r, "product", err)
		return
	}

	skipped := make([]SkippedVariantResponse, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, SkippedVariantResponse{
			Name:              s.Name,
			ProductID:         s.ProductID,
			Reason:            s.Reason,
			ExistingVariantID: s.ExistingVariantID,
		})
	}

	h.logger.Info("variants added",
		"user_id", claims.UserID,
		"added", len(res.Added),
		"skipped", len(res.Skipped),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("%d variant(s) added, %d skipped", len(res.Added), len(res.Skipped)),
		"status":  statusSuccess,
		"user_id": claims.UserID,
		"summary": BulkSummary{
			TotalRequested: res.Requested,
			Added:          len(res.Added),
			Skipped:        len(res.Skipped),
		},
		"added_variants":   toVariantResponses(res.Added),
		"skipped_variants": skipped,
	})
}

// ListProductVariants returns the variants of one of the caller's products.
func (h *Handler) ListProductVariants(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	variants, err := h.svc.Variants.ListByProduct(r.Context(), mustClaims(r).UserID, productID)
	if err != nil {
		h.fail(w, r, "product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id":  productID,
		"variants":    toVariantResponses(variants),
		"total_count": len(variants),
		"status":      statusSuccess,
	})
}

// ListMyVariants returns every variant the caller owns, grouped by product.
func (h *Handler) ListMyVariants(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Variants.ListGrouped(r.Context(), mustClaims(r).UserID)
	if err != nil {
		h.fail(w, r, "variant", err)
		return
	}

	total := 0
	resp := make([]ProductVariantsResponse, 0, len(groups))
	for _, g := range groups {
		total += len(g.Variants)
		resp = append(resp, toProductVariantsResponse(g))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products":       resp,
		"total_variants": total,
		"status":         statusSuccess,
	})
}

// GetVariant returns one of the caller's variants.
func (h *Handler) GetVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid variant id")
		return
	}

	v, err := h.svc.Variants.Get(r.Context(), mustClaims(r).UserID, id)
	if err != nil {
		h.fail(w, r, "variant", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"variant": toVariantResponse(*v),
		"status":  statusSuccess,
	})
}

// UpdateVariant applies a partial update to one of the caller's variants.
func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid variant id")
		return
	}

	var req VariantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.svc.Variants.Update(r.Context(), mustClaims(r).UserID, id, model.VariantPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.fail(w, r, "variant", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Variant updated successfully",
		"variant": toVariantResponse(*v),
		"status":  statusSuccess,
	})
}

// DeleteVariant removes one of the caller's variants.
func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid variant id")
		return
	}

	if err := h.svc.Variants.Delete(r.Context(), mustClaims(r).UserID, id); err != nil {
		h.fail(w, r, "variant", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Variant deleted successfully",
		"variant_id": id,
		"status":     statusSuccess,
	})
}
