package httphandler

import (
	"net/http"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ShippingRequest is the JSON body for creating a shipping address and, with
// every field optional, for updating one.
type ShippingRequest struct {
	Region        *string `json:"region"`
	Number        *string `json:"number"`
	StreetAddress *string `json:"street_address"`
	LandMark      *string `json:"land_mark"`
	Province      *string `json:"province"`
	City          *string `json:"city"`
	ZipCode       *string `json:"zip_code"`
}

// CreateShipping stores a new shipping address for the caller.
func (h *Handler) CreateShipping(w http.ResponseWriter, r *http.Request) {
	var req ShippingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var a model.ShippingAddress
	assign(&a.Region, req.Region)
	assign(&a.Number, req.Number)
	assign(&a.StreetAddress, req.StreetAddress)
	assign(&a.LandMark, req.LandMark)
	assign(&a.Province, req.Province)
	assign(&a.City, req.City)
	assign(&a.ZipCode, req.ZipCode)

	claims := mustClaims(r)

	created, err := h.svc.Shipping.Create(r.Context(), claims, a)
	if err != nil {
		h.fail(w, r, "shipping address", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":          "Shipping address added successfully",
		"shipping_id":      created.ID,
		"user_id":          claims.UserID,
		"username":         claims.Username,
		"shipping_details": toShippingResponse(created),
	})
}

// ListShipping returns the caller's shipping addresses.
func (h *Handler) ListShipping(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(r)

	addresses, err := h.svc.Shipping.List(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, "shipping address", err)
		return
	}

	resp := make([]ShippingResponse, 0, len(addresses))
	for _, a := range addresses {
		resp = append(resp, toShippingResponse(a))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":            "Shipping addresses retrieved successfully",
		"user_id":            claims.UserID,
		"username":           claims.Username,
		"shipping_addresses": resp,
		"total_addresses":    len(resp),
	})
}

// GetShipping returns one of the caller's shipping addresses.
func (h *Handler) GetShipping(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shipping id")
		return
	}

	a, err := h.svc.Shipping.Get(r.Context(), mustClaims(r).UserID, id)
	if err != nil {
		h.fail(w, r, "shipping address", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"shipping_address": toShippingResponse(*a)})
}

// UpdateShipping applies a partial update to one of the caller's addresses.
func (h *Handler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shipping id")
		return
	}

	var req ShippingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.svc.Shipping.Update(r.Context(), mustClaims(r).UserID, id, model.ShippingPatch{
		Region:        req.Region,
		Number:        req.Number,
		StreetAddress: req.StreetAddress,
		LandMark:      req.LandMark,
		Province:      req.Province,
		City:          req.City,
		ZipCode:       req.ZipCode,
	})
	if err != nil {
		h.fail(w, r, "shipping address", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Shipping address updated successfully",
		"shipping_address": toShippingResponse(*a),
	})
}

// DeleteShipping removes one of the caller's shipping addresses.
func (h *Handler) DeleteShipping(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shipping id")
		return
	}

	if err := h.svc.Shipping.Delete(r.Context(), mustClaims(r).UserID, id); err != nil {
		h.fail(w, r, "shipping address", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Shipping address deleted successfully",
		"shipping_id": id,
	})
}
