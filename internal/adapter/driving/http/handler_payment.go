package httphandler

import (
	"net/http"
	"strings"

	"github.com/ericfisherdev/marketplace/internal/application"
)

// PaymentRequest is the JSON body for adding a payment method.
type PaymentRequest struct {
	PaymentID   string `json:"payment_id"`
	Name        string `json:"name"`
	PaymentType string `json:"payment_type"`
	CardNumber  string `json:"card_number"`
	ExpiryDate  string `json:"expiry_date"`
	CVV         string `json:"cvv_number"`
}

// PaymentUpdateRequest is the JSON body for a partial payment update.
type PaymentUpdateRequest struct {
	Name        *string `json:"name"`
	PaymentType *string `json:"payment_type"`
	CardNumber  *string `json:"card_number"`
	ExpiryDate  *string `json:"expiry_date"`
	CVV         *string `json:"cvv_number"`
}

func paymentIDFromPath(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("payment_id"))
}

// CreatePayment stores a new payment method for the caller.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Payments.Create(r.Context(), mustClaims(r), application.PaymentInput{
		PaymentID:   req.PaymentID,
		Name:        req.Name,
		PaymentType: req.PaymentType,
		CardNumber:  req.CardNumber,
		ExpiryDate:  req.ExpiryDate,
		CVV:         req.CVV,
	})
	if err != nil {
		h.fail(w, r, "payment", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":         "Payment method added successfully",
		"payment_details": toPaymentResponse(p),
	})
}

// ListPayments returns the caller's payment methods.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(r)

	payments, err := h.svc.Payments.List(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, "payment", err)
		return
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":        claims.UserID,
		"username":       claims.Username,
		"payments":       resp,
		"total_payments": len(resp),
	})
}

// GetPayment returns one of the caller's payment methods.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Payments.Get(r.Context(), mustClaims(r).UserID, paymentIDFromPath(r))
	if err != nil {
		h.fail(w, r, "payment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"payment": toPaymentResponse(*p)})
}

// UpdatePayment applies a partial update to one of the caller's payment methods.
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Payments.Update(r.Context(), mustClaims(r).UserID, paymentIDFromPath(r), application.PaymentUpdate{
		Name:        req.Name,
		PaymentType: req.PaymentType,
		CardNumber:  req.CardNumber,
		ExpiryDate:  req.ExpiryDate,
		CVV:         req.CVV,
	})
	if err != nil {
		h.fail(w, r, "payment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Payment method updated successfully",
		"payment": toPaymentResponse(*p),
	})
}

// DeletePayment removes one of the caller's payment methods.
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := paymentIDFromPath(r)

	if err := h.svc.Payments.Delete(r.Context(), mustClaims(r).UserID, paymentID); err != nil {
		h.fail(w, r, "payment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Payment method deleted successfully",
		"payment_id": paymentID,
	})
}
