package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/marketplace/internal/application"
	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// maxBodyBytes bounds request bodies read by decodeJSON.
const maxBodyBytes = 1 << 20

// Services bundles the application services the API dispatches to.
type Services struct {
	Auth     *application.AuthService
	Products *application.ProductService
	Variants *application.VariantService
	Payments *application.PaymentService
	Shipping *application.ShippingService
	Reviews  *application.ReviewService
	Profiles *application.ProfileService
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	svc      Services
	verifier driven.TokenVerifier
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(svc Services, verifier driven.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		verifier: verifier,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware. Every route except registration,
// login, the public review listing and health sits behind the auth gate.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	seller := func(next http.HandlerFunc) http.HandlerFunc { return h.requireRole(model.RoleSeller, next) }
	auth := h.requireAuth

	// Public.
	mux.HandleFunc("POST /register/{role}", h.Register)
	mux.HandleFunc("POST /login/{role}", h.Login)
	mux.HandleFunc("GET /reviews", h.ListReviews)
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /me", auth(h.Me))

	// Products and variants are seller-only.
	mux.HandleFunc("POST /add/products", seller(h.CreateProduct))
	mux.HandleFunc("POST /add/products/form", seller(h.CreateProductForm))
	mux.HandleFunc("GET /products", seller(h.ListProducts))
	mux.HandleFunc("GET /products/{id}", seller(h.GetProduct))
	mux.HandleFunc("PUT /update/product/{id}", seller(h.UpdateProduct))
	mux.HandleFunc("DELETE /delete/product/{id}", seller(h.DeleteProduct))

	mux.HandleFunc("POST /add/product/variants/bulk", seller(h.AddVariantsBulk))
	mux.HandleFunc("GET /product/{id}/variants", seller(h.ListProductVariants))
	mux.HandleFunc("GET /my/variants", seller(h.ListMyVariants))
	mux.HandleFunc("GET /variants/{id}", seller(h.GetVariant))
	mux.HandleFunc("PUT /variants/{id}", seller(h.UpdateVariant))
	mux.HandleFunc("DELETE /variants/{id}", seller(h.DeleteVariant))

	mux.HandleFunc("POST /add/payment", auth(h.CreatePayment))
	mux.HandleFunc("GET /get/payments", auth(h.ListPayments))
	mux.HandleFunc("GET /payments/{payment_id}", auth(h.GetPayment))
	mux.HandleFunc("PUT /payments/{payment_id}", auth(h.UpdatePayment))
	mux.HandleFunc("DELETE /delete/payment/{payment_id}", auth(h.DeletePayment))

	mux.HandleFunc("POST /shipping/add", auth(h.CreateShipping))
	mux.HandleFunc("GET /shipping/user", auth(h.ListShipping))
	mux.HandleFunc("GET /shipping/{id}", auth(h.GetShipping))
	mux.HandleFunc("PUT /shipping/{id}", auth(h.UpdateShipping))
	mux.HandleFunc("DELETE /shipping/{id}", auth(h.DeleteShipping))

	mux.HandleFunc("POST /reviews", auth(h.CreateReview))
	mux.HandleFunc("GET /reviews/user", auth(h.ListMyReviews))
	mux.HandleFunc("PUT /reviews/{id}", auth(h.UpdateReview))
	mux.HandleFunc("DELETE /reviews/{id}", auth(h.DeleteReview))

	mux.HandleFunc("POST /profile", auth(h.UpsertProfile))
	mux.HandleFunc("GET /profile", auth(h.GetProfile))
	mux.HandleFunc("DELETE /profile", auth(h.DeleteProfile))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// fail maps an application or store error to its HTTP response. resource
// names the entity for not-found and conflict messages.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, resource string, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, application.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, driven.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, driven.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already exists")
	case errors.Is(err, driven.ErrAlreadyExists):
		writeError(w, http.StatusConflict, resource+" already exists")
	default:
		h.logger.Error("request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"resource", resource,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes the request body into v. An empty body is an error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses the named path value as a positive integer ID.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
