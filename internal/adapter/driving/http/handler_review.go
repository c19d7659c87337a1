package httphandler

import (
	"net/http"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ReviewRequest is the JSON body for creating or updating a review.
type ReviewRequest struct {
	Review *string `json:"review"`
	Rating *int    `json:"rating"`
}

// CreateReview posts a review as the caller.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		text   string
		rating int
	)
	assign(&text, req.Review)
	assign(&rating, req.Rating)

	claims := mustClaims(r)

	rev, err := h.svc.Reviews.Create(r.Context(), claims, text, rating)
	if err != nil {
		h.fail(w, r, "review", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Review created successfully",
		"review_id": rev.ID,
		"user_id":   claims.UserID,
		"username":  claims.Username,
		"review":    rev.Text,
		"rating":    rev.Rating,
	})
}

// ListReviews returns every review, newest first. It is public.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.Reviews.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, "review", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":     toReviewResponses(reviews),
		"total_count": len(reviews),
	})
}

// ListMyReviews returns the caller's own reviews.
func (h *Handler) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(r)

	reviews, err := h.svc.Reviews.ListMine(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, "review", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":     toReviewResponses(reviews),
		"total_count": len(reviews),
		"user_info": map[string]string{
			"user_id":  claims.UserID,
			"username": claims.Username,
		},
	})
}

// UpdateReview edits one of the caller's reviews.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rev, err := h.svc.Reviews.Update(r.Context(), mustClaims(r).UserID, id, model.ReviewPatch{
		Text:   req.Review,
		Rating: req.Rating,
	})
	if err != nil {
		h.fail(w, r, "review", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Review updated successfully",
		"review":  toReviewResponse(*rev),
	})
}

// DeleteReview removes one of the caller's reviews.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.svc.Reviews.Delete(r.Context(), mustClaims(r).UserID, id); err != nil {
		h.fail(w, r, "review", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Review deleted successfully",
		"review_id": id,
	})
}
