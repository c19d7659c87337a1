package application

import (
	"context"
	"html"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// MaxReviewLength is the longest review text, in characters, accepted after
// HTML is stripped.
const MaxReviewLength = 2000

// ReviewService manages user reviews. Review text is stored as plain text:
// any HTML in the submitted text is removed before validation.
type ReviewService struct {
	reviews driven.ReviewStore
	policy  *bluemonday.Policy
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews driven.ReviewStore) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		policy:  bluemonday.StrictPolicy(),
	}
}

type reviewInput struct {
	Text   *string `json:"review"`
	Rating *int    `json:"rating"`
}

// validate checks the non-nil fields.
func (in reviewInput) validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Text, validation.NilOrNotEmpty, validation.RuneLength(1, MaxReviewLength)),
		validation.Field(&in.Rating, validation.By(atLeastOne), validation.Max(5)),
	))
}

// clean strips markup from text. Sanitize entity-encodes what it keeps, so
// the result is unescaped back to plain text before it is stored.
func (s *ReviewService) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// Create stores a review by the caller.
func (s *ReviewService) Create(ctx context.Context, claims model.Claims, text string, rating int) (model.Review, error) {
	text = s.clean(text)

	in := reviewInput{Text: &text, Rating: &rating}
	if err := in.validate(); err != nil {
		return model.Review{}, err
	}

	return s.reviews.Create(ctx, model.Review{
		OwnerID:  claims.UserID,
		Username: claims.Username,
		Text:     text,
		Rating:   rating,
	})
}

// ListAll returns every user's reviews, newest first. It needs no caller.
func (s *ReviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	return s.reviews.ListAll(ctx)
}

// ListMine returns the caller's reviews.
func (s *ReviewService) ListMine(ctx context.Context, ownerID string) ([]model.Review, error) {
	return s.reviews.ListByOwner(ctx, ownerID)
}

// Update applies the present fields of patch after validating them.
func (s *ReviewService) Update(ctx context.Context, ownerID string, id int64, patch model.ReviewPatch) (*model.Review, error) {
	if patch == (model.ReviewPatch{}) {
		return nil, invalid("no fields to update")
	}

	if patch.Text != nil {
		text := s.clean(*patch.Text)
		patch.Text = &text
	}

	in := reviewInput{Text: patch.Text, Rating: patch.Rating}
	if err := in.validate(); err != nil {
		return nil, err
	}

	return s.reviews.Update(ctx, ownerID, id, patch)
}

// Delete removes one of the caller's reviews.
func (s *ReviewService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.reviews.Delete(ctx, ownerID, id)
}
