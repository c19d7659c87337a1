package application

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

const birthdayLayout = "2006-01-02"

// ProfileService manages the single profile each user may have.
type ProfileService struct {
	profiles driven.ProfileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles driven.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

type profileInput struct {
	Gender       *string `json:"gender"`
	EmailAddress *string `json:"email_address"`
	Birthday     *string `json:"birthday"`
}

func (in profileInput) validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Gender, validation.RuneLength(0, 32)),
		validation.Field(&in.EmailAddress, validation.NilOrNotEmpty, is.Email),
		validation.Field(&in.Birthday, validation.Date(birthdayLayout).Error("must be a date in YYYY-MM-DD format")),
	))
}

// Upsert creates the caller's profile or updates the fields present in
// patch. created reports whether a new profile was made.
func (s *ProfileService) Upsert(ctx context.Context, claims model.Claims, patch model.ProfilePatch) (*model.Profile, bool, error) {
	trimPtr(patch.Gender)
	trimPtr(patch.EmailAddress)
	trimPtr(patch.Birthday)

	if patch == (model.ProfilePatch{}) {
		return nil, false, invalid("at least one of gender, email_address or birthday is required")
	}

	in := profileInput{Gender: patch.Gender, EmailAddress: patch.EmailAddress, Birthday: patch.Birthday}
	if err := in.validate(); err != nil {
		return nil, false, err
	}

	return s.profiles.Upsert(ctx, claims.UserID, claims.Username, patch)
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, ownerID string) (*model.Profile, error) {
	return s.profiles.Get(ctx, ownerID)
}

// Delete removes the caller's profile.
func (s *ProfileService) Delete(ctx context.Context, ownerID string) error {
	return s.profiles.Delete(ctx, ownerID)
}
