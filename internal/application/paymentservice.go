package application

import (
	"context"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// PaymentInput is a payment method as submitted by the client. CardNumber
// and CVV are write-only: only the last four card digits are stored.
type PaymentInput struct {
	PaymentID   string
	Name        string
	PaymentType string
	CardNumber  string
	ExpiryDate  string
	CVV         string
}

// PaymentUpdate holds the fields of a partial payment update. Nil means unchanged.
type PaymentUpdate struct {
	Name        *string
	PaymentType *string
	CardNumber  *string
	ExpiryDate  *string
	CVV         *string
}

// PaymentService manages a user's stored payment methods.
type PaymentService struct {
	payments driven.PaymentStore
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments driven.PaymentStore) *PaymentService {
	return &PaymentService{payments: payments}
}

type paymentFields struct {
	PaymentID   string `json:"payment_id"`
	Name        string `json:"name"`
	PaymentType string `json:"payment_type"`
	CardNumber  string `json:"card_number"`
	ExpiryDate  string `json:"expiry_date"`
	CVV         string `json:"cvv_number"`
}

func paymentTypeValues() []any {
	values := make([]any, len(model.PaymentTypes))
	for i, t := range model.PaymentTypes {
		values[i] = string(t)
	}
	return values
}

// validate checks the full set of fields. Card checks are skipped for paypal.
func (f paymentFields) validate() error {
	card := f.PaymentType != string(model.PaymentTypePayPal)

	rules := []*validation.FieldRules{
		validation.Field(&f.PaymentID, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&f.PaymentType, validation.Required, validation.In(paymentTypeValues()...)),
	}
	if card {
		rules = append(rules,
			validation.Field(&f.CardNumber, validation.Required, is.Digit, validation.Length(13, 19)),
			validation.Field(&f.ExpiryDate, validation.Required, validation.Match(expiryPattern).Error("must be MM/YY or MM/YYYY")),
			validation.Field(&f.CVV, validation.Required, validation.Match(cvvPattern).Error("must be 3 or 4 digits")),
		)
	}

	return asValidationError(validation.ValidateStruct(&f, rules...))
}

func normalizeCard(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func lastFour(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// Create validates in and stores the payment method for the caller.
// driven.ErrAlreadyExists is returned when the payment ID is taken.
func (s *PaymentService) Create(ctx context.Context, claims model.Claims, in PaymentInput) (model.Payment, error) {
	f := paymentFields{
		PaymentID:   strings.TrimSpace(in.PaymentID),
		Name:        strings.TrimSpace(in.Name),
		PaymentType: strings.ToLower(strings.TrimSpace(in.PaymentType)),
		CardNumber:  normalizeCard(in.CardNumber),
		ExpiryDate:  strings.TrimSpace(in.ExpiryDate),
		CVV:         strings.TrimSpace(in.CVV),
	}
	if err := f.validate(); err != nil {
		return model.Payment{}, err
	}

	p := model.Payment{
		PaymentID:   f.PaymentID,
		OwnerID:     claims.UserID,
		Username:    claims.Username,
		Name:        f.Name,
		PaymentType: model.PaymentType(f.PaymentType),
	}
	if p.PaymentType != model.PaymentTypePayPal {
		p.CardLast4 = lastFour(f.CardNumber)
		p.ExpiryDate = f.ExpiryDate
	}

	return s.payments.Create(ctx, p)
}

// List returns the caller's payment methods.
func (s *PaymentService) List(ctx context.Context, ownerID string) ([]model.Payment, error) {
	return s.payments.List(ctx, ownerID)
}

// Get returns one of the caller's payment methods.
func (s *PaymentService) Get(ctx context.Context, ownerID, paymentID string) (*model.Payment, error) {
	return s.payments.Get(ctx, ownerID, paymentID)
}

// Update merges u into the stored payment method and re-validates the
// result. Switching from paypal to a card type requires full card details.
func (s *PaymentService) Update(ctx context.Context, ownerID, paymentID string, u PaymentUpdate) (*model.Payment, error) {
	if u == (PaymentUpdate{}) {
		return nil, invalid("no fields to update")
	}

	current, err := s.payments.Get(ctx, ownerID, paymentID)
	if err != nil {
		return nil, err
	}

	f := paymentFields{
		PaymentID:   current.PaymentID,
		Name:        current.Name,
		PaymentType: string(current.PaymentType),
		ExpiryDate:  current.ExpiryDate,
	}
	if u.Name != nil {
		f.Name = strings.TrimSpace(*u.Name)
	}
	if u.PaymentType != nil {
		f.PaymentType = strings.ToLower(strings.TrimSpace(*u.PaymentType))
	}
	if u.ExpiryDate != nil {
		f.ExpiryDate = strings.TrimSpace(*u.ExpiryDate)
	}

	cardChanged := u.CardNumber != nil
	switchingToCard := current.PaymentType == model.PaymentTypePayPal && f.PaymentType != string(model.PaymentTypePayPal)
	if cardChanged || switchingToCard {
		if u.CardNumber != nil {
			f.CardNumber = normalizeCard(*u.CardNumber)
		}
		if u.CVV != nil {
			f.CVV = strings.TrimSpace(*u.CVV)
		}
	} else {
		// The stored card was validated when it was saved and its full
		// number is not available, so only the new fields are checked.
		f.CardNumber = "0000000000000"
		f.CVV = "000"
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	patch := model.PaymentPatch{}
	if u.Name != nil {
		patch.Name = &f.Name
	}
	if u.PaymentType != nil {
		pt := model.PaymentType(f.PaymentType)
		patch.PaymentType = &pt
	}

	if f.PaymentType == string(model.PaymentTypePayPal) {
		empty := ""
		patch.CardLast4 = &empty
		patch.ExpiryDate = &empty
	} else {
		if cardChanged || switchingToCard {
			last4 := lastFour(f.CardNumber)
			patch.CardLast4 = &last4
		}
		if u.ExpiryDate != nil || switchingToCard {
			patch.ExpiryDate = &f.ExpiryDate
		}
	}

	return s.payments.Update(ctx, ownerID, paymentID, patch)
}

// Delete removes one of the caller's payment methods.
func (s *PaymentService) Delete(ctx context.Context, ownerID, paymentID string) error {
	return s.payments.Delete(ctx, ownerID, paymentID)
}
