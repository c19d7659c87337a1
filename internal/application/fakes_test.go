package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// --- Credential and security fakes ---

type fakeCredentialStore struct {
	mu    sync.Mutex
	creds map[model.Role]map[string]model.Credential // by username
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{creds: map[model.Role]map[string]model.Credential{}}
}

func (f *fakeCredentialStore) Create(_ context.Context, cred model.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.creds[cred.Role] == nil {
		f.creds[cred.Role] = map[string]model.Credential{}
	}
	if _, ok := f.creds[cred.Role][cred.Username]; ok {
		return fmt.Errorf("create credential: %w", driven.ErrUsernameTaken)
	}
	f.creds[cred.Role][cred.Username] = cred
	return nil
}

func (f *fakeCredentialStore) GetByUsername(_ context.Context, role model.Role, username string) (*model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.creds[role][username]
	if !ok {
		return nil, driven.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCredentialStore) GetByID(_ context.Context, role model.Role, id string) (*model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.creds[role] {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, driven.ErrNotFound
}

// plainHasher "hashes" by prefixing, so tests can run without bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type fakeIssuer struct {
	expiresAt time.Time
	err       error
}

func (f fakeIssuer) Issue(userID, username string, role model.Role) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return strings.Join([]string{userID, username, string(role)}, "|"), f.expiresAt, nil
}

// --- Resource store fakes ---

type fakeProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]model.Product
	getCalls int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]model.Product{}}
}

func (f *fakeProductStore) Create(_ context.Context, p model.Product) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if existing.OwnerID == p.OwnerID && strings.EqualFold(existing.Name, p.Name) {
			return model.Product{}, driven.ErrAlreadyExists
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductStore) List(_ context.Context, ownerID string, _ model.ProductFilter) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Product
	for _, p := range f.products {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Get(_ context.Context, ownerID string, id int64) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	p, ok := f.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, fmt.Errorf("get product %d: %w", id, driven.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeProductStore) Update(ctx context.Context, ownerID string, id int64, patch model.ProductPatch) (*model.Product, error) {
	p, err := f.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	f.mu.Lock()
	f.products[id] = *p
	f.mu.Unlock()
	return p, nil
}

func (f *fakeProductStore) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := f.Get(ctx, ownerID, id); err != nil {
		return err
	}
	f.mu.Lock()
	delete(f.products, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeProductStore) NamesByID(_ context.Context, ownerID string, ids []int64) (map[int64]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := map[int64]string{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok && p.OwnerID == ownerID {
			names[id] = p.Name
		}
	}
	return names, nil
}

type fakeVariantStore struct {
	added    []model.Variant
	bulkArgs []model.Variant
	updated  *model.VariantPatch
}

func (f *fakeVariantStore) AddBulk(_ context.Context, ownerID string, variants []model.Variant) ([]model.Variant, []model.SkippedVariant, error) {
	f.bulkArgs = variants
	var added []model.Variant
	var skipped []model.SkippedVariant
	for _, v := range variants {
		if v.Name == "Existing" {
			skipped = append(skipped, model.SkippedVariant{Name: v.Name, ProductID: v.ProductID, Reason: "Variant already exists", ExistingVariantID: 99})
			continue
		}
		v.ID = int64(len(f.added) + 1)
		v.OwnerID = ownerID
		f.added = append(f.added, v)
		added = append(added, v)
	}
	return added, skipped, nil
}

func (f *fakeVariantStore) ListByProduct(_ context.Context, ownerID string, productID int64) ([]model.Variant, error) {
	var out []model.Variant
	for _, v := range f.added {
		if v.OwnerID == ownerID && v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVariantStore) ListByOwner(_ context.Context, ownerID string) ([]model.Variant, error) {
	var out []model.Variant
	for _, v := range f.added {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVariantStore) Get(_ context.Context, ownerID string, id int64) (*model.Variant, error) {
	for _, v := range f.added {
		if v.ID == id && v.OwnerID == ownerID {
			return &v, nil
		}
	}
	return nil, driven.ErrNotFound
}

func (f *fakeVariantStore) Update(ctx context.Context, ownerID string, id int64, patch model.VariantPatch) (*model.Variant, error) {
	f.updated = &patch
	return f.Get(ctx, ownerID, id)
}

func (f *fakeVariantStore) Delete(ctx context.Context, ownerID string, id int64) error {
	_, err := f.Get(ctx, ownerID, id)
	return err
}

type fakePaymentStore struct {
	payments map[string]model.Payment
	patch    *model.PaymentPatch
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]model.Payment{}}
}

func (f *fakePaymentStore) Create(_ context.Context, p model.Payment) (model.Payment, error) {
	if _, ok := f.payments[p.PaymentID]; ok {
		return model.Payment{}, driven.ErrAlreadyExists
	}
	f.payments[p.PaymentID] = p
	return p, nil
}

func (f *fakePaymentStore) List(_ context.Context, ownerID string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.payments {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) Get(_ context.Context, ownerID, paymentID string) (*model.Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok || p.OwnerID != ownerID {
		return nil, driven.ErrNotFound
	}
	return &p, nil
}

func (f *fakePaymentStore) Update(ctx context.Context, ownerID, paymentID string, patch model.PaymentPatch) (*model.Payment, error) {
	f.patch = &patch
	p, err := f.Get(ctx, ownerID, paymentID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.PaymentType != nil {
		p.PaymentType = *patch.PaymentType
	}
	if patch.CardLast4 != nil {
		p.CardLast4 = *patch.CardLast4
	}
	if patch.ExpiryDate != nil {
		p.ExpiryDate = *patch.ExpiryDate
	}
	f.payments[paymentID] = *p
	return p, nil
}

func (f *fakePaymentStore) Delete(ctx context.Context, ownerID, paymentID string) error {
	if _, err := f.Get(ctx, ownerID, paymentID); err != nil {
		return err
	}
	delete(f.payments, paymentID)
	return nil
}

type fakeShippingStore struct {
	created []model.ShippingAddress
	patch   *model.ShippingPatch
}

func (f *fakeShippingStore) Create(_ context.Context, a model.ShippingAddress) (model.ShippingAddress, error) {
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeShippingStore) List(_ context.Context, ownerID string) ([]model.ShippingAddress, error) {
	var out []model.ShippingAddress
	for _, a := range f.created {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeShippingStore) Get(_ context.Context, ownerID string, id int64) (*model.ShippingAddress, error) {
	for _, a := range f.created {
		if a.ID == id && a.OwnerID == ownerID {
			return &a, nil
		}
	}
	return nil, driven.ErrNotFound
}

func (f *fakeShippingStore) Update(ctx context.Context, ownerID string, id int64, patch model.ShippingPatch) (*model.ShippingAddress, error) {
	f.patch = &patch
	return f.Get(ctx, ownerID, id)
}

func (f *fakeShippingStore) Delete(ctx context.Context, ownerID string, id int64) error {
	_, err := f.Get(ctx, ownerID, id)
	return err
}

type fakeReviewStore struct {
	created []model.Review
	patch   *model.ReviewPatch
}

func (f *fakeReviewStore) Create(_ context.Context, r model.Review) (model.Review, error) {
	r.ID = int64(len(f.created) + 1)
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeReviewStore) ListAll(_ context.Context) ([]model.Review, error) {
	return f.created, nil
}

func (f *fakeReviewStore) ListByOwner(_ context.Context, ownerID string) ([]model.Review, error) {
	var out []model.Review
	for _, r := range f.created {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) Update(_ context.Context, ownerID string, id int64, patch model.ReviewPatch) (*model.Review, error) {
	f.patch = &patch
	for _, r := range f.created {
		if r.ID == id && r.OwnerID == ownerID {
			return &r, nil
		}
	}
	return nil, driven.ErrNotFound
}

func (f *fakeReviewStore) Delete(_ context.Context, _ string, _ int64) error {
	return nil
}

type fakeProfileStore struct {
	profile *model.Profile
	patch   *model.ProfilePatch
}

func (f *fakeProfileStore) Upsert(_ context.Context, ownerID, username string, patch model.ProfilePatch) (*model.Profile, bool, error) {
	f.patch = &patch
	created := f.profile == nil
	if created {
		f.profile = &model.Profile{ID: 1, OwnerID: ownerID, Username: username}
	}
	if patch.Gender != nil {
		f.profile.Gender = *patch.Gender
	}
	if patch.EmailAddress != nil {
		f.profile.EmailAddress = *patch.EmailAddress
	}
	if patch.Birthday != nil {
		f.profile.Birthday = *patch.Birthday
	}
	p := *f.profile
	return &p, created, nil
}

func (f *fakeProfileStore) Get(_ context.Context, ownerID string) (*model.Profile, error) {
	if f.profile == nil || f.profile.OwnerID != ownerID {
		return nil, driven.ErrNotFound
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeProfileStore) Delete(_ context.Context, ownerID string) error {
	if f.profile == nil || f.profile.OwnerID != ownerID {
		return driven.ErrNotFound
	}
	f.profile = nil
	return nil
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }
