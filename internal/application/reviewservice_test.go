package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

func TestReviewService_CreateStripsHTML(t *testing.T) {
	store := &fakeReviewStore{}

	r, err := NewReviewService(store).Create(context.Background(), aliceClaims, `<b>Great</b> product<script>alert(1)</script>`, 5)
	require.NoError(t, err)
	assert.Equal(t, "Great product", r.Text)
	assert.Equal(t, "alice", r.Username)
	assert.Equal(t, "u-1", r.OwnerID)
}

func TestReviewService_KeepsPunctuationVerbatim(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store)
	ctx := context.Background()
	text := `Don't buy: "size" runs small & fades`

	r, err := svc.Create(ctx, aliceClaims, text, 2)
	require.NoError(t, err)
	assert.Equal(t, text, r.Text)

	_, err = svc.Update(ctx, "u-1", r.ID, model.ReviewPatch{Text: ptr("<b>Tom & Jerry's</b> \"pick\"")})
	require.NoError(t, err)
	require.NotNil(t, store.patch.Text)
	assert.Equal(t, `Tom & Jerry's "pick"`, *store.patch.Text)
}

func TestReviewService_LengthIsMeasuredOnPlainText(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})
	ctx := context.Background()

	r, err := svc.Create(ctx, aliceClaims, strings.Repeat("&", 500), 3)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("&", 500), r.Text)

	_, err = svc.Create(ctx, aliceClaims, strings.Repeat("é", MaxReviewLength), 3)
	require.NoError(t, err)

	_, err = svc.Create(ctx, aliceClaims, strings.Repeat("é", MaxReviewLength+1), 3)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestReviewService_RatingBounds(t *testing.T) {
	tests := []struct {
		rating  int
		wantErr bool
	}{
		{rating: 0, wantErr: true},
		{rating: 1},
		{rating: 5},
		{rating: 6, wantErr: true},
		{rating: -1, wantErr: true},
	}

	for _, tt := range tests {
		_, err := NewReviewService(&fakeReviewStore{}).Create(context.Background(), aliceClaims, "ok", tt.rating)
		if tt.wantErr {
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve, "rating %d", tt.rating)
			continue
		}
		assert.NoError(t, err, "rating %d", tt.rating)
	}
}

func TestReviewService_TextRules(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})
	ctx := context.Background()
	var ve *ValidationError

	_, err := svc.Create(ctx, aliceClaims, "   ", 3)
	assert.ErrorAs(t, err, &ve, "blank")

	_, err = svc.Create(ctx, aliceClaims, "<p></p>", 3)
	assert.ErrorAs(t, err, &ve, "only markup")

	_, err = svc.Create(ctx, aliceClaims, strings.Repeat("a", MaxReviewLength+1), 3)
	assert.ErrorAs(t, err, &ve, "too long")

	_, err = svc.Create(ctx, aliceClaims, strings.Repeat("a", MaxReviewLength), 3)
	assert.NoError(t, err)
}

func TestReviewService_PublicAndMine(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, aliceClaims, "one", 4)
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.Claims{UserID: "u-2", Username: "bob"}, "two", 3)
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListMine(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "one", mine[0].Text)
}

func TestReviewService_Update(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store)
	ctx := context.Background()

	r, err := svc.Create(ctx, aliceClaims, "fine", 3)
	require.NoError(t, err)

	var ve *ValidationError
	_, err = svc.Update(ctx, "u-1", r.ID, model.ReviewPatch{})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, "u-1", r.ID, model.ReviewPatch{Rating: ptr(9)})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, "u-1", r.ID, model.ReviewPatch{Text: ptr("<i>better</i>")})
	require.NoError(t, err)
	require.NotNil(t, store.patch.Text)
	assert.Equal(t, "better", *store.patch.Text)
	assert.Nil(t, store.patch.Rating)
}
