package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewStore = (*ReviewRepo)(nil)

const reviewColumns = `review_id, owner_id, username, review, rating, created_at, updated_at`

// ReviewRepo is the SQLite implementation of the ReviewStore port interface.
type ReviewRepo struct {
	db *DB
}

// NewReviewRepo creates a new ReviewRepo backed by the given DB.
func NewReviewRepo(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review.
func (r *ReviewRepo) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	const query = `
		INSERT INTO reviews (owner_id, username, review, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	rv.CreatedAt = nowOr(rv.CreatedAt)
	rv.UpdatedAt = rv.CreatedAt

	result, err := r.db.Writer.ExecContext(ctx, query,
		rv.OwnerID, rv.Username, rv.Text, rv.Rating, formatTime(rv.CreatedAt), formatTime(rv.UpdatedAt),
	)
	if err != nil {
		return model.Review{}, fmt.Errorf("create review: %w", err)
	}

	rv.ID, err = result.LastInsertId()
	if err != nil {
		return model.Review{}, fmt.Errorf("review last insert id: %w", err)
	}

	return rv, nil
}

// ListAll returns every review, newest first.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC, review_id DESC`
	return r.list(ctx, query)
}

// ListByOwner returns the owner's reviews, newest first.
func (r *ReviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE owner_id = ? ORDER BY created_at DESC, review_id DESC`
	return r.list(ctx, query, ownerID)
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// Update applies patch to the owner's review and returns the updated row.
func (r *ReviewRepo) Update(ctx context.Context, ownerID string, id int64, patch model.ReviewPatch) (*model.Review, error) {
	var b updateBuilder
	setField(&b, "review", patch.Text)
	setField(&b, "rating", patch.Rating)

	query, args := b.build("reviews", "review_id = ? AND owner_id = ?", time.Now(), id, ownerID)
	if err := execOwned(ctx, r.db, query, args, fmt.Sprintf("update review %d", id)); err != nil {
		return nil, err
	}

	const selectQuery = `SELECT ` + reviewColumns + ` FROM reviews WHERE review_id = ? AND owner_id = ?`
	rv, err := scanReview(r.db.Reader.QueryRowContext(ctx, selectQuery, id, ownerID))
	if err != nil {
		return nil, fmt.Errorf("reload review %d: %w", id, err)
	}

	return rv, nil
}

// Delete removes the owner's review.
func (r *ReviewRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	const query = `DELETE FROM reviews WHERE review_id = ? AND owner_id = ?`
	return execOwned(ctx, r.db, query, []any{id, ownerID}, fmt.Sprintf("delete review %d", id))
}

func scanReview(s scanner) (*model.Review, error) {
	var rv model.Review
	var createdAt, updatedAt string

	err := s.Scan(&rv.ID, &rv.OwnerID, &rv.Username, &rv.Text, &rv.Rating, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if rv.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if rv.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &rv, nil
}
