package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.VariantStore = (*VariantRepo)(nil)

const variantColumns = `variant_id, product_id, owner_id, name, price, description, stock, is_active, created_at, updated_at`

// VariantRepo is the SQLite implementation of the VariantStore port interface.
type VariantRepo struct {
	db *DB
}

// NewVariantRepo creates a new VariantRepo backed by the given DB.
func NewVariantRepo(db *DB) *VariantRepo {
	return &VariantRepo{db: db}
}

// AddBulk inserts variants inside a single transaction on the writer
// connection. A variant whose name already exists for the same product and
// owner is reported in the skipped list.
func (r *VariantRepo) AddBulk(ctx context.Context, ownerID string, variants []model.Variant) ([]model.Variant, []model.SkippedVariant, error) {
	const findQuery = `
		SELECT variant_id FROM variants
		WHERE owner_id = ? AND product_id = ? AND lower(name) = lower(?)
	`
	const insertQuery = `
		INSERT INTO variants (product_id, owner_id, name, price, description, stock, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin bulk variant tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	added := make([]model.Variant, 0, len(variants))
	skipped := make([]model.SkippedVariant, 0)

	for _, v := range variants {
		var existingID int64
		err := tx.QueryRowContext(ctx, findQuery, ownerID, v.ProductID, v.Name).Scan(&existingID)
		if err == nil {
			skipped = append(skipped, model.SkippedVariant{
				Name:              v.Name,
				ProductID:         v.ProductID,
				Reason:            "Variant already exists",
				ExistingVariantID: existingID,
			})
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("check variant %q: %w", v.Name, err)
		}

		v.OwnerID = ownerID
		v.CreatedAt = now
		v.UpdatedAt = now

		result, err := tx.ExecContext(ctx, insertQuery,
			v.ProductID, ownerID, v.Name, v.Price, v.Description, v.Stock, boolToInt(v.IsActive),
			formatTime(v.CreatedAt), formatTime(v.UpdatedAt),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("insert variant %q: %w", v.Name, err)
		}

		v.ID, err = result.LastInsertId()
		if err != nil {
			return nil, nil, fmt.Errorf("variant last insert id: %w", err)
		}

		added = append(added, v)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit bulk variant tx: %w", err)
	}

	return added, skipped, nil
}

// ListByProduct returns the owner's variants of one product, newest first.
func (r *VariantRepo) ListByProduct(ctx context.Context, ownerID string, productID int64) ([]model.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants
		WHERE owner_id = ? AND product_id = ?
		ORDER BY created_at DESC, variant_id DESC`
	return r.list(ctx, query, ownerID, productID)
}

// ListByOwner returns all of the owner's variants ordered by product, newest first within a product.
func (r *VariantRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants
		WHERE owner_id = ?
		ORDER BY product_id, created_at DESC, variant_id DESC`
	return r.list(ctx, query, ownerID)
}

func (r *VariantRepo) list(ctx context.Context, query string, args ...any) ([]model.Variant, error) {
	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []model.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}

	return variants, nil
}

// Get returns the owner's variant with the given ID, or ErrNotFound.
func (r *VariantRepo) Get(ctx context.Context, ownerID string, id int64) (*model.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE variant_id = ? AND owner_id = ?`

	v, err := scanVariant(r.db.Reader.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get variant %d: %w", id, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get variant %d: %w", id, err)
	}

	return v, nil
}

// Update applies patch to the owner's variant and returns the updated row.
func (r *VariantRepo) Update(ctx context.Context, ownerID string, id int64, patch model.VariantPatch) (*model.Variant, error) {
	var b updateBuilder
	setField(&b, "name", patch.Name)
	setField(&b, "price", patch.Price)
	setField(&b, "description", patch.Description)
	setField(&b, "stock", patch.Stock)
	if patch.IsActive != nil {
		active := boolToInt(*patch.IsActive)
		setField(&b, "is_active", &active)
	}

	query, args := b.build("variants", "variant_id = ? AND owner_id = ?", time.Now(), id, ownerID)
	if err := execOwned(ctx, r.db, query, args, fmt.Sprintf("update variant %d", id)); err != nil {
		return nil, err
	}

	return r.Get(ctx, ownerID, id)
}

// Delete removes the owner's variant.
func (r *VariantRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	const query = `DELETE FROM variants WHERE variant_id = ? AND owner_id = ?`
	return execOwned(ctx, r.db, query, []any{id, ownerID}, fmt.Sprintf("delete variant %d", id))
}

func scanVariant(s scanner) (*model.Variant, error) {
	var v model.Variant
	var isActive int
	var createdAt, updatedAt string

	err := s.Scan(&v.ID, &v.ProductID, &v.OwnerID, &v.Name, &v.Price, &v.Description, &v.Stock,
		&isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	v.IsActive = isActive != 0
	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if v.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &v, nil
}
