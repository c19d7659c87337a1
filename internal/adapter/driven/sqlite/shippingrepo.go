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
var _ driven.ShippingStore = (*ShippingRepo)(nil)

const shippingColumns = `shipping_id, owner_id, username, region, number, street_address, land_mark,
	province, city, zip_code, created_at, updated_at`

// ShippingRepo is the SQLite implementation of the ShippingStore port interface.
type ShippingRepo struct {
	db *DB
}

// NewShippingRepo creates a new ShippingRepo backed by the given DB.
func NewShippingRepo(db *DB) *ShippingRepo {
	return &ShippingRepo{db: db}
}

// Create inserts a shipping address.
func (r *ShippingRepo) Create(ctx context.Context, a model.ShippingAddress) (model.ShippingAddress, error) {
	const query = `
		INSERT INTO shipping_addresses (
			owner_id, username, region, number, street_address, land_mark,
			province, city, zip_code, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	a.CreatedAt = nowOr(a.CreatedAt)
	a.UpdatedAt = a.CreatedAt

	result, err := r.db.Writer.ExecContext(ctx, query,
		a.OwnerID, a.Username, a.Region, a.Number, a.StreetAddress, a.LandMark,
		a.Province, a.City, a.ZipCode, formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		return model.ShippingAddress{}, fmt.Errorf("create shipping address: %w", err)
	}

	a.ID, err = result.LastInsertId()
	if err != nil {
		return model.ShippingAddress{}, fmt.Errorf("shipping last insert id: %w", err)
	}

	return a, nil
}

// List returns the owner's addresses, newest first.
func (r *ShippingRepo) List(ctx context.Context, ownerID string) ([]model.ShippingAddress, error) {
	query := `SELECT ` + shippingColumns + ` FROM shipping_addresses
		WHERE owner_id = ? ORDER BY created_at DESC, shipping_id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list shipping addresses: %w", err)
	}
	defer rows.Close()

	var addrs []model.ShippingAddress
	for rows.Next() {
		a, err := scanShipping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipping address: %w", err)
		}
		addrs = append(addrs, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipping addresses: %w", err)
	}

	return addrs, nil
}

// Get returns the owner's address with the given ID, or ErrNotFound.
func (r *ShippingRepo) Get(ctx context.Context, ownerID string, id int64) (*model.ShippingAddress, error) {
	query := `SELECT ` + shippingColumns + ` FROM shipping_addresses WHERE shipping_id = ? AND owner_id = ?`

	a, err := scanShipping(r.db.Reader.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get shipping address %d: %w", id, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get shipping address %d: %w", id, err)
	}

	return a, nil
}

// Update applies patch to the owner's address and returns the updated row.
func (r *ShippingRepo) Update(ctx context.Context, ownerID string, id int64, patch model.ShippingPatch) (*model.ShippingAddress, error) {
	var b updateBuilder
	setField(&b, "region", patch.Region)
	setField(&b, "number", patch.Number)
	setField(&b, "street_address", patch.StreetAddress)
	setField(&b, "land_mark", patch.LandMark)
	setField(&b, "province", patch.Province)
	setField(&b, "city", patch.City)
	setField(&b, "zip_code", patch.ZipCode)

	query, args := b.build("shipping_addresses", "shipping_id = ? AND owner_id = ?", time.Now(), id, ownerID)
	if err := execOwned(ctx, r.db, query, args, fmt.Sprintf("update shipping address %d", id)); err != nil {
		return nil, err
	}

	return r.Get(ctx, ownerID, id)
}

// Delete removes the owner's address.
func (r *ShippingRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	const query = `DELETE FROM shipping_addresses WHERE shipping_id = ? AND owner_id = ?`
	return execOwned(ctx, r.db, query, []any{id, ownerID}, fmt.Sprintf("delete shipping address %d", id))
}

func scanShipping(s scanner) (*model.ShippingAddress, error) {
	var a model.ShippingAddress
	var createdAt, updatedAt string

	err := s.Scan(&a.ID, &a.OwnerID, &a.Username, &a.Region, &a.Number, &a.StreetAddress, &a.LandMark,
		&a.Province, &a.City, &a.ZipCode, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &a, nil
}
