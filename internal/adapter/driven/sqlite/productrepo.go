package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProductStore = (*ProductRepo)(nil)

const productColumns = `product_id, owner_id, name, price, stock, incoming, category_type, category_name,
	sub_category, brand, description, specifications, delivery_charges, delivery_day, discounts,
	created_at, updated_at`

// ProductRepo is the SQLite implementation of the ProductStore port interface.
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new ProductRepo backed by the given DB.
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create inserts a product. A second product with the same name (ignoring
// case) for the same owner is rejected with ErrAlreadyExists.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	const query = `
		INSERT INTO products (
			owner_id, name, price, stock, incoming, category_type, category_name,
			sub_category, brand, description, specifications, delivery_charges,
			delivery_day, discounts, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	p.CreatedAt = nowOr(p.CreatedAt)
	p.UpdatedAt = p.CreatedAt

	result, err := r.db.Writer.ExecContext(ctx, query,
		p.OwnerID, p.Name, p.Price, p.Stock, p.Incoming, p.CategoryType, p.CategoryName,
		p.SubCategory, p.Brand, p.Description, p.Specifications, p.DeliveryCharges,
		p.DeliveryDay, p.Discounts, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, fmt.Errorf("create product %q: %w", p.Name, driven.ErrAlreadyExists)
		}
		return model.Product{}, fmt.Errorf("create product %q: %w", p.Name, err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return model.Product{}, fmt.Errorf("product last insert id: %w", err)
	}

	return p, nil
}

// List returns the owner's products matching filter, newest first.
func (r *ProductRepo) List(ctx context.Context, ownerID string, filter model.ProductFilter) ([]model.Product, error) {
	conds := []string{"owner_id = ?"}
	args := []any{ownerID}

	if filter.CategoryType != "" {
		conds = append(conds, "category_type = ?")
		args = append(args, filter.CategoryType)
	}
	if filter.CategoryName != "" {
		conds = append(conds, "category_name = ?")
		args = append(args, filter.CategoryName)
	}
	if filter.Brand != "" {
		conds = append(conds, "brand = ?")
		args = append(args, filter.Brand)
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.InStockOnly {
		conds = append(conds, "stock > 0")
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY created_at DESC, product_id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// Get returns the owner's product with the given ID, or ErrNotFound.
func (r *ProductRepo) Get(ctx context.Context, ownerID string, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ? AND owner_id = ?`

	p, err := scanProduct(r.db.Reader.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product %d: %w", id, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	return p, nil
}

// Update applies patch to the owner's product and returns the updated row.
func (r *ProductRepo) Update(ctx context.Context, ownerID string, id int64, patch model.ProductPatch) (*model.Product, error) {
	var b updateBuilder
	setField(&b, "name", patch.Name)
	setField(&b, "price", patch.Price)
	setField(&b, "stock", patch.Stock)
	setField(&b, "incoming", patch.Incoming)
	setField(&b, "category_type", patch.CategoryType)
	setField(&b, "category_name", patch.CategoryName)
	setField(&b, "sub_category", patch.SubCategory)
	setField(&b, "brand", patch.Brand)
	setField(&b, "description", patch.Description)
	setField(&b, "specifications", patch.Specifications)
	setField(&b, "delivery_charges", patch.DeliveryCharges)
	setField(&b, "delivery_day", patch.DeliveryDay)
	setField(&b, "discounts", patch.Discounts)

	query, args := b.build("products", "product_id = ? AND owner_id = ?", time.Now(), id, ownerID)
	if err := execOwned(ctx, r.db, query, args, fmt.Sprintf("update product %d", id)); err != nil {
		return nil, err
	}

	return r.Get(ctx, ownerID, id)
}

// Delete removes the owner's product. Variants of the product are left untouched.
func (r *ProductRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	const query = `DELETE FROM products WHERE product_id = ? AND owner_id = ?`
	return execOwned(ctx, r.db, query, []any{id, ownerID}, fmt.Sprintf("delete product %d", id))
}

// NamesByID returns product names keyed by ID for the owner's products among ids.
func (r *ProductRepo) NamesByID(ctx context.Context, ownerID string, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := `SELECT product_id, name FROM products WHERE owner_id = ? AND product_id IN (` + placeholders + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("product names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan product name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product names: %w", err)
	}

	return names, nil
}

func scanProduct(s scanner) (*model.Product, error) {
	var p model.Product
	var createdAt, updatedAt string

	err := s.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Price, &p.Stock, &p.Incoming, &p.CategoryType, &p.CategoryName,
		&p.SubCategory, &p.Brand, &p.Description, &p.Specifications, &p.DeliveryCharges, &p.DeliveryDay,
		&p.Discounts, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &p, nil
}
