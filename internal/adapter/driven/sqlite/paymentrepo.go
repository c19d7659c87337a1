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
var _ driven.PaymentStore = (*PaymentRepo)(nil)

const paymentColumns = `id, payment_id, owner_id, username, name, payment_type, card_last4, expiry_date, created_at, updated_at`

// PaymentRepo is the SQLite implementation of the PaymentStore port interface.
type PaymentRepo struct {
	db *DB
}

// NewPaymentRepo creates a new PaymentRepo backed by the given DB.
func NewPaymentRepo(db *DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Create inserts a payment method. payment_id is unique across all owners.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	const query = `
		INSERT INTO payments (payment_id, owner_id, username, name, payment_type, card_last4, expiry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	p.CreatedAt = nowOr(p.CreatedAt)
	p.UpdatedAt = p.CreatedAt

	result, err := r.db.Writer.ExecContext(ctx, query,
		p.PaymentID, p.OwnerID, p.Username, p.Name, string(p.PaymentType), p.CardLast4, p.ExpiryDate,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Payment{}, fmt.Errorf("create payment %q: %w", p.PaymentID, driven.ErrAlreadyExists)
		}
		return model.Payment{}, fmt.Errorf("create payment %q: %w", p.PaymentID, err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return model.Payment{}, fmt.Errorf("payment last insert id: %w", err)
	}

	return p, nil
}

// List returns the owner's payment methods, newest first.
func (r *PaymentRepo) List(ctx context.Context, ownerID string) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE owner_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

// Get returns the owner's payment with the given payment ID, or ErrNotFound.
func (r *PaymentRepo) Get(ctx context.Context, ownerID, paymentID string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = ? AND owner_id = ?`

	p, err := scanPayment(r.db.Reader.QueryRowContext(ctx, query, paymentID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment %q: %w", paymentID, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment %q: %w", paymentID, err)
	}

	return p, nil
}

// Update applies patch to the owner's payment and returns the updated row.
func (r *PaymentRepo) Update(ctx context.Context, ownerID, paymentID string, patch model.PaymentPatch) (*model.Payment, error) {
	var b updateBuilder
	setField(&b, "name", patch.Name)
	if patch.PaymentType != nil {
		pt := string(*patch.PaymentType)
		setField(&b, "payment_type", &pt)
	}
	setField(&b, "card_last4", patch.CardLast4)
	setField(&b, "expiry_date", patch.ExpiryDate)

	query, args := b.build("payments", "payment_id = ? AND owner_id = ?", time.Now(), paymentID, ownerID)
	if err := execOwned(ctx, r.db, query, args, fmt.Sprintf("update payment %q", paymentID)); err != nil {
		return nil, err
	}

	return r.Get(ctx, ownerID, paymentID)
}

// Delete removes the owner's payment.
func (r *PaymentRepo) Delete(ctx context.Context, ownerID, paymentID string) error {
	const query = `DELETE FROM payments WHERE payment_id = ? AND owner_id = ?`
	return execOwned(ctx, r.db, query, []any{paymentID, ownerID}, fmt.Sprintf("delete payment %q", paymentID))
}

func scanPayment(s scanner) (*model.Payment, error) {
	var p model.Payment
	var paymentType, createdAt, updatedAt string

	err := s.Scan(&p.ID, &p.PaymentID, &p.OwnerID, &p.Username, &p.Name, &paymentType,
		&p.CardLast4, &p.ExpiryDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.PaymentType = model.PaymentType(paymentType)
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &p, nil
}
