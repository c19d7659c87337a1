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
var _ driven.ProfileStore = (*ProfileRepo)(nil)

const profileColumns = `profile_id, owner_id, username, gender, email_address, birthday, created_at, updated_at`

// ProfileRepo is the SQLite implementation of the ProfileStore port interface.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo creates a new ProfileRepo backed by the given DB.
func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Upsert creates the owner's profile or merges patch into the existing one.
// Fields absent from patch keep their stored values. The existence check and
// the write share one transaction on the single writer connection, so of two
// concurrent first upserts exactly one reports created.
func (r *ProfileRepo) Upsert(ctx context.Context, ownerID, username string, patch model.ProfilePatch) (*model.Profile, bool, error) {
	const query = `
		INSERT INTO profiles (owner_id, username, gender, email_address, birthday, created_at, updated_at)
		VALUES (?, ?, COALESCE(?, ''), COALESCE(?, ''), COALESCE(?, ''), ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			gender = COALESCE(?, gender),
			email_address = COALESCE(?, email_address),
			birthday = COALESCE(?, birthday),
			updated_at = excluded.updated_at
	`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin profile upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE owner_id = ?`, ownerID).Scan(&exists)
	created := errors.Is(err, sql.ErrNoRows)
	if err != nil && !created {
		return nil, false, fmt.Errorf("check profile for %s: %w", ownerID, err)
	}

	now := formatTime(time.Now())
	gender, email, birthday := nullable(patch.Gender), nullable(patch.EmailAddress), nullable(patch.Birthday)

	_, err = tx.ExecContext(ctx, query,
		ownerID, username, gender, email, birthday, now, now,
		gender, email, birthday,
	)
	if err != nil {
		return nil, false, fmt.Errorf("upsert profile for %s: %w", ownerID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit profile upsert: %w", err)
	}

	p, err := r.Get(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}

	return p, created, nil
}

// Get returns the owner's profile, or ErrNotFound.
func (r *ProfileRepo) Get(ctx context.Context, ownerID string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_id = ?`

	var p model.Profile
	var createdAt, updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.Username, &p.Gender, &p.EmailAddress, &p.Birthday, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile for %s: %w", ownerID, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile for %s: %w", ownerID, err)
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &p, nil
}

// Delete removes the owner's profile.
func (r *ProfileRepo) Delete(ctx context.Context, ownerID string) error {
	const query = `DELETE FROM profiles WHERE owner_id = ?`
	return execOwned(ctx, r.db, query, []any{ownerID}, "delete profile for "+ownerID)
}

// nullable maps an absent field to SQL NULL so COALESCE keeps the stored value.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
