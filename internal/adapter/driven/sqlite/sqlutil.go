package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// timeLayout is fixed width so that lexical order of stored timestamps
// matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nowOr returns t in UTC, or the current time when t is zero.
func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		timeLayout,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

// updateBuilder accumulates the SET clause of a partial update.
type updateBuilder struct {
	sets []string
	args []any
}

// setField adds "col = ?" when v is non-nil.
func setField[T any](b *updateBuilder, col string, v *T) {
	if v == nil {
		return
	}
	b.sets = append(b.sets, col+" = ?")
	b.args = append(b.args, *v)
}

// build returns the UPDATE statement for table, always bumping updated_at.
// where is appended verbatim and whereArgs follow the SET arguments.
func (b *updateBuilder) build(table, where string, updatedAt time.Time, whereArgs ...any) (string, []any) {
	sets := append(b.sets, "updated_at = ?")
	args := append(b.args, formatTime(updatedAt))
	args = append(args, whereArgs...)
	return "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE " + where, args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// execOwned runs an owner-scoped UPDATE or DELETE. Zero affected rows means
// the record is absent or owned by someone else; both report ErrNotFound.
func execOwned(ctx context.Context, db *DB, query string, args []any, op string) error {
	result, err := db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, driven.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, driven.ErrNotFound)
	}

	return nil
}
