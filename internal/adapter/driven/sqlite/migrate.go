package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Schema names a set of migrations under migrations/<schema>. Each resource
// family lives in its own database file with its own schema.
type Schema string

const (
	SchemaCredentials Schema = "credentials"
	SchemaProducts    Schema = "products"
	SchemaVariants    Schema = "variants"
	SchemaPayments    Schema = "payments"
	SchemaShipping    Schema = "shipping"
	SchemaReviews     Schema = "reviews"
	SchemaProfiles    Schema = "profiles"
)

// RunMigrations applies all pending migrations of schema embedded in the binary.
// It is safe to call on every startup; already-applied migrations are skipped.
func RunMigrations(db *sql.DB, schema Schema) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+string(schema))
	if err != nil {
		return fmt.Errorf("create migration source %q: %w", schema, err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations %q: %w", schema, err)
	}

	return nil
}
