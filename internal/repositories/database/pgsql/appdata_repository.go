package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/wkaram/expense_tracker_app/internal/core/ports/repositories"
)

// PgxAppDataRepository persists the whole application document as a single
// jsonb row keyed by a storage key. One row per deployment; every save
// rewrites the full document, mirroring the document-store semantics the
// application was built around.
type PgxAppDataRepository struct {
	pool *pgxpool.Pool
	key  string
}

// NewPgxAppDataRepository creates a document repository bound to the given
// storage key.
func NewPgxAppDataRepository(pool *pgxpool.Pool, key string) portsrepo.AppDataRepository {
	return &PgxAppDataRepository{pool: pool, key: key}
}

// Ensure implementation matches interface
var _ portsrepo.AppDataRepository = (*PgxAppDataRepository)(nil)

// LoadAppData reads the document for the configured key. The found flag is
// false when no row exists yet (first run).
func (r *PgxAppDataRepository) LoadAppData(ctx context.Context) (domain.AppData, bool, error) {
	query := `
		SELECT document
		FROM app_documents
		WHERE storage_key = $1;
	`
	var raw []byte
	err := r.pool.QueryRow(ctx, query, r.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AppData{}, false, nil
	}
	if err != nil {
		return domain.AppData{}, false, fmt.Errorf("failed to load app document %q: %w", r.key, err)
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt blob is treated like a missing one; the caller starts
		// from the default document and overwrites it on the next save.
		return domain.AppData{}, false, nil
	}
	return data, true, nil
}

// SaveAppData upserts the full document for the configured key.
func (r *PgxAppDataRepository) SaveAppData(ctx context.Context, data domain.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode app document %q: %w", r.key, err)
	}

	query := `
		INSERT INTO app_documents (storage_key, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.pool.Exec(ctx, query, r.key, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save app document %q: %w", r.key, err)
	}
	return nil
}
