package repositories

import (
	"context"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// AppDataRepository persists the whole application document as a single
// blob under a well-known key. Implementations do not interpret the
// document; normalization and default-filling happen in the store service.
type AppDataRepository interface {
	// LoadAppData returns the persisted document. found is false when
	// nothing has been persisted yet or the stored blob cannot be parsed;
	// callers fall back to the default document in that case.
	LoadAppData(ctx context.Context) (data domain.AppData, found bool, err error)
	// SaveAppData replaces the persisted document wholesale.
	SaveAppData(ctx context.Context, data domain.AppData) error
}
