package memory

import (
	"context"
	"sync"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/wkaram/expense_tracker_app/internal/core/ports/repositories"
)

// AppDataRepository is an in-memory document repository. It backs tests and
// the no-database development mode.
type AppDataRepository struct {
	mu    sync.Mutex
	data  domain.AppData
	found bool
}

// NewAppDataRepository creates an empty in-memory repository.
func NewAppDataRepository() *AppDataRepository {
	return &AppDataRepository{}
}

// Ensure implementation matches interface
var _ portsrepo.AppDataRepository = (*AppDataRepository)(nil)

func (r *AppDataRepository) LoadAppData(ctx context.Context) (domain.AppData, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.found {
		return domain.AppData{}, false, nil
	}
	return r.data.Clone(), true, nil
}

func (r *AppDataRepository) SaveAppData(ctx context.Context, data domain.AppData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data.Clone()
	r.found = true
	return nil
}
