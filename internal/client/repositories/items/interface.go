package items

import (
	"context"

	"github.com/dberzins/stockroom/internal/client/models"
)

// Repository describes the local, on-device copy of inventory records. It
// backs the demo dataset and offline browsing; the server remains the source
// of truth when a session is active.
type Repository interface {
	// GetAll returns every locally stored record.
	GetAll(ctx context.Context) ([]models.Record, error)

	// GetByGroup returns the records of one group.
	GetByGroup(ctx context.Context, groupID string) ([]models.Record, error)

	// ReplaceAll atomically swaps the local data set for the given records.
	ReplaceAll(ctx context.Context, records []models.Record) error
}
