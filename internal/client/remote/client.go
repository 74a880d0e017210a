package remote

import (
	"context"

	"github.com/dberzins/stockroom/internal/client/models"
)

// Client is the transport-agnostic contract for talking to the Stockroom
// backend. Implementations take already-resolved filter values (never raw
// user input) and either return a typed payload or an error; a single call
// resolves or fails exactly once, with no retries or timeouts at this layer.
type Client interface {
	Close() error

	// Auth.
	Register(ctx context.Context, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error)

	// Reads.
	FetchOrganizationRecords(ctx context.Context, organizationID string) ([]models.Record, error)
	FetchGroupRecords(ctx context.Context, organizationName, groupID string) ([]models.Record, error)
	FetchGroups(ctx context.Context, organizationName string) ([]models.Group, error)

	// Writes.
	InsertRecords(ctx context.Context, records []models.Record) ([]models.Record, error)
	UpdateRecord(ctx context.Context, groupID, itemID string, record models.Record) (*models.Record, error)
	AdjustQuantity(ctx context.Context, groupID, itemID string, delta int) error

	// DeleteRecord removes one record, or every record in the group when
	// itemID is empty (the "delete record with no id" convention).
	DeleteRecord(ctx context.Context, groupID, itemID string) error
}
