package items

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dberzins/stockroom/internal/client/models"
	"github.com/dberzins/stockroom/internal/dbx"
)

// SQLiteRepository implements Repository over the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const recordColumns = `item_id, name, quantity, location, alert_threshold, database_id, database_name, organization_id`

func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	var result []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ItemID, &r.Name, &r.Quantity, &r.Location,
			&r.AlertThreshold, &r.GroupID, &r.GroupName, &r.OrganizationID); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll lists every record, ordered by group then name so the demo dataset
// loads in a stable display order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Record, error) {
	query := `select ` + recordColumns + ` from items order by database_id, name collate nocase`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetByGroup lists the records of one group.
func (r *SQLiteRepository) GetByGroup(ctx context.Context, groupID string) ([]models.Record, error) {
	query := `select ` + recordColumns + ` from items where database_id=? order by name collate nocase`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to select group items: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ReplaceAll swaps the whole local data set in one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []models.Record) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from items`); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		query := `insert into items (` + recordColumns + `) values (?, ?, ?, ?, ?, ?, ?, ?)`
		for _, rec := range records {
			if _, err := tx.ExecContext(ctx, query,
				rec.ItemID, rec.Name, rec.Quantity, rec.Location,
				rec.AlertThreshold, rec.GroupID, rec.GroupName, rec.OrganizationID); err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}
		return nil
	})
}
