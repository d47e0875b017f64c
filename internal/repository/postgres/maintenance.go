package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, item_id, start_date, end_date, reason, created_by, created_at`

func scanMaintenance(row interface{ Scan(...any) error }) (*domain.MaintenanceBlock, error) {
	mb := &domain.MaintenanceBlock{}
	err := row.Scan(&mb.ID, &mb.ItemID, &mb.StartDate, &mb.EndDate, &mb.Reason, &mb.CreatedBy, &mb.CreatedAt)
	if err != nil {
		return nil, err
	}
	return mb, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, mb *domain.MaintenanceBlock) error {
	query := `INSERT INTO maintenance_blocks (item_id, start_date, end_date, reason, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, mb.ItemID, mb.StartDate, mb.EndDate, mb.Reason, mb.CreatedBy, mb.CreatedAt).Scan(&mb.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceBlock, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_blocks WHERE id = $1`
	mb, err := scanMaintenance(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mb, nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM maintenance_blocks WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *maintenanceRepository) FindConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.MaintenanceBlock, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_blocks
	          WHERE item_id = $1 AND start_date <= $3 AND end_date >= $2 ORDER BY id`
	return r.queryBlocks(ctx, query, itemID, start, end)
}

func (r *maintenanceRepository) ListForItem(ctx context.Context, itemID int64) ([]domain.MaintenanceBlock, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_blocks WHERE item_id = $1 ORDER BY start_date`
	return r.queryBlocks(ctx, query, itemID)
}

func (r *maintenanceRepository) ListEndedBefore(ctx context.Context, day time.Time) ([]domain.MaintenanceBlock, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_blocks WHERE end_date < $1 ORDER BY end_date`
	return r.queryBlocks(ctx, query, day)
}

func (r *maintenanceRepository) queryBlocks(ctx context.Context, query string, args ...any) ([]domain.MaintenanceBlock, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.MaintenanceBlock
	for rows.Next() {
		mb, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *mb)
	}
	return blocks, rows.Err()
}
