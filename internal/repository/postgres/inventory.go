package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"

	"github.com/lib/pq"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const itemColumns = `id, category_id, branch, serial_number, condition, status, last_checked, COALESCE(notes, ''), current_booking_id, COALESCE(current_customer, ''), current_end_date, created_on`

func scanItem(row interface{ Scan(...any) error }) (*domain.InventoryItem, error) {
	it := &domain.InventoryItem{}
	var bookingID sql.NullInt64
	var customer string
	var endDate sql.NullTime
	err := row.Scan(&it.ID, &it.CategoryID, &it.Branch, &it.SerialNumber, &it.Condition, &it.Status, &it.LastChecked, &it.Notes, &bookingID, &customer, &endDate, &it.CreatedOn)
	if err != nil {
		return nil, err
	}
	if bookingID.Valid {
		it.CurrentBooking = &domain.BookingRef{
			BookingID:    bookingID.Int64,
			CustomerName: customer,
			EndDate:      endDate.Time,
		}
	}
	return it, nil
}

func (r *inventoryRepository) Create(ctx context.Context, it *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (category_id, branch, serial_number, condition, status, last_checked, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, it.CategoryID, it.Branch, it.SerialNumber, it.Condition, it.Status, it.LastChecked, it.Notes, time.Now()).Scan(&it.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateSerial
	}
	return err
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *inventoryRepository) List(ctx context.Context, branch, categoryID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE ($1 = '' OR branch = $1) AND ($2 = '' OR category_id = $2) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, branch, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) Update(ctx context.Context, it *domain.InventoryItem) error {
	query := `UPDATE inventory_items SET condition=$1, last_checked=$2, notes=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, it.Condition, it.LastChecked, it.Notes, it.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) SetStatus(ctx context.Context, id int64, status domain.ItemStatus, ref *domain.BookingRef) error {
	var bookingID sql.NullInt64
	var customer sql.NullString
	var endDate sql.NullTime
	if ref != nil {
		bookingID = sql.NullInt64{Int64: ref.BookingID, Valid: true}
		customer = sql.NullString{String: ref.CustomerName, Valid: true}
		endDate = sql.NullTime{Time: ref.EndDate, Valid: true}
	}
	query := `UPDATE inventory_items SET status=$1, current_booking_id=$2, current_customer=$3, current_end_date=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, status, bookingID, customer, endDate, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM inventory_items WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
