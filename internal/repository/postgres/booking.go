package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, category_id, item_id, branch, requested_branch, customer_name, customer_email, customer_phone, start_date, end_date, status, cross_branch, delivery_fee_cents, total_cost_cents, deposit_cents, created_by, created_at, COALESCE(notes, '')`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.CategoryID, &b.ItemID, &b.Branch, &b.RequestedBranch, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.StartDate, &b.EndDate, &b.Status, &b.CrossBranch, &b.DeliveryFeeCents, &b.TotalCostCents, &b.DepositCents, &b.CreatedBy, &b.CreatedAt, &b.Notes)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (category_id, item_id, branch, requested_branch, customer_name, customer_email, customer_phone, start_date, end_date, status, cross_branch, delivery_fee_cents, total_cost_cents, deposit_cents, created_by, created_at, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.CategoryID, b.ItemID, b.Branch, b.RequestedBranch, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.StartDate, b.EndDate, b.Status, b.CrossBranch, b.DeliveryFeeCents, b.TotalCostCents, b.DepositCents, b.CreatedBy, b.CreatedAt, b.Notes).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bookings WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *bookingRepository) List(ctx context.Context, status, branch string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ($1 = '' OR status = $1) AND ($2 = '' OR branch = $2) ORDER BY id`
	return r.queryBookings(ctx, query, status, branch)
}

func (r *bookingRepository) FindConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.Booking, error) {
	// Closed-interval overlap: a.start <= b.end AND b.start <= a.end.
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE item_id = $1 AND status IN ('confirmed', 'active') AND start_date <= $3 AND end_date >= $2 ORDER BY id`
	return r.queryBookings(ctx, query, itemID, start, end)
}

func (r *bookingRepository) ListBlockingForItem(ctx context.Context, itemID int64) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE item_id = $1 AND status IN ('confirmed', 'active') ORDER BY start_date`
	return r.queryBookings(ctx, query, itemID)
}

func (r *bookingRepository) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = 'active' AND end_date < $1 ORDER BY end_date`
	return r.queryBookings(ctx, query, day)
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
