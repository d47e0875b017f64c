package postgres

import (
	"context"
	"database/sql"
	"errors"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.EquipmentCategory) error {
	query := `INSERT INTO equipment_categories (id, name, color_tag, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, delivery_base_fee_cents, cross_branch_surcharge_cents)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.ColorTag, c.DailyRateCents, c.WeeklyRateCents, c.MonthlyRateCents, c.DeliveryBaseFeeCents, c.CrossBranchSurchargeCents)
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.EquipmentCategory, error) {
	c := &domain.EquipmentCategory{}
	query := `SELECT id, name, COALESCE(color_tag, ''), daily_rate_cents, weekly_rate_cents, monthly_rate_cents, delivery_base_fee_cents, cross_branch_surcharge_cents
	          FROM equipment_categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.ColorTag, &c.DailyRateCents, &c.WeeklyRateCents, &c.MonthlyRateCents, &c.DeliveryBaseFeeCents, &c.CrossBranchSurchargeCents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.EquipmentCategory, error) {
	query := `SELECT id, name, COALESCE(color_tag, ''), daily_rate_cents, weekly_rate_cents, monthly_rate_cents, delivery_base_fee_cents, cross_branch_surcharge_cents
	          FROM equipment_categories ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.EquipmentCategory
	for rows.Next() {
		var c domain.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.ColorTag, &c.DailyRateCents, &c.WeeklyRateCents, &c.MonthlyRateCents, &c.DeliveryBaseFeeCents, &c.CrossBranchSurchargeCents); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.EquipmentCategory) error {
	query := `UPDATE equipment_categories SET name=$1, color_tag=$2, daily_rate_cents=$3, weekly_rate_cents=$4, monthly_rate_cents=$5, delivery_base_fee_cents=$6, cross_branch_surcharge_cents=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.ColorTag, c.DailyRateCents, c.WeeklyRateCents, c.MonthlyRateCents, c.DeliveryBaseFeeCents, c.CrossBranchSurchargeCents, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
