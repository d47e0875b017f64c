package postgres

import (
	"database/sql"

	"equiprent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CategoryRepository
	repository.InventoryRepository
	repository.BookingRepository
	repository.MaintenanceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		CategoryRepository:    NewCategoryRepository(db),
		InventoryRepository:   NewInventoryRepository(db),
		BookingRepository:     NewBookingRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
	}
}
