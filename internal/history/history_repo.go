package history

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *HistoryEntry) error
	FindAll(ctx context.Context) ([]HistoryEntry, error)
	FindByEmployee(ctx context.Context, email string) ([]HistoryEntry, error)
	FindByID(ctx context.Context, id string) (*HistoryEntry, error)
	Update(ctx context.Context, e *HistoryEntry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, e *HistoryEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.db.WithContext(ctx).
		Order("completed_date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByEmployee(ctx context.Context, email string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.db.WithContext(ctx).
		Where("employee_email = ?", email).
		Order("completed_date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*HistoryEntry, error) {
	var e HistoryEntry
	err := r.db.WithContext(ctx).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *HistoryEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&HistoryEntry{}, "id = ?", id).Error
}
