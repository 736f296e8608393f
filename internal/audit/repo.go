package audit

import (
	"context"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the append-only audit trail. There is no update
// or delete path; entries only accumulate.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, entry *models.AuditLogEntry) error
	Query(ctx context.Context, filters QueryFilters, limit int) ([]models.AuditLogEntry, error)
	Recent(ctx context.Context, window int) ([]models.AuditLogEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an audit repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, entry *models.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Query(ctx context.Context, filters QueryFilters, limit int) ([]models.AuditLogEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLogEntry{})

	if filters.ActorID != nil {
		query = query.Where("actor_id = ?", *filters.ActorID)
	}
	if filters.Action != nil {
		query = query.Where("action = ?", *filters.Action)
	}
	if filters.TargetKind != nil {
		query = query.Where("target_kind = ?", *filters.TargetKind)
	}
	if filters.TargetID != nil {
		query = query.Where("target_id = ?", *filters.TargetID)
	}
	if filters.Since != nil {
		query = query.Where("created_at >= ?", *filters.Since)
	}

	var entries []models.AuditLogEntry
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Recent(ctx context.Context, window int) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(window).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
