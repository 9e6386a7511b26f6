package quotes

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines the contract for quote persistence
type Repository interface {
	Create(ctx context.Context, quote *Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	GetAll(ctx context.Context, query QuoteListQuery) ([]Quote, int64, error)
	GetLinkedToPackage(ctx context.Context, packageID uuid.UUID) ([]Quote, error)
	Update(ctx context.Context, quote *Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, quote *Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	var quote Quote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) GetAll(ctx context.Context, query QuoteListQuery) ([]Quote, int64, error) {
	var quotes []Quote
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Quote{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(customer_name) LIKE ? OR LOWER(reference) LIKE ?", searchTerm, searchTerm)
	}

	if query.SyncStatus != "" {
		db = db.Where("sync_status = ?", query.SyncStatus)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&quotes).Error

	return quotes, totalCount, err
}

// GetLinkedToPackage returns quotes whose selection references the package.
// Used by the drift detector to flag quotes after a pricing change.
func (r *repository) GetLinkedToPackage(ctx context.Context, packageID uuid.UUID) ([]Quote, error) {
	var quotes []Quote
	err := r.db.WithContext(ctx).
		Where("selection IS NOT NULL AND selection->>'packageId' = ?", packageID.String()).
		Find(&quotes).Error
	return quotes, err
}

func (r *repository) Update(ctx context.Context, quote *Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Quote{}, "id = ?", id).Error
}
