package packages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines the contract for package persistence
type Repository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id uuid.UUID) (*Package, error)
	GetAll(ctx context.Context, query PackageListQuery) ([]Package, int64, error)
	Update(ctx context.Context, pkg *Package) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, pkg *Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Package, error) {
	var pkg Package
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) GetAll(ctx context.Context, query PackageListQuery) ([]Package, int64, error) {
	var pkgs []Package
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Package{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(destination) LIKE ?", searchTerm, searchTerm)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	} else {
		// Deleted packages are retained for existing quotes but hidden from listings.
		db = db.Where("status <> ?", StatusDeleted)
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
		Find(&pkgs).Error

	return pkgs, totalCount, err
}

func (r *repository) Update(ctx context.Context, pkg *Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Package{}).
		Where("id = ? AND status <> ?", id, StatusDeleted).
		Update("status", StatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("package not found or already deleted")
	}
	return nil
}
