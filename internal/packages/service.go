package packages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"superpack/internal/shared/constants"
	"superpack/pkg/cache"
)

var (
	ErrPackageNotFound  = errors.New("package not found")
	ErrPackageDeleted   = errors.New("package is deleted and cannot be modified")
	ErrPackageNotActive = errors.New("package is not active")
	ErrMatrixIncomplete = errors.New("pricing matrix is incomplete")
)

// Service interface defines the contract for package business logic
type Service interface {
	CreatePackage(ctx context.Context, userID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*Package, error)
	ListPackages(ctx context.Context, query PackageListQuery) (*PaginatedPackages, error)
	UpdatePackage(ctx context.Context, id, userID uuid.UUID, req UpdatePackageRequest) (*PackageResponse, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error

	// Matrix authoring
	CheckCompleteness(ctx context.Context, id uuid.UUID) (*CompletenessResult, error)
	SetCell(ctx context.Context, id, userID uuid.UUID, req SetCellRequest) (*PackageResponse, error)
	AddPeriod(ctx context.Context, id, userID uuid.UUID, req AddPeriodRequest) (*PackageResponse, error)
	RemovePeriod(ctx context.Context, id, userID uuid.UUID, periodIndex int) (*PackageResponse, error)

	// Price resolution. CalculatePrice is the collaborator contract the quote
	// sync engine consumes.
	ResolvePrice(ctx context.Context, id uuid.UUID, people, nights int, arrival time.Time) (*ResolvePriceResponse, error)
	CalculatePrice(ctx context.Context, packageID uuid.UUID, people, nights int, arrival time.Time) (*Resolution, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new package service instance. The cache is optional.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) CreatePackage(ctx context.Context, userID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error) {
	if !req.Currency.IsValid() {
		return nil, fmt.Errorf("unsupported currency %q", req.Currency)
	}
	if errs := ValidateTiers(req.GroupSizeTiers); len(errs) > 0 {
		return nil, fmt.Errorf("invalid tiers: %s", strings.Join(errs, "; "))
	}
	if errs := req.PricingMatrix.ValidatePeriods(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid pricing periods: %s", strings.Join(errs, "; "))
	}

	pkg := &Package{
		Name:                  req.Name,
		Destination:           req.Destination,
		Version:               1,
		Currency:              req.Currency,
		GroupSizeTiers:        req.GroupSizeTiers,
		DurationOptions:       req.DurationOptions,
		PricingMatrix:         req.PricingMatrix,
		Inclusions:            req.Inclusions,
		AccommodationExamples: req.AccommodationExamples,
		Status:                StatusInactive,
		CreatedBy:             userID,
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	resp := pkg.ToResponse()
	return &resp, nil
}

func (s *service) GetPackage(ctx context.Context, id uuid.UUID) (*Package, error) {
	if s.cache != nil {
		var pkg Package
		err := s.cache.GetOrSet(ctx, constants.BuildPackageDetailKey(id.String()), constants.TTL_PACKAGE_DETAIL,
			func() (interface{}, error) {
				return s.getPackage(ctx, id)
			}, &pkg)
		if err == nil {
			return &pkg, nil
		}
		// Cache trouble falls through to the repository.
	}
	return s.getPackage(ctx, id)
}

func (s *service) getPackage(ctx context.Context, id uuid.UUID) (*Package, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return pkg, nil
}

func (s *service) ListPackages(ctx context.Context, query PackageListQuery) (*PaginatedPackages, error) {
	pkgs, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]PackageResponse, 0, len(pkgs))
	for i := range pkgs {
		responses = append(responses, pkgs[i].ToResponse())
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))
	return &PaginatedPackages{
		Packages:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) UpdatePackage(ctx context.Context, id, userID uuid.UUID, req UpdatePackageRequest) (*PackageResponse, error) {
	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.IsDeleted() {
		return nil, ErrPackageDeleted
	}

	pricingChanged := false

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Destination != nil {
		pkg.Destination = *req.Destination
	}
	if req.Currency != nil {
		if !req.Currency.IsValid() {
			return nil, fmt.Errorf("unsupported currency %q", *req.Currency)
		}
		if *req.Currency != pkg.Currency {
			pkg.Currency = *req.Currency
			pricingChanged = true
		}
	}
	if req.GroupSizeTiers != nil {
		if errs := ValidateTiers(*req.GroupSizeTiers); len(errs) > 0 {
			return nil, fmt.Errorf("invalid tiers: %s", strings.Join(errs, "; "))
		}
		pkg.GroupSizeTiers = *req.GroupSizeTiers
		pricingChanged = true
	}
	if req.DurationOptions != nil {
		pkg.DurationOptions = *req.DurationOptions
		pricingChanged = true
	}
	if req.PricingMatrix != nil {
		if errs := req.PricingMatrix.ValidatePeriods(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid pricing periods: %s", strings.Join(errs, "; "))
		}
		pkg.PricingMatrix = *req.PricingMatrix
		pricingChanged = true
	}
	if req.Inclusions != nil {
		pkg.Inclusions = *req.Inclusions
	}
	if req.AccommodationExamples != nil {
		pkg.AccommodationExamples = *req.AccommodationExamples
	}
	if req.Status != nil {
		status := Status(*req.Status)
		if status == StatusActive && !pkg.IsActive() {
			// Activation is gated on a fully authored matrix; drafts save freely.
			result := pkg.PricingMatrix.IsComplete(pkg.GroupSizeTiers, pkg.DurationOptions)
			if !result.IsValid {
				return nil, fmt.Errorf("%w: %s", ErrMatrixIncomplete, strings.Join(result.Errors, "; "))
			}
		}
		pkg.Status = status
	}

	if pricingChanged {
		pkg.Version++
	}
	pkg.UpdatedBy = &userID

	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	s.invalidate(ctx, id)

	resp := pkg.ToResponse()
	return &resp, nil
}

func (s *service) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) CheckCompleteness(ctx context.Context, id uuid.UUID) (*CompletenessResult, error) {
	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	result := pkg.PricingMatrix.IsComplete(pkg.GroupSizeTiers, pkg.DurationOptions)
	return &result, nil
}

func (s *service) SetCell(ctx context.Context, id, userID uuid.UUID, req SetCellRequest) (*PackageResponse, error) {
	return s.mutateMatrix(ctx, id, userID, func(pkg *Package) error {
		price, err := ParsePriceInput(req.Input)
		if err != nil {
			return err
		}
		if req.TierIndex >= len(pkg.GroupSizeTiers) {
			return ErrTierIndexOutOfRange
		}
		return pkg.PricingMatrix.SetCell(req.PeriodIndex, req.TierIndex, req.Nights, price)
	})
}

func (s *service) AddPeriod(ctx context.Context, id, userID uuid.UUID, req AddPeriodRequest) (*PackageResponse, error) {
	return s.mutateMatrix(ctx, id, userID, func(pkg *Package) error {
		period := PricingPeriod{Period: req.Period, PeriodType: req.PeriodType}
		if req.StartDate != nil {
			start, err := time.Parse("2006-01-02", *req.StartDate)
			if err != nil {
				return fmt.Errorf("%w: bad start date: %v", ErrInvalidPeriod, err)
			}
			period.StartDate = &start
		}
		if req.EndDate != nil {
			end, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				return fmt.Errorf("%w: bad end date: %v", ErrInvalidPeriod, err)
			}
			period.EndDate = &end
		}
		if err := pkg.PricingMatrix.AddPeriod(period); err != nil {
			return err
		}
		if errs := pkg.PricingMatrix.ValidatePeriods(); len(errs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidPeriod, strings.Join(errs, "; "))
		}
		return nil
	})
}

func (s *service) RemovePeriod(ctx context.Context, id, userID uuid.UUID, periodIndex int) (*PackageResponse, error) {
	return s.mutateMatrix(ctx, id, userID, func(pkg *Package) error {
		return pkg.PricingMatrix.RemovePeriod(periodIndex)
	})
}

// mutateMatrix applies a pricing edit, bumps the version and persists.
func (s *service) mutateMatrix(ctx context.Context, id, userID uuid.UUID, mutate func(*Package) error) (*PackageResponse, error) {
	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.IsDeleted() {
		return nil, ErrPackageDeleted
	}

	if err := mutate(pkg); err != nil {
		return nil, err
	}

	pkg.Version++
	pkg.UpdatedBy = &userID
	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	s.invalidate(ctx, id)

	resp := pkg.ToResponse()
	return &resp, nil
}

func (s *service) ResolvePrice(ctx context.Context, id uuid.UUID, people, nights int, arrival time.Time) (*ResolvePriceResponse, error) {
	resolution, err := s.CalculatePrice(ctx, id, people, nights, arrival)
	if err != nil {
		return nil, err
	}

	resp := &ResolvePriceResponse{Resolution: *resolution, People: people}
	if !resolution.Price.IsOnRequest() {
		total := resolution.Price.Amount() * float64(people)
		resp.Total = &total
	}
	return resp, nil
}

// CalculatePrice resolves a per-person price against the stored package.
// Deleted packages remain resolvable so existing quotes keep working.
func (s *service) CalculatePrice(ctx context.Context, packageID uuid.UUID, people, nights int, arrival time.Time) (*Resolution, error) {
	pkg, err := s.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return Resolve(pkg, people, nights, arrival)
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Best effort; a stale miss only costs one extra read.
	_ = s.cache.Delete(ctx, constants.BuildPackageDetailKey(id.String()))
}
