package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"superpack/internal/catalog"
	"superpack/internal/notifications"
	"superpack/internal/packages"
	"superpack/pkg/logger"
)

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrPackageNotLinkable = errors.New("package cannot be linked to new quotes")
	ErrEventNotActive     = errors.New("event is not active")
)

var validate = validator.New()

// Service interface defines the contract for quote business logic
type Service interface {
	CreateQuote(ctx context.Context, userID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*QuoteResponse, error)
	ListQuotes(ctx context.Context, query QuoteListQuery) (*PaginatedQuotes, error)
	UpdateQuoteParams(ctx context.Context, id, userID uuid.UUID, req UpdateQuoteParamsRequest) (*QuoteResponse, error)
	DeleteQuote(ctx context.Context, id uuid.UUID) error

	// Package linkage and price sync
	LinkPackage(ctx context.Context, id, userID uuid.UUID, req LinkPackageRequest) (*QuoteResponse, error)
	UnlinkPackage(ctx context.Context, id, userID uuid.UUID) (*QuoteResponse, error)
	Recalculate(ctx context.Context, id uuid.UUID) (*QuoteResponse, error)
	SetCustomPrice(ctx context.Context, id, userID uuid.UUID, req CustomPriceRequest) (*QuoteResponse, error)
	ResetToCalculated(ctx context.Context, id, userID uuid.UUID) (*QuoteResponse, error)
	RetrySync(ctx context.Context, id uuid.UUID) (*QuoteResponse, error)

	// Add-on events
	AddEvent(ctx context.Context, id uuid.UUID, req AddEventRequest) (*QuoteResponse, error)
	RemoveEvent(ctx context.Context, id, eventID uuid.UUID) (*QuoteResponse, error)
	EventsTotal(ctx context.Context, id uuid.UUID) (*EventsTotalResult, error)
}

type service struct {
	repo       Repository
	engine     *Engine
	packageSvc packages.Service
	catalogSvc catalog.Service
	producer   notifications.Producer
}

// NewService creates a new quote service instance. The producer is optional;
// without it price lifecycle events are simply not published.
func NewService(repo Repository, engine *Engine, packageSvc packages.Service, catalogSvc catalog.Service, producer notifications.Producer) Service {
	return &service{
		repo:       repo,
		engine:     engine,
		packageSvc: packageSvc,
		catalogSvc: catalogSvc,
		producer:   producer,
	}
}

func (s *service) CreateQuote(ctx context.Context, userID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid quote request: %w", err)
	}

	currency := packages.Currency(strings.ToUpper(req.Currency))
	if !currency.IsValid() {
		return nil, fmt.Errorf("unsupported currency %q", req.Currency)
	}

	arrival, err := time.Parse("2006-01-02", req.ArrivalDate)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival date, expected YYYY-MM-DD: %w", err)
	}

	quote := &Quote{
		Reference:      newReference(),
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		NumberOfPeople: req.NumberOfPeople,
		Nights:         req.Nights,
		ArrivalDate:    arrival,
		Currency:       currency,
		SyncStatus:     SyncStatusCustom,
		CustomPrice:    req.CustomPrice,
		SelectedEvents: SelectedEvents{},
		CreatedBy:      userID,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) GetQuote(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) getQuote(ctx context.Context, id uuid.UUID) (*Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

func (s *service) ListQuotes(ctx context.Context, query QuoteListQuery) (*PaginatedQuotes, error) {
	quotes, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		responses = append(responses, quotes[i].ToResponse())
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))
	return &PaginatedQuotes{
		Quotes:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateQuoteParams edits customer details and pricing parameters. A pricing
// parameter change only invalidates the stored price; the quote stays
// out-of-sync until the agent asks for a recalculation.
func (s *service) UpdateQuoteParams(ctx context.Context, id, userID uuid.UUID, req UpdateQuoteParamsRequest) (*QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	paramsChanged := false

	if req.CustomerName != nil {
		quote.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		quote.CustomerEmail = *req.CustomerEmail
	}
	if req.NumberOfPeople != nil && *req.NumberOfPeople != quote.NumberOfPeople {
		quote.NumberOfPeople = *req.NumberOfPeople
		paramsChanged = true
	}
	if req.Nights != nil && *req.Nights != quote.Nights {
		quote.Nights = *req.Nights
		paramsChanged = true
	}
	if req.ArrivalDate != nil {
		arrival, err := time.Parse("2006-01-02", *req.ArrivalDate)
		if err != nil {
			return nil, fmt.Errorf("invalid arrival date, expected YYYY-MM-DD: %w", err)
		}
		if !arrival.Equal(quote.ArrivalDate) {
			quote.ArrivalDate = arrival
			paramsChanged = true
		}
	}
	if req.Currency != nil {
		currency := packages.Currency(strings.ToUpper(*req.Currency))
		if !currency.IsValid() {
			return nil, fmt.Errorf("unsupported currency %q", *req.Currency)
		}
		if currency != quote.Currency {
			quote.Currency = currency
			paramsChanged = true
		}
	}

	if paramsChanged {
		s.engine.NoteParamsChanged(quote)
	}
	quote.UpdatedBy = &userID

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	if paramsChanged {
		s.publishSyncOutcome(ctx, quote)
	}

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getQuote(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) LinkPackage(ctx context.Context, id, userID uuid.UUID, req LinkPackageRequest) (*QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packageSvc.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.CanBeLinked() {
		return nil, ErrPackageNotLinkable
	}

	// Seed a minimal selection; the recalculation fills in the snapshot.
	quote.Selection = &LinkedPackageSelection{
		PackageID:      pkg.ID,
		PackageVersion: pkg.Version,
		Currency:       pkg.Currency,
	}
	quote.CustomPrice = nil
	quote.SyncStatus = SyncStatusOutOfSync
	quote.UpdatedBy = &userID

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to link package: %w", err)
	}

	quote, err = s.engine.Recalculate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishSyncOutcome(ctx, quote)

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) UnlinkPackage(ctx context.Context, id, userID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	packageID := uuid.Nil
	if quote.Selection != nil {
		packageID = quote.Selection.PackageID
	}

	quote, err = s.engine.Unlink(ctx, id)
	if err != nil {
		return nil, err
	}

	event := notifications.NewQuotePriceEvent(notifications.QuoteUnlinked, id)
	if packageID != uuid.Nil {
		event.WithPackage(packageID)
	}
	s.publish(ctx, event)

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) Recalculate(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.engine.Recalculate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	s.publishSyncOutcome(ctx, quote)

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) SetCustomPrice(ctx context.Context, id, userID uuid.UUID, req CustomPriceRequest) (*QuoteResponse, error) {
	quote, err := s.engine.MarkCustomPrice(ctx, id, req.Price)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	quote.UpdatedBy = &userID
	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, err
	}

	event := notifications.NewQuotePriceEvent(notifications.QuotePriceOverridden, id).
		WithPrice(req.Price, string(quote.Currency))
	s.publish(ctx, event)

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) ResetToCalculated(ctx context.Context, id, userID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.engine.ResetToCalculated(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	event := notifications.NewQuotePriceEvent(notifications.QuotePriceReset, id)
	if quote.Selection != nil {
		event.WithPackage(quote.Selection.PackageID)
	}
	s.publish(ctx, event)

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) RetrySync(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.engine.Retry(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	s.publishSyncOutcome(ctx, quote)

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) AddEvent(ctx context.Context, id uuid.UUID, req AddEventRequest) (*QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	catalogEvent, err := s.catalogSvc.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !catalogEvent.IsActive {
		return nil, ErrEventNotActive
	}

	updated, err := quote.SelectedEvents.Add(SelectedEvent{
		EventID:       catalogEvent.ID,
		EventName:     catalogEvent.Name,
		EventPrice:    catalogEvent.Price,
		EventCurrency: catalogEvent.Currency,
	})
	if err != nil {
		return nil, err
	}
	quote.SelectedEvents = updated

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to add event to quote: %w", err)
	}

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) RemoveEvent(ctx context.Context, id, eventID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := quote.SelectedEvents.Remove(eventID)
	if err != nil {
		return nil, err
	}
	quote.SelectedEvents = updated

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to remove event from quote: %w", err)
	}

	resp := quote.ToResponse()
	return &resp, nil
}

func (s *service) EventsTotal(ctx context.Context, id uuid.UUID) (*EventsTotalResult, error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	result := quote.SelectedEvents.Total(quote.Currency)
	return &result, nil
}

// publishSyncOutcome maps the quote's post-recalculation state to an event.
func (s *service) publishSyncOutcome(ctx context.Context, quote *Quote) {
	var event *notifications.QuotePriceEvent
	switch quote.SyncStatus {
	case SyncStatusSynced:
		event = notifications.NewQuotePriceEvent(notifications.QuotePriceResolved, quote.ID)
		if quote.Selection != nil {
			event.WithPackage(quote.Selection.PackageID)
			if !quote.Selection.PriceWasOnRequest {
				event.WithPrice(quote.Selection.CalculatedPrice, string(quote.Selection.Currency))
			}
		}
	case SyncStatusError:
		event = notifications.NewQuotePriceEvent(notifications.QuoteSyncFailed, quote.ID)
		if quote.LastSyncError != nil {
			event.Error = quote.LastSyncError
		}
	case SyncStatusOutOfSync:
		event = notifications.NewQuotePriceEvent(notifications.QuoteOutOfSync, quote.ID)
		if quote.Selection != nil {
			event.WithPackage(quote.Selection.PackageID)
		}
	default:
		return
	}
	s.publish(ctx, event)
}

func (s *service) publish(ctx context.Context, event *notifications.QuotePriceEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishQuotePriceEvent(ctx, event); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "Failed to publish quote price event", err, map[string]interface{}{
			"quote_id": event.QuoteID.String(),
			"type":     string(event.Type),
		})
	}
}

// newReference produces a short human-readable quote reference.
func newReference() string {
	return "QT-" + strings.ToUpper(uuid.New().String()[:8])
}
