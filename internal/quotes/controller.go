package quotes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"superpack/internal/catalog"
	"superpack/internal/packages"
	"superpack/internal/shared/utils/response"
)

type Controller interface {
	CreateQuote(c *gin.Context)
	GetQuote(c *gin.Context)
	ListQuotes(c *gin.Context)
	UpdateQuoteParams(c *gin.Context)
	DeleteQuote(c *gin.Context)
	LinkPackage(c *gin.Context)
	UnlinkPackage(c *gin.Context)
	Recalculate(c *gin.Context)
	SetCustomPrice(c *gin.Context)
	ResetToCalculated(c *gin.Context)
	RetrySync(c *gin.Context)
	AddEvent(c *gin.Context)
	RemoveEvent(c *gin.Context)
	EventsTotal(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.CreateQuote(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Quote created successfully", quote, nil)
}

func (ctrl *controller) GetQuote(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote retrieved successfully", quote, nil)
}

func (ctrl *controller) ListQuotes(c *gin.Context) {
	var query QuoteListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.ListQuotes(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quotes retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateQuoteParams(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	var req UpdateQuoteParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.UpdateQuoteParams(c.Request.Context(), id, userID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote updated successfully", quote, nil)
}

func (ctrl *controller) DeleteQuote(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteQuote(c.Request.Context(), id); err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote deleted successfully", nil, nil)
}

func (ctrl *controller) LinkPackage(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	var req LinkPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.LinkPackage(c.Request.Context(), id, userID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package linked successfully", quote, nil)
}

func (ctrl *controller) UnlinkPackage(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.UnlinkPackage(c.Request.Context(), id, userID)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package unlinked successfully", quote, nil)
}

func (ctrl *controller) Recalculate(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.Recalculate(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote recalculated", quote, nil)
}

func (ctrl *controller) SetCustomPrice(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	var req CustomPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.SetCustomPrice(c.Request.Context(), id, userID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Custom price set", quote, nil)
}

func (ctrl *controller) ResetToCalculated(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.ResetToCalculated(c.Request.Context(), id, userID)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote reset to calculated price", quote, nil)
}

func (ctrl *controller) RetrySync(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	quote, err := ctrl.service.RetrySync(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote sync retried", quote, nil)
}

func (ctrl *controller) AddEvent(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	var req AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	quote, err := ctrl.service.AddEvent(c.Request.Context(), id, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event added to quote", quote, nil)
}

func (ctrl *controller) RemoveEvent(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	quote, err := ctrl.service.RemoveEvent(c.Request.Context(), id, eventID)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event removed from quote", quote, nil)
}

func (ctrl *controller) EventsTotal(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	result, err := ctrl.service.EventsTotal(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForQuoteError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events total calculated", result, nil)
}

func quoteIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("quoteId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid quote ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userUUID, true
}

func statusForQuoteError(err error) int {
	switch {
	case errors.Is(err, ErrQuoteNotFound),
		errors.Is(err, packages.ErrPackageNotFound),
		errors.Is(err, catalog.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrQuoteNotLinked),
		errors.Is(err, ErrCustomPriceSet),
		errors.Is(err, ErrNotCustomPrice),
		errors.Is(err, ErrNotInErrorState),
		errors.Is(err, ErrPackageNotLinkable),
		errors.Is(err, ErrEventNotActive):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyEvents),
		errors.Is(err, ErrEventAlreadyAdded),
		errors.Is(err, ErrEventNotOnQuote),
		errors.Is(err, ErrInvalidEventID),
		errors.Is(err, ErrInvalidEventPrice),
		errors.Is(err, ErrNegativePrice):
		return http.StatusBadRequest
	case errors.Is(err, packages.ErrNoMatchingTier),
		errors.Is(err, packages.ErrNoMatchingPeriod),
		errors.Is(err, packages.ErrNoPriceForDuration):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
