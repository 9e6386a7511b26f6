package packages

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"superpack/internal/shared/utils/response"
)

type Controller interface {
	CreatePackage(c *gin.Context)
	GetPackage(c *gin.Context)
	ListPackages(c *gin.Context)
	UpdatePackage(c *gin.Context)
	DeletePackage(c *gin.Context)
	CheckCompleteness(c *gin.Context)
	SetCell(c *gin.Context)
	AddPeriod(c *gin.Context)
	RemovePeriod(c *gin.Context)
	ResolvePrice(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.CreatePackage(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Package created successfully", pkg, nil)
}

func (ctrl *controller) GetPackage(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.GetPackage(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	resp := pkg.ToResponse()
	response.RespondJSON(c, "success", http.StatusOK, "Package retrieved successfully", resp, nil)
}

func (ctrl *controller) ListPackages(c *gin.Context) {
	var query PackageListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.ListPackages(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Packages retrieved successfully", result, nil)
}

func (ctrl *controller) UpdatePackage(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.UpdatePackage(c.Request.Context(), id, userID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package updated successfully", pkg, nil)
}

func (ctrl *controller) DeletePackage(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeletePackage(c.Request.Context(), id); err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package deleted successfully", nil, nil)
}

func (ctrl *controller) CheckCompleteness(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	result, err := ctrl.service.CheckCompleteness(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Completeness check finished", result, nil)
}

func (ctrl *controller) SetCell(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	var req SetCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.SetCell(c.Request.Context(), id, userID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price cell updated successfully", pkg, nil)
}

func (ctrl *controller) AddPeriod(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	var req AddPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.AddPeriod(c.Request.Context(), id, userID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pricing period added successfully", pkg, nil)
}

func (ctrl *controller) RemovePeriod(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	periodIndex, err := strconv.Atoi(c.Param("periodIndex"))
	if err != nil || periodIndex < 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid period index", nil, nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.RemovePeriod(c.Request.Context(), id, userID, periodIndex)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pricing period removed successfully", pkg, nil)
}

func (ctrl *controller) ResolvePrice(c *gin.Context) {
	id, ok := packageIDParam(c)
	if !ok {
		return
	}

	var query ResolvePriceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	arrival, err := time.Parse("2006-01-02", query.ArrivalDate)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid arrival date, expected YYYY-MM-DD", nil, err.Error())
		return
	}

	result, err := ctrl.service.ResolvePrice(c.Request.Context(), id, query.People, query.Nights, arrival)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price resolved successfully", result, nil)
}

func packageIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package ID", nil, err.Error())
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

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrPackageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPackageDeleted):
		return http.StatusConflict
	case errors.Is(err, ErrNoMatchingTier),
		errors.Is(err, ErrNoMatchingPeriod),
		errors.Is(err, ErrNoPriceForDuration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrPeriodIndexOutOfRange),
		errors.Is(err, ErrTierIndexOutOfRange),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidPeriod),
		errors.Is(err, ErrMatrixIncomplete):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
