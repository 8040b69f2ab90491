package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/middleware"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
	"github.com/parkgrid/parkgrid-api/pkg/response"
)

type slotService interface {
	List(ctx context.Context, filter models.SlotFilter) ([]models.ParkingSlot, *models.Pagination, bool, error)
	Get(ctx context.Context, id string) (*models.ParkingSlot, error)
	Create(ctx context.Context, req dto.CreateSlotRequest, actorID string, meta models.RequestMeta) (*models.ParkingSlot, error)
	BulkCreate(ctx context.Context, req dto.BulkCreateSlotsRequest, actorID string, meta models.RequestMeta) (*dto.BulkCreateSlotsResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateSlotRequest, actorID string, meta models.RequestMeta) (*models.ParkingSlot, error)
	Delete(ctx context.Context, id string, actorID string, meta models.RequestMeta) error
}

// SlotHandler handles parking slot endpoints.
type SlotHandler struct {
	service slotService
}

// NewSlotHandler creates a new slot handler.
func NewSlotHandler(svc slotService) *SlotHandler {
	return &SlotHandler{service: svc}
}

// List godoc
// @Summary List parking slots
// @Description List parking slots with pagination and filtering
// @Tags Slots
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Slot number search"
// @Param location query string false "Location filter"
// @Param onlyAvailable query bool false "Only available slots"
// @Success 200 {object} response.Envelope
// @Router /parking/slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	var filter models.SlotFilter

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	filter.Search = c.Query("search")

	if location := c.Query("location"); location != "" {
		typed := models.SlotLocation(location)
		filter.Location = &typed
	}
	if only := c.Query("onlyAvailable"); only != "" {
		if val, err := strconv.ParseBool(only); err == nil {
			filter.OnlyAvailable = val
		}
	}

	start := time.Now()
	slots, pagination, cacheHit, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, slots, pagination, meta)
}

// Get godoc
// @Summary Get parking slot
// @Description Get parking slot detail
// @Tags Slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, slot, nil)
}

// Create godoc
// @Summary Create parking slot
// @Description Create a single parking slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.CreateSlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /parking/slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	slot, err := h.service.Create(c.Request.Context(), req, claims.UserID, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, slot)
}

// BulkCreate godoc
// @Summary Bulk create parking slots
// @Description Provision a numbered run of identical slots in one transaction
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.BulkCreateSlotsRequest true "Bulk payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /parking/slots/bulk [post]
func (h *SlotHandler) BulkCreate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.BulkCreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk payload"))
		return
	}

	result, err := h.service.BulkCreate(c.Request.Context(), req, claims.UserID, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Update godoc
// @Summary Update parking slot
// @Description Update slot details or take it out of service
// @Tags Slots
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body dto.UpdateSlotRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/slots/{id} [put]
func (h *SlotHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	slot, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claims.UserID, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Delete parking slot
// @Description Delete an unassigned parking slot
// @Tags Slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.UserID, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
