package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

const slotCachePattern = "slots:*"

type slotRepository interface {
	FindByID(ctx context.Context, id string) (*models.ParkingSlot, error)
	ExistsBySlotNumber(ctx context.Context, number, excludeID string) (bool, error)
	List(ctx context.Context, filter models.SlotFilter) ([]models.ParkingSlot, int, error)
	Create(ctx context.Context, slot *models.ParkingSlot) error
	BulkCreate(ctx context.Context, slots []models.ParkingSlot) ([]string, error)
	Update(ctx context.Context, slot *models.ParkingSlot) error
	Delete(ctx context.Context, id string) error
}

// SlotService manages the parking slot inventory.
type SlotService struct {
	repo      slotRepository
	cache     *CacheService
	metrics   *MetricsService
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlotService creates an instance of SlotService.
func NewSlotService(repo slotRepository, cache *CacheService, metrics *MetricsService, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SlotService{repo: repo, cache: cache, metrics: metrics, audit: audit, validator: validate, logger: logger}
}

type slotListPage struct {
	Slots []models.ParkingSlot `json:"slots"`
	Total int                  `json:"total"`
}

// List returns paginated slots. Results are served from cache when possible
// and the boolean indicates whether the page originated from cache.
func (s *SlotService) List(ctx context.Context, filter models.SlotFilter) ([]models.ParkingSlot, *models.Pagination, bool, error) {
	cacheKey := makeSlotCacheKey(filter)
	var cached slotListPage
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			s.logger.Warn("slot cache read failed", zap.Error(err))
		} else if hit {
			return cached.Slots, s.pagination(filter, cached.Total), true, nil
		}
	}

	start := time.Now()
	slots, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parking slots")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("slots_list", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, slotListPage{Slots: slots, Total: total}, 0); err != nil {
			s.logger.Warn("slot cache write failed", zap.Error(err))
		}
	}

	return slots, s.pagination(filter, total), false, nil
}

// Get returns a slot by ID.
func (s *SlotService) Get(ctx context.Context, id string) (*models.ParkingSlot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parking slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parking slot")
	}
	return slot, nil
}

// Create registers a single parking slot.
func (s *SlotService) Create(ctx context.Context, req dto.CreateSlotRequest, actorID string, meta models.RequestMeta) (*models.ParkingSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if !req.VehicleType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "vehicle type must be CAR, MOTORCYCLE, TRUCK or VAN")
	}
	if !req.Size.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "size must be SMALL, MEDIUM or LARGE")
	}
	if !req.Location.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "location must be NORTH, SOUTH, EAST or WEST")
	}

	number := strings.ToUpper(strings.TrimSpace(req.SlotNumber))
	taken, err := s.repo.ExistsBySlotNumber(ctx, number, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slot number already exists")
	}

	slot := &models.ParkingSlot{
		ID:          uuid.NewString(),
		SlotNumber:  number,
		VehicleType: req.VehicleType,
		Size:        req.Size,
		Location:    req.Location,
		Status:      models.SlotAvailable,
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create parking slot")
	}

	s.invalidateCache(ctx)

	newPayload, _ := json.Marshal(map[string]interface{}{"slot_number": slot.SlotNumber, "vehicle_type": slot.VehicleType, "size": slot.Size, "location": slot.Location})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionSlotCreate,
		Resource:   "parking_slots",
		ResourceID: &slot.ID,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return slot, nil
}

// BulkCreate registers a numbered run of slots sharing one type, size and
// location. The whole batch is rejected when any generated number already
// exists so partial imports never happen.
func (s *SlotService) BulkCreate(ctx context.Context, req dto.BulkCreateSlotsRequest, actorID string, meta models.RequestMeta) (*dto.BulkCreateSlotsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk slot payload")
	}
	if !req.VehicleType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "vehicle type must be CAR, MOTORCYCLE, TRUCK or VAN")
	}
	if !req.Size.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "size must be SMALL, MEDIUM or LARGE")
	}
	if !req.Location.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "location must be NORTH, SOUTH, EAST or WEST")
	}

	prefix := strings.ToUpper(strings.TrimSpace(req.Prefix))
	slots := make([]models.ParkingSlot, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		slots = append(slots, models.ParkingSlot{
			ID:          uuid.NewString(),
			SlotNumber:  fmt.Sprintf("%s%d", prefix, req.StartNumber+i),
			VehicleType: req.VehicleType,
			Size:        req.Size,
			Location:    req.Location,
			Status:      models.SlotAvailable,
		})
	}

	clashes, err := s.repo.BulkCreate(ctx, slots)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to bulk create parking slots")
	}
	if len(clashes) > 0 {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrConflict, "some slot numbers already exist"), clashes...)
	}

	s.invalidateCache(ctx)

	newPayload, _ := json.Marshal(map[string]interface{}{"prefix": prefix, "start_number": req.StartNumber, "count": req.Count, "location": req.Location})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:    &actorID,
		Action:    models.AuditActionSlotCreate,
		Resource:  "parking_slots",
		NewValues: newPayload,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})

	return &dto.BulkCreateSlotsResponse{Created: len(slots), Slots: slots}, nil
}

// Update modifies slot attributes. Status may be set directly, which exists
// for maintenance closures rather than the request workflow.
func (s *SlotService) Update(ctx context.Context, id string, req dto.UpdateSlotRequest, actorID string, meta models.RequestMeta) (*models.ParkingSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}

	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parking slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parking slot")
	}

	oldPayload, _ := json.Marshal(map[string]interface{}{"slot_number": slot.SlotNumber, "status": slot.Status, "location": slot.Location})

	if req.SlotNumber != nil {
		number := strings.ToUpper(strings.TrimSpace(*req.SlotNumber))
		if number != slot.SlotNumber {
			taken, err := s.repo.ExistsBySlotNumber(ctx, number, slot.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot number")
			}
			if taken {
				return nil, appErrors.Clone(appErrors.ErrConflict, "slot number already exists")
			}
			slot.SlotNumber = number
		}
	}
	if req.VehicleType != nil {
		if !req.VehicleType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "vehicle type must be CAR, MOTORCYCLE, TRUCK or VAN")
		}
		slot.VehicleType = *req.VehicleType
	}
	if req.Size != nil {
		if !req.Size.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "size must be SMALL, MEDIUM or LARGE")
		}
		slot.Size = *req.Size
	}
	if req.Location != nil {
		if !req.Location.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "location must be NORTH, SOUTH, EAST or WEST")
		}
		slot.Location = *req.Location
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be AVAILABLE or UNAVAILABLE")
		}
		slot.Status = *req.Status
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update parking slot")
	}

	s.invalidateCache(ctx)

	newPayload, _ := json.Marshal(map[string]interface{}{"slot_number": slot.SlotNumber, "status": slot.Status, "location": slot.Location})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionSlotUpdate,
		Resource:   "parking_slots",
		ResourceID: &slot.ID,
		OldValues:  oldPayload,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return slot, nil
}

// Delete removes a slot. Occupied slots cannot be deleted until their
// assignment is released.
func (s *SlotService) Delete(ctx context.Context, id string, actorID string, meta models.RequestMeta) error {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "parking slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parking slot")
	}
	if slot.Status == models.SlotUnavailable {
		return appErrors.Clone(appErrors.ErrSlotOccupied, "slot is assigned and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		// The slot may have been assigned between the check and the delete.
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrSlotOccupied, "slot is assigned and cannot be deleted")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete parking slot")
	}

	s.invalidateCache(ctx)

	oldPayload, _ := json.Marshal(map[string]interface{}{"slot_number": slot.SlotNumber})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionSlotDelete,
		Resource:   "parking_slots",
		ResourceID: &slot.ID,
		OldValues:  oldPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

func (s *SlotService) pagination(filter models.SlotFilter, total int) *models.Pagination {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}
}

func (s *SlotService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slotCachePattern); err != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(err))
	}
}

func (s *SlotService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}

func makeSlotCacheKey(filter models.SlotFilter) string {
	var builder strings.Builder
	builder.WriteString("slots:list")
	if filter.Search != "" {
		builder.WriteString(":q=")
		builder.WriteString(strings.ReplaceAll(filter.Search, ":", "|"))
	}
	if filter.Location != nil {
		builder.WriteString(":loc=")
		builder.WriteString(string(*filter.Location))
	}
	if filter.OnlyAvailable {
		builder.WriteString(":available")
	}
	fmt.Fprintf(&builder, ":p=%d:s=%d", filter.Page, filter.PageSize)
	return builder.String()
}
