package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	"github.com/parkgrid/parkgrid-api/internal/repository"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

type requestStore interface {
	Create(ctx context.Context, request *models.SlotRequest) error
	GetByID(ctx context.Context, id string) (*models.SlotRequest, error)
	GetItemByID(ctx context.Context, id string) (*dto.SlotRequestItem, error)
	List(ctx context.Context, filter models.RequestFilter) ([]dto.SlotRequestItem, int, error)
	HasPendingForVehicle(ctx context.Context, vehicleID, excludeID string) (bool, error)
	UpdatePending(ctx context.Context, request *models.SlotRequest) error
	ReaffirmPending(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, params repository.ApproveParams) error
	Reject(ctx context.Context, id string, note *string) error
}

type slotFinder interface {
	FindByID(ctx context.Context, id string) (*models.ParkingSlot, error)
	FindCompatible(ctx context.Context, vehicleType models.VehicleType, size models.VehicleSize) (*models.ParkingSlot, error)
}

type vehicleFinder interface {
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
}

type decisionNotifier interface {
	NotifyDecision(item *dto.SlotRequestItem) error
}

// RequestService orchestrates the slot request lifecycle from submission
// through the admin decision.
type RequestService struct {
	repo      requestStore
	slots     slotFinder
	vehicles  vehicleFinder
	notifier  decisionNotifier
	cache     *CacheService
	metrics   *MetricsService
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRequestService creates an instance of RequestService.
func NewRequestService(repo requestStore, slots slotFinder, vehicles vehicleFinder, notifier decisionNotifier, cache *CacheService, metrics *MetricsService, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RequestService{
		repo:      repo,
		slots:     slots,
		vehicles:  vehicles,
		notifier:  notifier,
		cache:     cache,
		metrics:   metrics,
		audit:     audit,
		validator: validate,
		logger:    logger,
	}
}

// Create submits a new slot request for a vehicle. One pending request per
// vehicle is allowed at a time and the request is always recorded against
// the vehicle owner.
func (s *RequestService) Create(ctx context.Context, req dto.CreateSlotRequestPayload, actor *models.JWTClaims, meta models.RequestMeta) (*models.SlotRequest, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}

	vehicle, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vehicle")
	}
	if actor.Role != models.RoleAdmin && vehicle.OwnerID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
	}

	pending, err := s.repo.HasPendingForVehicle(ctx, vehicle.ID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending requests")
	}
	if pending {
		return nil, appErrors.Clone(appErrors.ErrActiveRequest, "vehicle already has a pending request")
	}

	request := &models.SlotRequest{
		UserID:    vehicle.OwnerID,
		VehicleID: vehicle.ID,
		Status:    models.RequestPending,
		Note:      req.Note,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create slot request")
	}

	newPayload, _ := json.Marshal(map[string]interface{}{"vehicle_id": request.VehicleID, "status": request.Status})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionRequestCreate,
		Resource:   "slot_requests",
		ResourceID: &request.ID,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return request, nil
}

// List returns requests visible to the actor. Regular users only see their
// own requests regardless of the requested filter.
func (s *RequestService) List(ctx context.Context, filter models.RequestFilter, actor *models.JWTClaims) ([]dto.SlotRequestItem, *models.Pagination, error) {
	if actor == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}
	if actor.Role != models.RoleAdmin {
		filter.UserID = actor.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slot requests")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	pagination := &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}

	return items, pagination, nil
}

// Get returns the composed request view enforcing ownership for non-admins.
func (s *RequestService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*dto.SlotRequestItem, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}

	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot request")
	}
	if actor.Role != models.RoleAdmin && item.UserID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
	}

	return item, nil
}

// Update edits a pending request. Processed requests are immutable.
func (s *RequestService) Update(ctx context.Context, id string, req dto.UpdateSlotRequestPayload, actor *models.JWTClaims, meta models.RequestMeta) (*models.SlotRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}

	request, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if request.Status.Processed() {
		return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "cannot edit an already processed request")
	}

	if req.VehicleID != nil && *req.VehicleID != request.VehicleID {
		vehicle, err := s.vehicles.FindByID(ctx, *req.VehicleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vehicle")
		}
		if actor.Role != models.RoleAdmin && vehicle.OwnerID != actor.UserID {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
		}
		if vehicle.OwnerID != request.UserID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "replacement vehicle must belong to the request owner")
		}
		pending, err := s.repo.HasPendingForVehicle(ctx, vehicle.ID, request.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending requests")
		}
		if pending {
			return nil, appErrors.Clone(appErrors.ErrActiveRequest, "vehicle already has a pending request")
		}
		request.VehicleID = vehicle.ID
	}
	if req.Note != nil {
		request.Note = req.Note
	}

	if err := s.repo.UpdatePending(ctx, request); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "cannot edit an already processed request")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update slot request")
	}

	newPayload, _ := json.Marshal(map[string]interface{}{"vehicle_id": request.VehicleID})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionRequestUpdate,
		Resource:   "slot_requests",
		ResourceID: &request.ID,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return request, nil
}

// Delete withdraws a pending request. Processed requests stay on record.
func (s *RequestService) Delete(ctx context.Context, id string, actor *models.JWTClaims, meta models.RequestMeta) error {
	request, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return err
	}
	if request.Status.Processed() {
		return appErrors.Clone(appErrors.ErrAlreadyProcessed, "cannot delete an already processed request")
	}

	if err := s.repo.Delete(ctx, request.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrAlreadyProcessed, "cannot delete an already processed request")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot request")
	}

	oldPayload, _ := json.Marshal(map[string]interface{}{"vehicle_id": request.VehicleID, "status": request.Status})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionRequestDelete,
		Resource:   "slot_requests",
		ResourceID: &request.ID,
		OldValues:  oldPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// UpdateStatus applies an admin decision to a request. Approval reserves a
// slot atomically, rejection records the decision, and re-submitting PENDING
// on a still pending request is a harmless touch. Reverting a processed
// request is refused.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, req dto.UpdateRequestStatusPayload, approver *models.JWTClaims, meta models.RequestMeta) (*dto.SlotRequestItem, error) {
	if approver == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be PENDING, APPROVED or REJECTED")
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot request")
	}

	switch req.Status {
	case models.RequestPending:
		if request.Status.Processed() {
			return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "cannot revert an already processed request")
		}
		if err := s.repo.ReaffirmPending(ctx, request.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrAlreadyProcessed, "cannot revert an already processed request")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to touch slot request")
		}
		return s.loadItem(ctx, request.ID)
	case models.RequestApproved:
		if err := s.approve(ctx, request, req); err != nil {
			return nil, err
		}
	case models.RequestRejected:
		if err := s.reject(ctx, request, req); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.RecordRequestDecision(req.Status)
	}

	item, err := s.loadItem(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyDecision(item); err != nil {
			s.logger.Warn("failed to queue decision notification",
				zap.String("request_id", item.ID),
				zap.String("status", string(item.Status)),
				zap.Error(err))
		}
	}

	auditAction := models.AuditActionRequestApprove
	if req.Status == models.RequestRejected {
		auditAction = models.AuditActionRequestReject
	}
	newPayload, _ := json.Marshal(map[string]interface{}{"status": item.Status, "slot_id": item.SlotID})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &approver.UserID,
		Action:     auditAction,
		Resource:   "slot_requests",
		ResourceID: &item.ID,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return item, nil
}

// approve resolves the target slot and reserves it together with the status
// flip in one transaction. The pre-checks here give clean errors; the
// transaction re-validates both sides under lock.
func (s *RequestService) approve(ctx context.Context, request *models.SlotRequest, req dto.UpdateRequestStatusPayload) error {
	if request.Status.Processed() {
		return appErrors.Clone(appErrors.ErrAlreadyProcessed, "request has already been processed")
	}

	vehicle, err := s.vehicles.FindByID(ctx, request.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "vehicle for this request no longer exists")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vehicle")
	}

	var slot *models.ParkingSlot
	if req.SlotID != nil && *req.SlotID != "" {
		slot, err = s.slots.FindByID(ctx, *req.SlotID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "parking slot not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parking slot")
		}
		if slot.Status != models.SlotAvailable {
			return appErrors.Clone(appErrors.ErrSlotUnavailable, "parking slot is not available")
		}
		if !slot.CompatibleWith(vehicle) {
			return appErrors.Clone(appErrors.ErrSlotIncompatible, "parking slot does not fit the vehicle type and size")
		}
	} else {
		slot, err = s.slots.FindCompatible(ctx, vehicle.VehicleType, vehicle.Size)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNoCompatibleSlot, "no available slot matches the vehicle type and size")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to find a compatible slot")
		}
	}

	err = s.repo.Approve(ctx, repository.ApproveParams{
		RequestID: request.ID,
		SlotID:    slot.ID,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestProcessed):
			return appErrors.Clone(appErrors.ErrAlreadyProcessed, "request has already been processed")
		case errors.Is(err, repository.ErrSlotTaken):
			return appErrors.Clone(appErrors.ErrConflict, "parking slot is no longer available")
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
		default:
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve slot request")
		}
	}

	s.invalidateSlotCache(ctx)
	return nil
}

func (s *RequestService) reject(ctx context.Context, request *models.SlotRequest, req dto.UpdateRequestStatusPayload) error {
	if request.Status.Processed() {
		return appErrors.Clone(appErrors.ErrAlreadyProcessed, "request has already been processed")
	}

	if err := s.repo.Reject(ctx, request.ID, req.Note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrAlreadyProcessed, "request has already been processed")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject slot request")
	}

	return nil
}

func (s *RequestService) loadItem(ctx context.Context, id string) (*dto.SlotRequestItem, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot request")
	}
	return item, nil
}

// loadOwned resolves a request and enforces ownership. Requests owned by
// someone else read as not found for regular users.
func (s *RequestService) loadOwned(ctx context.Context, id string, actor *models.JWTClaims) (*models.SlotRequest, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot request")
	}
	if actor.Role != models.RoleAdmin && request.UserID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "slot request not found")
	}

	return request, nil
}

func (s *RequestService) invalidateSlotCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slotCachePattern); err != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(err))
	}
}

func (s *RequestService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}
