package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

type vehicleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
	ExistsByPlate(ctx context.Context, plate string, excludeID string) (bool, error)
	List(ctx context.Context, filter models.VehicleFilter) ([]models.Vehicle, int, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type vehiclePendingChecker interface {
	HasPendingForVehicle(ctx context.Context, vehicleID string, excludeRequestID string) (bool, error)
}

// VehicleService handles vehicle registration and ownership rules.
type VehicleService struct {
	repo      vehicleRepository
	requests  vehiclePendingChecker
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVehicleService creates an instance of VehicleService.
func NewVehicleService(repo vehicleRepository, requests vehiclePendingChecker, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *VehicleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &VehicleService{repo: repo, requests: requests, audit: audit, validator: validate, logger: logger}
}

// List returns vehicles visible to the actor. Regular users only ever see
// their own vehicles regardless of the requested owner filter.
func (s *VehicleService) List(ctx context.Context, filter models.VehicleFilter, actor *models.JWTClaims) ([]models.Vehicle, *models.Pagination, error) {
	if actor == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}
	if actor.Role != models.RoleAdmin {
		filter.OwnerID = actor.UserID
	}

	vehicles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vehicles")
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

	return vehicles, pagination, nil
}

// Get returns a vehicle by ID. Non-admin actors only resolve vehicles they
// own, everything else reads as not found.
func (s *VehicleService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Vehicle, error) {
	vehicle, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Create registers a vehicle owned by the actor.
func (s *VehicleService) Create(ctx context.Context, req dto.CreateVehicleRequest, actor *models.JWTClaims, meta models.RequestMeta) (*models.Vehicle, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vehicle payload")
	}
	if !req.VehicleType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "vehicle type must be CAR, MOTORCYCLE, TRUCK or VAN")
	}
	if !req.Size.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "size must be SMALL, MEDIUM or LARGE")
	}

	plate := strings.ToUpper(strings.TrimSpace(req.PlateNumber))
	taken, err := s.repo.ExistsByPlate(ctx, plate, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check plate number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "plate number already registered")
	}

	vehicle := &models.Vehicle{
		ID:          uuid.NewString(),
		OwnerID:     actor.UserID,
		PlateNumber: plate,
		VehicleType: req.VehicleType,
		Size:        req.Size,
		Model:       req.Model,
		Color:       req.Color,
		Attributes:  types.JSONText(req.Attributes),
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create vehicle")
	}

	newPayload, _ := json.Marshal(map[string]interface{}{"plate_number": vehicle.PlateNumber, "vehicle_type": vehicle.VehicleType, "size": vehicle.Size})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionVehicleCreate,
		Resource:   "vehicles",
		ResourceID: &vehicle.ID,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return vehicle, nil
}

// Update modifies a vehicle the actor owns (or any vehicle for admins).
func (s *VehicleService) Update(ctx context.Context, id string, req dto.UpdateVehicleRequest, actor *models.JWTClaims, meta models.RequestMeta) (*models.Vehicle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vehicle payload")
	}

	vehicle, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	oldPayload, _ := json.Marshal(map[string]interface{}{"plate_number": vehicle.PlateNumber, "vehicle_type": vehicle.VehicleType, "size": vehicle.Size})

	if req.PlateNumber != nil {
		plate := strings.ToUpper(strings.TrimSpace(*req.PlateNumber))
		if plate != vehicle.PlateNumber {
			taken, err := s.repo.ExistsByPlate(ctx, plate, vehicle.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check plate number")
			}
			if taken {
				return nil, appErrors.Clone(appErrors.ErrBadRequest, "plate number already registered")
			}
			vehicle.PlateNumber = plate
		}
	}
	if req.VehicleType != nil {
		if !req.VehicleType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "vehicle type must be CAR, MOTORCYCLE, TRUCK or VAN")
		}
		vehicle.VehicleType = *req.VehicleType
	}
	if req.Size != nil {
		if !req.Size.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "size must be SMALL, MEDIUM or LARGE")
		}
		vehicle.Size = *req.Size
	}
	if req.Model != nil {
		vehicle.Model = req.Model
	}
	if req.Color != nil {
		vehicle.Color = req.Color
	}
	if req.Attributes != nil {
		vehicle.Attributes = types.JSONText(req.Attributes)
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update vehicle")
	}

	newPayload, _ := json.Marshal(map[string]interface{}{"plate_number": vehicle.PlateNumber, "vehicle_type": vehicle.VehicleType, "size": vehicle.Size})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionVehicleUpdate,
		Resource:   "vehicles",
		ResourceID: &vehicle.ID,
		OldValues:  oldPayload,
		NewValues:  newPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return vehicle, nil
}

// Delete removes a vehicle. The delete is refused while a pending slot
// request references the vehicle. Approved requests are purged and their
// slots released as part of the repository transaction.
func (s *VehicleService) Delete(ctx context.Context, id string, actor *models.JWTClaims, meta models.RequestMeta) error {
	vehicle, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return err
	}

	pending, err := s.requests.HasPendingForVehicle(ctx, vehicle.ID, "")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending requests")
	}
	if pending {
		return appErrors.Clone(appErrors.ErrActiveRequest, "vehicle has a pending slot request")
	}

	if err := s.repo.Delete(ctx, vehicle.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete vehicle")
	}

	oldPayload, _ := json.Marshal(map[string]interface{}{"plate_number": vehicle.PlateNumber})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionVehicleDelete,
		Resource:   "vehicles",
		ResourceID: &vehicle.ID,
		OldValues:  oldPayload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// loadOwned resolves a vehicle and enforces ownership. Vehicles owned by
// someone else read as not found for regular users so IDs cannot be probed.
func (s *VehicleService) loadOwned(ctx context.Context, id string, actor *models.JWTClaims) (*models.Vehicle, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authentication context")
	}

	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vehicle")
	}

	if actor.Role != models.RoleAdmin && vehicle.OwnerID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
	}

	return vehicle, nil
}

func (s *VehicleService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}
