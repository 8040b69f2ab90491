package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

type slotRepoStub struct {
	slots   map[string]*models.ParkingSlot
	filter  models.SlotFilter
	deleted []string
}

func newSlotRepoStub() *slotRepoStub {
	return &slotRepoStub{slots: make(map[string]*models.ParkingSlot)}
}

func (m *slotRepoStub) FindByID(ctx context.Context, id string) (*models.ParkingSlot, error) {
	if slot, ok := m.slots[id]; ok {
		clone := *slot
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *slotRepoStub) ExistsBySlotNumber(ctx context.Context, number, excludeID string) (bool, error) {
	for _, slot := range m.slots {
		if slot.SlotNumber == number && slot.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *slotRepoStub) List(ctx context.Context, filter models.SlotFilter) ([]models.ParkingSlot, int, error) {
	m.filter = filter
	result := make([]models.ParkingSlot, 0, len(m.slots))
	for _, slot := range m.slots {
		result = append(result, *slot)
	}
	return result, len(result), nil
}

func (m *slotRepoStub) Create(ctx context.Context, slot *models.ParkingSlot) error {
	m.slots[slot.ID] = slot
	return nil
}

func (m *slotRepoStub) BulkCreate(ctx context.Context, slots []models.ParkingSlot) ([]string, error) {
	var clashes []string
	for i := range slots {
		if taken, _ := m.ExistsBySlotNumber(ctx, slots[i].SlotNumber, ""); taken {
			clashes = append(clashes, slots[i].SlotNumber)
		}
	}
	if len(clashes) > 0 {
		return clashes, nil
	}
	for i := range slots {
		slot := slots[i]
		m.slots[slot.ID] = &slot
	}
	return nil, nil
}

func (m *slotRepoStub) Update(ctx context.Context, slot *models.ParkingSlot) error {
	m.slots[slot.ID] = slot
	return nil
}

func (m *slotRepoStub) Delete(ctx context.Context, id string) error {
	slot, ok := m.slots[id]
	if !ok || slot.Status != models.SlotAvailable {
		return sql.ErrNoRows
	}
	delete(m.slots, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newSlotServiceForTest(repo *slotRepoStub, audit *auditStub) *SlotService {
	if audit == nil {
		audit = &auditStub{}
	}
	return NewSlotService(repo, nil, nil, audit, validator.New(), zap.NewNop())
}

func TestSlotServiceCreate(t *testing.T) {
	repo := newSlotRepoStub()
	audit := &auditStub{}
	svc := newSlotServiceForTest(repo, audit)

	slot, err := svc.Create(context.Background(), dto.CreateSlotRequest{
		SlotNumber:  "a-101",
		VehicleType: models.VehicleCar,
		Size:        models.SizeMedium,
		Location:    models.LocationNorth,
	}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "A-101", slot.SlotNumber)
	assert.Equal(t, models.SlotAvailable, slot.Status)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionSlotCreate, audit.logs[0].Action)
}

func TestSlotServiceCreateDuplicateNumber(t *testing.T) {
	repo := newSlotRepoStub()
	repo.slots["slot-1"] = &models.ParkingSlot{ID: "slot-1", SlotNumber: "A-101"}
	svc := newSlotServiceForTest(repo, nil)

	_, err := svc.Create(context.Background(), dto.CreateSlotRequest{
		SlotNumber:  "A-101",
		VehicleType: models.VehicleCar,
		Size:        models.SizeMedium,
		Location:    models.LocationNorth,
	}, "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestSlotServiceBulkCreateGeneratesNumbers(t *testing.T) {
	repo := newSlotRepoStub()
	svc := newSlotServiceForTest(repo, nil)

	res, err := svc.BulkCreate(context.Background(), dto.BulkCreateSlotsRequest{
		Prefix:      "b-",
		StartNumber: 201,
		Count:       3,
		VehicleType: models.VehicleMotorcycle,
		Size:        models.SizeSmall,
		Location:    models.LocationEast,
	}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	require.Len(t, res.Slots, 3)
	assert.Equal(t, "B-201", res.Slots[0].SlotNumber)
	assert.Equal(t, "B-203", res.Slots[2].SlotNumber)
	assert.Len(t, repo.slots, 3)
}

func TestSlotServiceBulkCreateClash(t *testing.T) {
	repo := newSlotRepoStub()
	repo.slots["slot-1"] = &models.ParkingSlot{ID: "slot-1", SlotNumber: "B-202"}
	svc := newSlotServiceForTest(repo, nil)

	_, err := svc.BulkCreate(context.Background(), dto.BulkCreateSlotsRequest{
		Prefix:      "B-",
		StartNumber: 201,
		Count:       3,
		VehicleType: models.VehicleMotorcycle,
		Size:        models.SizeSmall,
		Location:    models.LocationEast,
	}, "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Errors, "B-202")
	assert.Len(t, repo.slots, 1)
}

func TestSlotServiceDeleteOccupied(t *testing.T) {
	repo := newSlotRepoStub()
	repo.slots["slot-1"] = &models.ParkingSlot{ID: "slot-1", SlotNumber: "A-101", Status: models.SlotUnavailable}
	svc := newSlotServiceForTest(repo, nil)

	err := svc.Delete(context.Background(), "slot-1", "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSlotOccupied.Code, appErr.Code)
	assert.Contains(t, repo.slots, "slot-1")
}

func TestSlotServiceDeleteAvailable(t *testing.T) {
	repo := newSlotRepoStub()
	repo.slots["slot-1"] = &models.ParkingSlot{ID: "slot-1", SlotNumber: "A-101", Status: models.SlotAvailable}
	audit := &auditStub{}
	svc := newSlotServiceForTest(repo, audit)

	err := svc.Delete(context.Background(), "slot-1", "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Empty(t, repo.slots)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionSlotDelete, audit.logs[0].Action)
}

func TestSlotServiceUpdateStatusDirectly(t *testing.T) {
	repo := newSlotRepoStub()
	repo.slots["slot-1"] = &models.ParkingSlot{ID: "slot-1", SlotNumber: "A-101", VehicleType: models.VehicleCar, Size: models.SizeMedium, Location: models.LocationNorth, Status: models.SlotAvailable}
	svc := newSlotServiceForTest(repo, nil)

	status := models.SlotUnavailable
	slot, err := svc.Update(context.Background(), "slot-1", dto.UpdateSlotRequest{Status: &status}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.SlotUnavailable, slot.Status)
}

func TestSlotServiceListUsesCache(t *testing.T) {
	repo := newSlotRepoStub()
	repo.slots["slot-1"] = &models.ParkingSlot{ID: "slot-1", SlotNumber: "A-101", Status: models.SlotAvailable}
	cacheRepo := newCacheRepoStub()
	cacheSvc := NewCacheService(cacheRepo, nil, 0, zap.NewNop(), true)
	svc := NewSlotService(repo, cacheSvc, nil, nil, validator.New(), zap.NewNop())

	_, _, fromCache, err := svc.List(context.Background(), models.SlotFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.False(t, fromCache)

	_, pagination, fromCache, err := svc.List(context.Background(), models.SlotFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 1, pagination.TotalCount)
}
