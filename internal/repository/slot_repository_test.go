package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkgrid/parkgrid-api/internal/models"
)

func newSlotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSlotRepositoryFindCompatible(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "slot_number", "vehicle_type", "size", "location", "status", "created_at", "updated_at"}).
		AddRow("slot-1", "N-1", "CAR", "MEDIUM", "NORTH", "AVAILABLE", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'AVAILABLE' AND vehicle_type = $1 AND size = $2 ORDER BY slot_number ASC LIMIT 1")).
		WithArgs(models.VehicleCar, models.SizeMedium).
		WillReturnRows(rows)

	slot, err := repo.FindCompatible(context.Background(), models.VehicleCar, models.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, "N-1", slot.SlotNumber)
	assert.Equal(t, models.SlotAvailable, slot.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryFindCompatibleNone(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'AVAILABLE' AND vehicle_type = $1 AND size = $2")).
		WithArgs(models.VehicleTruck, models.SizeLarge).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindCompatible(context.Background(), models.VehicleTruck, models.SizeLarge)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSlotRepositoryBulkCreate(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	slots := []models.ParkingSlot{
		{SlotNumber: "A-101", VehicleType: models.VehicleCar, Size: models.SizeMedium, Location: models.LocationNorth},
		{SlotNumber: "A-102", VehicleType: models.VehicleCar, Size: models.SizeMedium, Location: models.LocationNorth},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT slot_number FROM parking_slots WHERE slot_number = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"slot_number"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO parking_slots")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO parking_slots")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	clashes, err := repo.BulkCreate(context.Background(), slots)
	require.NoError(t, err)
	assert.Empty(t, clashes)
	assert.NotEmpty(t, slots[0].ID)
	assert.Equal(t, models.SlotAvailable, slots[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryBulkCreateClash(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	slots := []models.ParkingSlot{
		{SlotNumber: "A-101", VehicleType: models.VehicleCar, Size: models.SizeMedium, Location: models.LocationNorth},
		{SlotNumber: "A-102", VehicleType: models.VehicleCar, Size: models.SizeMedium, Location: models.LocationNorth},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT slot_number FROM parking_slots WHERE slot_number = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"slot_number"}).AddRow("A-101").AddRow("A-102"))
	mock.ExpectRollback()

	clashes, err := repo.BulkCreate(context.Background(), slots)
	require.NoError(t, err)
	assert.Equal(t, []string{"A-101", "A-102"}, clashes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryDeleteGuarded(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM parking_slots WHERE id = $1 AND status = 'AVAILABLE'")).
		WithArgs("slot-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "slot-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM parking_slots WHERE id = $1 AND status = 'AVAILABLE'")).
		WithArgs("slot-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Delete(context.Background(), "slot-2")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryOccupancy(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	rows := sqlmock.NewRows([]string{"key", "total", "occupied"}).
		AddRow("NORTH", 10, 4).
		AddRow("SOUTH", 8, 8)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY location")).WillReturnRows(rows)

	breakdown, err := repo.Occupancy(context.Background(), "location")
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "NORTH", breakdown[0].Key)
	assert.Equal(t, 4, breakdown[0].Occupied)

	_, err = repo.Occupancy(context.Background(), "status; DROP TABLE parking_slots")
	require.Error(t, err)
}
