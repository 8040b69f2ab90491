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

func newRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRequestRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slot_requests")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	request := &models.SlotRequest{UserID: "user-1", VehicleID: "vehicle-1"}
	require.NoError(t, repo.Create(context.Background(), request))
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, models.RequestPending, request.Status)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "slot_id", "status", "note", "created_at", "updated_at"}).
		AddRow(request.ID, "user-1", "vehicle-1", nil, "PENDING", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, vehicle_id, slot_id, status, note, created_at, updated_at FROM slot_requests WHERE id = $1")).
		WithArgs(request.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, found.Status)
	assert.Nil(t, found.SlotID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryApprove(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM slot_requests WHERE id = $1 FOR UPDATE")).
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE parking_slots SET status = 'UNAVAILABLE', updated_at = $2 WHERE id = $1 AND status = 'AVAILABLE'")).
		WithArgs("slot-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE slot_requests SET status = 'APPROVED', slot_id = $2, note = COALESCE($3, note), updated_at = $4 WHERE id = $1")).
		WithArgs("req-1", "slot-1", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Approve(context.Background(), ApproveParams{RequestID: "req-1", SlotID: "slot-1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryApproveSlotTaken(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM slot_requests WHERE id = $1 FOR UPDATE")).
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE parking_slots SET status = 'UNAVAILABLE'")).
		WithArgs("slot-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), ApproveParams{RequestID: "req-1", SlotID: "slot-1"})
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryApproveAlreadyProcessed(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM slot_requests WHERE id = $1 FOR UPDATE")).
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED"))
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), ApproveParams{RequestID: "req-1", SlotID: "slot-1"})
	require.ErrorIs(t, err, ErrRequestProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryReject(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	note := "no capacity this month"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE slot_requests SET status = 'REJECTED', note = COALESCE($2, note), updated_at = $3 WHERE id = $1 AND status = 'PENDING'")).
		WithArgs("req-1", &note, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reject(context.Background(), "req-1", &note))
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE slot_requests SET status = 'REJECTED'")).
		WithArgs("req-1", &note, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reject(context.Background(), "req-1", &note)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRequestRepositoryDeleteGuarded(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slot_requests WHERE id = $1 AND status = 'PENDING'")).
		WithArgs("req-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "req-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "user_full_name", "user_email", "vehicle_id", "plate_number", "vehicle_type", "vehicle_size", "slot_id", "slot_number", "slot_location", "status", "note", "created_at", "updated_at"}).
		AddRow("req-1", "user-1", "Jane Driver", "jane@example.com", "vehicle-1", "RAB123A", "CAR", "MEDIUM", nil, nil, nil, "PENDING", nil, now, now)
	mock.ExpectQuery("SELECT(.|\n)+FROM slot_requests sr(.|\n)+JOIN users u").
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM slot_requests sr")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), models.RequestFilter{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "RAB123A", items[0].PlateNumber)
	assert.Nil(t, items[0].SlotID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryHasPendingForVehicle(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM slot_requests WHERE vehicle_id = $1 AND status = 'PENDING'")).
		WithArgs("vehicle-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	pending, err := repo.HasPendingForVehicle(context.Background(), "vehicle-1", "")
	require.NoError(t, err)
	assert.True(t, pending)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM slot_requests WHERE vehicle_id = $1 AND status = 'PENDING' AND id <> $2")).
		WithArgs("vehicle-1", "req-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	pending, err = repo.HasPendingForVehicle(context.Background(), "vehicle-1", "req-1")
	require.NoError(t, err)
	assert.False(t, pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
