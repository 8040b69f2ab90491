package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
)

// Sentinel errors distinguishing the two guarded writes inside the approval
// transaction.
var (
	// ErrSlotTaken reports that the slot lost its availability between
	// resolution and the guarded reservation write.
	ErrSlotTaken = errors.New("slot no longer available")
	// ErrRequestProcessed reports that the request left PENDING before the
	// status write could be applied.
	ErrRequestProcessed = errors.New("request already processed")
)

const requestItemColumns = `
	sr.id,
	sr.user_id,
	u.full_name AS user_full_name,
	u.email AS user_email,
	sr.vehicle_id,
	v.plate_number,
	v.vehicle_type,
	v.size AS vehicle_size,
	sr.slot_id,
	ps.slot_number,
	ps.location AS slot_location,
	sr.status,
	sr.note,
	sr.created_at,
	sr.updated_at`

const requestItemJoins = `
FROM slot_requests sr
JOIN users u ON u.id = sr.user_id
JOIN vehicles v ON v.id = sr.vehicle_id
LEFT JOIN parking_slots ps ON ps.id = sr.slot_id`

// RequestRepository persists slot request workflow data.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new slot request row.
func (r *RequestRepository) Create(ctx context.Context, request *models.SlotRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now

	const query = `INSERT INTO slot_requests (id, user_id, vehicle_id, slot_id, status, note, created_at, updated_at) VALUES (:id, :user_id, :vehicle_id, :slot_id, :status, :note, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create slot request: %w", err)
	}
	return nil
}

// GetByID fetches a slot request by identifier.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.SlotRequest, error) {
	const query = `SELECT id, user_id, vehicle_id, slot_id, status, note, created_at, updated_at FROM slot_requests WHERE id = $1 LIMIT 1`
	var request models.SlotRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get slot request: %w", err)
	}
	return &request, nil
}

// GetItemByID fetches the composed request view joining user, vehicle and
// assigned slot.
func (r *RequestRepository) GetItemByID(ctx context.Context, id string) (*dto.SlotRequestItem, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE sr.id = $1 LIMIT 1", requestItemColumns, requestItemJoins)
	var item dto.SlotRequestItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get slot request item: %w", err)
	}
	return &item, nil
}

// List returns composed request views matching the filter with total count,
// sorted latest first.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]dto.SlotRequestItem, int, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("sr.user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.VehicleID != "" {
		conditions = append(conditions, fmt.Sprintf("sr.vehicle_id = $%d", len(args)+1))
		args = append(args, filter.VehicleID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("sr.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s%s ORDER BY sr.created_at DESC LIMIT %d OFFSET %d", requestItemColumns, requestItemJoins, where, pageSize, offset)

	var items []dto.SlotRequestItem
	if err := r.db.SelectContext(ctx, &items, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list slot requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM slot_requests sr%s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count slot requests: %w", err)
	}

	return items, total, nil
}

// HasPendingForVehicle reports whether the vehicle already has a pending
// request, optionally excluding one request id (for updates).
func (r *RequestRepository) HasPendingForVehicle(ctx context.Context, vehicleID, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM slot_requests WHERE vehicle_id = $1 AND status = 'PENDING'`
	args := []interface{}{vehicleID}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check pending request for vehicle: %w", err)
	}
	return count > 0, nil
}

// HasPendingForUser reports whether the user has any pending request.
func (r *RequestRepository) HasPendingForUser(ctx context.Context, userID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM slot_requests WHERE user_id = $1 AND status = 'PENDING'`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return false, fmt.Errorf("check pending request for user: %w", err)
	}
	return count > 0, nil
}

// UpdatePending edits the vehicle binding and note of a request while it is
// still pending. The write is guarded on status so a request processed in
// between is never touched. Returns sql.ErrNoRows when no pending row
// matched.
func (r *RequestRepository) UpdatePending(ctx context.Context, request *models.SlotRequest) error {
	request.UpdatedAt = time.Now().UTC()
	const query = `UPDATE slot_requests SET vehicle_id = :vehicle_id, note = :note, updated_at = :updated_at WHERE id = :id AND status = 'PENDING'`
	result, err := r.db.NamedExecContext(ctx, query, request)
	if err != nil {
		return fmt.Errorf("update slot request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReaffirmPending re-persists the PENDING status as a plain field update
// without touching any slot. Returns sql.ErrNoRows when the request is no
// longer pending.
func (r *RequestRepository) ReaffirmPending(ctx context.Context, id string) error {
	const query = `UPDATE slot_requests SET status = 'PENDING', updated_at = $2 WHERE id = $1 AND status = 'PENDING'`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("reaffirm slot request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request reaffirm rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a request while it is still pending. Returns
// sql.ErrNoRows when no pending row matched.
func (r *RequestRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM slot_requests WHERE id = $1 AND status = 'PENDING'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slot request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ApproveParams groups the values applied by the approval transaction.
type ApproveParams struct {
	RequestID string
	SlotID    string
	Note      *string
}

// Approve binds the slot to the request and flips both states in one
// transaction. The request row is locked first, then the slot reservation
// is applied as a guarded write so two approvals can never bind the same
// slot: whichever commits second finds zero rows and aborts.
func (r *RequestRepository) Approve(ctx context.Context, params ApproveParams) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approval transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status models.RequestStatus
	const lockQuery = `SELECT status FROM slot_requests WHERE id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &status, lockQuery, params.RequestID); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("lock slot request: %w", err)
	}
	if status != models.RequestPending {
		err = ErrRequestProcessed
		return err
	}

	now := time.Now().UTC()
	const reserveQuery = `UPDATE parking_slots SET status = 'UNAVAILABLE', updated_at = $2 WHERE id = $1 AND status = 'AVAILABLE'`
	result, err := tx.ExecContext(ctx, reserveQuery, params.SlotID, now)
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check slot reservation rows: %w", err)
	}
	if rows == 0 {
		err = ErrSlotTaken
		return err
	}

	const approveQuery = `UPDATE slot_requests SET status = 'APPROVED', slot_id = $2, note = COALESCE($3, note), updated_at = $4 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, approveQuery, params.RequestID, params.SlotID, params.Note, now); err != nil {
		return fmt.Errorf("approve slot request: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit approval: %w", err)
	}
	return nil
}

// Reject flips a pending request to REJECTED without binding any slot. The
// write is guarded on status; returns sql.ErrNoRows when the request was
// already processed.
func (r *RequestRepository) Reject(ctx context.Context, id string, note *string) error {
	const query = `UPDATE slot_requests SET status = 'REJECTED', note = COALESCE($2, note), updated_at = $3 WHERE id = $1 AND status = 'PENDING'`
	result, err := r.db.ExecContext(ctx, query, id, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("reject slot request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request reject rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
