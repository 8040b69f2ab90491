package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
)

const slotColumns = `id, slot_number, vehicle_type, size, location, status, created_at, updated_at`

// SlotRepository provides database access for parking slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository creates a new instance of SlotRepository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// FindByID returns a parking slot by identifier.
func (r *SlotRepository) FindByID(ctx context.Context, id string) (*models.ParkingSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM parking_slots WHERE id = $1 LIMIT 1`, slotColumns)
	var slot models.ParkingSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find slot by id: %w", err)
	}
	return &slot, nil
}

// ExistsBySlotNumber reports whether a slot number is already taken,
// optionally excluding one slot id (for updates).
func (r *SlotRepository) ExistsBySlotNumber(ctx context.Context, number, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM parking_slots WHERE UPPER(slot_number) = UPPER($1)`
	args := []interface{}{number}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check slot number: %w", err)
	}
	return count > 0, nil
}

// FindCompatible returns the first available slot matching the vehicle type
// and size exactly. Rows are ordered by slot number so allocation is
// deterministic. Returns sql.ErrNoRows when nothing matches.
func (r *SlotRepository) FindCompatible(ctx context.Context, vehicleType models.VehicleType, size models.VehicleSize) (*models.ParkingSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM parking_slots WHERE status = 'AVAILABLE' AND vehicle_type = $1 AND size = $2 ORDER BY slot_number ASC LIMIT 1`, slotColumns)
	var slot models.ParkingSlot
	if err := r.db.GetContext(ctx, &slot, query, vehicleType, size); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find compatible slot: %w", err)
	}
	return &slot, nil
}

// List returns parking slots based on filters with total count.
func (r *SlotRepository) List(ctx context.Context, filter models.SlotFilter) ([]models.ParkingSlot, int, error) {
	baseQuery := `FROM parking_slots WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Location != nil {
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)+1))
		args = append(args, *filter.Location)
	}
	if filter.OnlyAvailable {
		conditions = append(conditions, "status = 'AVAILABLE'")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(slot_number) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY slot_number ASC LIMIT %d OFFSET %d", slotColumns, baseQuery, pageSize, offset)

	var slots []models.ParkingSlot
	if err := r.db.SelectContext(ctx, &slots, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list slots: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count slots: %w", err)
	}

	return slots, total, nil
}

// Create inserts a new parking slot.
func (r *SlotRepository) Create(ctx context.Context, slot *models.ParkingSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.Status == "" {
		slot.Status = models.SlotAvailable
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `INSERT INTO parking_slots (id, slot_number, vehicle_type, size, location, status, created_at, updated_at) VALUES (:id, :slot_number, :vehicle_type, :size, :location, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// BulkCreate inserts a batch of slots inside one transaction. When any of
// the requested slot numbers already exist the whole batch is abandoned and
// the clashing numbers are returned.
func (r *SlotRepository) BulkCreate(ctx context.Context, slots []models.ParkingSlot) (clashes []string, err error) {
	if len(slots) == 0 {
		return nil, nil
	}
	numbers := make([]string, len(slots))
	for i := range slots {
		numbers[i] = slots[i].SlotNumber
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin bulk slot create: %w", err)
	}
	defer func() {
		if err != nil || len(clashes) > 0 {
			_ = tx.Rollback()
		}
	}()

	const clashQuery = `SELECT slot_number FROM parking_slots WHERE slot_number = ANY($1) ORDER BY slot_number ASC`
	if err = tx.SelectContext(ctx, &clashes, clashQuery, pq.Array(numbers)); err != nil {
		return nil, fmt.Errorf("check slot number clashes: %w", err)
	}
	if len(clashes) > 0 {
		return clashes, nil
	}

	now := time.Now().UTC()
	const insertQuery = `INSERT INTO parking_slots (id, slot_number, vehicle_type, size, location, status, created_at, updated_at) VALUES (:id, :slot_number, :vehicle_type, :size, :location, :status, :created_at, :updated_at)`
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		if slots[i].Status == "" {
			slots[i].Status = models.SlotAvailable
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, insertQuery, slots[i]); err != nil {
			return nil, fmt.Errorf("insert slot %s: %w", slots[i].SlotNumber, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk slot create: %w", err)
	}
	return nil, nil
}

// Update updates mutable fields of a parking slot.
func (r *SlotRepository) Update(ctx context.Context, slot *models.ParkingSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE parking_slots SET slot_number = :slot_number, vehicle_type = :vehicle_type, size = :size, location = :location, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	return nil
}

// Delete removes a parking slot. The delete is guarded on availability so a
// slot that got assigned between the caller's check and this statement is
// never removed. Returns sql.ErrNoRows when no available row matched.
func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM parking_slots WHERE id = $1 AND status = 'AVAILABLE'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check slot delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Occupancy aggregates slot usage grouped by the given column. Only the
// fixed column names used by the report service are accepted.
func (r *SlotRepository) Occupancy(ctx context.Context, groupBy string) ([]dto.OccupancyBreakdown, error) {
	allowed := map[string]bool{
		"location":     true,
		"vehicle_type": true,
		"size":         true,
	}
	if !allowed[groupBy] {
		return nil, fmt.Errorf("unsupported occupancy grouping: %s", groupBy)
	}
	query := fmt.Sprintf(`SELECT %s AS key,
       COUNT(*) AS total,
       SUM(CASE WHEN status = 'UNAVAILABLE' THEN 1 ELSE 0 END) AS occupied
FROM parking_slots
GROUP BY %s
ORDER BY %s ASC`, groupBy, groupBy, groupBy)

	var rows []dto.OccupancyBreakdown
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("aggregate slot occupancy: %w", err)
	}
	return rows, nil
}
