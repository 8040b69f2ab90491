package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parkgrid/parkgrid-api/internal/models"
)

const vehicleColumns = `id, owner_id, plate_number, vehicle_type, size, model, color, attributes, created_at, updated_at`

// VehicleRepository provides database access for registered vehicles.
type VehicleRepository struct {
	db *sqlx.DB
}

// NewVehicleRepository creates a new instance of VehicleRepository.
func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// FindByID returns a vehicle by identifier.
func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1 LIMIT 1`, vehicleColumns)
	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find vehicle by id: %w", err)
	}
	return &vehicle, nil
}

// ExistsByPlate reports whether a plate number is already registered,
// optionally excluding one vehicle id (for updates).
func (r *VehicleRepository) ExistsByPlate(ctx context.Context, plate, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM vehicles WHERE UPPER(plate_number) = UPPER($1)`
	args := []interface{}{plate}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check plate number: %w", err)
	}
	return count > 0, nil
}

// List returns vehicles based on filters with total count.
func (r *VehicleRepository) List(ctx context.Context, filter models.VehicleFilter) ([]models.Vehicle, int, error) {
	baseQuery := `FROM vehicles WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)+1))
		args = append(args, filter.OwnerID)
	}
	if filter.VehicleType != nil {
		conditions = append(conditions, fmt.Sprintf("vehicle_type = $%d", len(args)+1))
		args = append(args, *filter.VehicleType)
	}
	if filter.Size != nil {
		conditions = append(conditions, fmt.Sprintf("size = $%d", len(args)+1))
		args = append(args, *filter.Size)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(plate_number) LIKE $%d OR LOWER(COALESCE(model, '')) LIKE $%d)", len(args)+1, len(args)+1))
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", vehicleColumns, baseQuery, pageSize, offset)

	var vehicles []models.Vehicle
	if err := r.db.SelectContext(ctx, &vehicles, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	return vehicles, total, nil
}

// Create inserts a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = now
	}
	vehicle.UpdatedAt = now

	const query = `INSERT INTO vehicles (id, owner_id, plate_number, vehicle_type, size, model, color, attributes, created_at, updated_at) VALUES (:id, :owner_id, :plate_number, :vehicle_type, :size, :model, :color, :attributes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, vehicle); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// Update updates mutable fields of a vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.UpdatedAt = time.Now().UTC()
	const query = `UPDATE vehicles SET plate_number = :plate_number, vehicle_type = :vehicle_type, size = :size, model = :model, color = :color, attributes = :attributes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, vehicle); err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete removes a vehicle together with its historical slot requests.
// Slots still bound through an approved request are released first so no
// slot stays reserved for a vehicle that no longer exists.
func (r *VehicleRepository) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vehicle delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const releaseQuery = `UPDATE parking_slots SET status = 'AVAILABLE', updated_at = $2 WHERE id IN (SELECT slot_id FROM slot_requests WHERE vehicle_id = $1 AND status = 'APPROVED' AND slot_id IS NOT NULL)`
	if _, err = tx.ExecContext(ctx, releaseQuery, id, now); err != nil {
		return fmt.Errorf("release assigned slots: %w", err)
	}

	const purgeQuery = `DELETE FROM slot_requests WHERE vehicle_id = $1`
	if _, err = tx.ExecContext(ctx, purgeQuery, id); err != nil {
		return fmt.Errorf("purge vehicle requests: %w", err)
	}

	const deleteQuery = `DELETE FROM vehicles WHERE id = $1`
	if _, err = tx.ExecContext(ctx, deleteQuery, id); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit vehicle delete: %w", err)
	}
	return nil
}
