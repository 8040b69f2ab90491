package dto

import (
	"time"

	"github.com/parkgrid/parkgrid-api/internal/models"
)

// CreateSlotRequestPayload opens a new slot request for one of the
// caller's vehicles.
type CreateSlotRequestPayload struct {
	VehicleID string  `json:"vehicle_id" validate:"required"`
	Note      *string `json:"note" validate:"omitempty,max=500"`
}

// UpdateSlotRequestPayload edits a still-pending request. Nil fields are
// left untouched.
type UpdateSlotRequestPayload struct {
	VehicleID *string `json:"vehicle_id"`
	Note      *string `json:"note" validate:"omitempty,max=500"`
}

// UpdateRequestStatusPayload carries an admin decision on a request. SlotID
// optionally pins the approval to a specific slot instead of auto-allocating.
type UpdateRequestStatusPayload struct {
	Status models.RequestStatus `json:"status" validate:"required"`
	SlotID *string              `json:"slot_id"`
	Note   *string              `json:"note" validate:"omitempty,max=500"`
}

// SlotRequestItem is the composed listing row for slot requests, joining
// the owning user, the vehicle and, once approved, the assigned slot.
type SlotRequestItem struct {
	ID           string               `db:"id" json:"id"`
	UserID       string               `db:"user_id" json:"user_id"`
	UserFullName string               `db:"user_full_name" json:"user_full_name"`
	UserEmail    string               `db:"user_email" json:"user_email"`
	VehicleID    string               `db:"vehicle_id" json:"vehicle_id"`
	PlateNumber  string               `db:"plate_number" json:"plate_number"`
	VehicleType  models.VehicleType   `db:"vehicle_type" json:"vehicle_type"`
	VehicleSize  models.VehicleSize   `db:"vehicle_size" json:"vehicle_size"`
	SlotID       *string              `db:"slot_id" json:"slot_id,omitempty"`
	SlotNumber   *string              `db:"slot_number" json:"slot_number,omitempty"`
	SlotLocation *models.SlotLocation `db:"slot_location" json:"slot_location,omitempty"`
	Status       models.RequestStatus `db:"status" json:"status"`
	Note         *string              `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `db:"updated_at" json:"updated_at"`
}
