package dto

import "github.com/parkgrid/parkgrid-api/internal/models"

// CreateSlotRequest payload for registering a single parking slot.
type CreateSlotRequest struct {
	SlotNumber  string              `json:"slot_number" validate:"required,min=1,max=16"`
	VehicleType models.VehicleType  `json:"vehicle_type" validate:"required"`
	Size        models.VehicleSize  `json:"size" validate:"required"`
	Location    models.SlotLocation `json:"location" validate:"required"`
}

// UpdateSlotRequest payload for editing a slot. Nil fields are left
// untouched. Status transitions ride through here as well so admins can
// take a slot out of service manually.
type UpdateSlotRequest struct {
	SlotNumber  *string              `json:"slot_number" validate:"omitempty,min=1,max=16"`
	VehicleType *models.VehicleType  `json:"vehicle_type"`
	Size        *models.VehicleSize  `json:"size"`
	Location    *models.SlotLocation `json:"location"`
	Status      *models.SlotStatus   `json:"status"`
}

// BulkCreateSlotsRequest provisions a numbered run of identical slots in
// one transaction, e.g. prefix "N-" with start 1 and count 20 yields
// N-1 through N-20.
type BulkCreateSlotsRequest struct {
	Prefix      string              `json:"prefix" validate:"required,min=1,max=8"`
	StartNumber int                 `json:"start_number" validate:"min=0"`
	Count       int                 `json:"count" validate:"required,min=1,max=500"`
	VehicleType models.VehicleType  `json:"vehicle_type" validate:"required"`
	Size        models.VehicleSize  `json:"size" validate:"required"`
	Location    models.SlotLocation `json:"location" validate:"required"`
}

// BulkCreateSlotsResponse reports the outcome of a bulk provision.
type BulkCreateSlotsResponse struct {
	Created int                  `json:"created"`
	Slots   []models.ParkingSlot `json:"slots"`
}
