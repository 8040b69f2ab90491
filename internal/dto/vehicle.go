package dto

import (
	"encoding/json"

	"github.com/parkgrid/parkgrid-api/internal/models"
)

// CreateVehicleRequest payload for registering a vehicle.
type CreateVehicleRequest struct {
	PlateNumber string             `json:"plate_number" validate:"required,min=2,max=16"`
	VehicleType models.VehicleType `json:"vehicle_type" validate:"required"`
	Size        models.VehicleSize `json:"size" validate:"required"`
	Model       *string            `json:"model" validate:"omitempty,max=100"`
	Color       *string            `json:"color" validate:"omitempty,max=50"`
	Attributes  json.RawMessage    `json:"attributes,omitempty"`
}

// UpdateVehicleRequest payload for editing a vehicle. Nil fields are left
// untouched.
type UpdateVehicleRequest struct {
	PlateNumber *string             `json:"plate_number" validate:"omitempty,min=2,max=16"`
	VehicleType *models.VehicleType `json:"vehicle_type"`
	Size        *models.VehicleSize `json:"size"`
	Model       *string             `json:"model" validate:"omitempty,max=100"`
	Color       *string             `json:"color" validate:"omitempty,max=50"`
	Attributes  json.RawMessage     `json:"attributes,omitempty"`
}
