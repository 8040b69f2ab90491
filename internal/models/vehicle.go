package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// VehicleType enumerates the supported vehicle categories.
type VehicleType string

const (
	VehicleCar        VehicleType = "CAR"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleTruck      VehicleType = "TRUCK"
	VehicleVan        VehicleType = "VAN"
)

// Valid reports whether the vehicle type belongs to the closed set.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleCar, VehicleMotorcycle, VehicleTruck, VehicleVan:
		return true
	}
	return false
}

// VehicleSize enumerates the supported vehicle size classes.
type VehicleSize string

const (
	SizeSmall  VehicleSize = "SMALL"
	SizeMedium VehicleSize = "MEDIUM"
	SizeLarge  VehicleSize = "LARGE"
)

// Valid reports whether the size belongs to the closed set.
func (s VehicleSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Vehicle represents a registered vehicle owned by exactly one user.
type Vehicle struct {
	ID          string         `db:"id" json:"id"`
	OwnerID     string         `db:"owner_id" json:"owner_id"`
	PlateNumber string         `db:"plate_number" json:"plate_number"`
	VehicleType VehicleType    `db:"vehicle_type" json:"vehicle_type"`
	Size        VehicleSize    `db:"size" json:"size"`
	Model       *string        `db:"model" json:"model,omitempty"`
	Color       *string        `db:"color" json:"color,omitempty"`
	Attributes  types.JSONText `db:"attributes" json:"attributes,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// VehicleFilter captures filtering criteria for listing vehicles.
type VehicleFilter struct {
	OwnerID     string
	VehicleType *VehicleType
	Size        *VehicleSize
	Search      string
	Page        int
	PageSize    int
}
