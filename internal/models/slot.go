package models

import "time"

// SlotStatus enumerates parking slot availability states.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "AVAILABLE"
	SlotUnavailable SlotStatus = "UNAVAILABLE"
)

// Valid reports whether the status belongs to the closed set.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotUnavailable:
		return true
	}
	return false
}

// SlotLocation enumerates the lot quadrants a slot can live in.
type SlotLocation string

const (
	LocationNorth SlotLocation = "NORTH"
	LocationSouth SlotLocation = "SOUTH"
	LocationEast  SlotLocation = "EAST"
	LocationWest  SlotLocation = "WEST"
)

// Valid reports whether the location belongs to the closed set.
func (l SlotLocation) Valid() bool {
	switch l {
	case LocationNorth, LocationSouth, LocationEast, LocationWest:
		return true
	}
	return false
}

// ParkingSlot represents one physical parking slot. A slot is UNAVAILABLE
// exactly while it is bound to an approved slot request.
type ParkingSlot struct {
	ID          string       `db:"id" json:"id"`
	SlotNumber  string       `db:"slot_number" json:"slot_number"`
	VehicleType VehicleType  `db:"vehicle_type" json:"vehicle_type"`
	Size        VehicleSize  `db:"size" json:"size"`
	Location    SlotLocation `db:"location" json:"location"`
	Status      SlotStatus   `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// CompatibleWith reports whether the slot matches the vehicle's type and size
// exactly. No substitution or nearest-size fallback is performed.
func (s *ParkingSlot) CompatibleWith(v *Vehicle) bool {
	return s.VehicleType == v.VehicleType && s.Size == v.Size
}

// SlotFilter captures filtering criteria for listing parking slots.
type SlotFilter struct {
	Search        string
	Location      *SlotLocation
	OnlyAvailable bool
	Page          int
	PageSize      int
}
