package dto

import "time"

// OccupancyReport aggregates slot usage across the whole lot.
type OccupancyReport struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	TotalSlots    int                  `json:"total_slots"`
	OccupiedSlots int                  `json:"occupied_slots"`
	OccupancyRate float64              `json:"occupancy_rate"`
	ByLocation    []OccupancyBreakdown `json:"by_location"`
	ByVehicleType []OccupancyBreakdown `json:"by_vehicle_type"`
	BySize        []OccupancyBreakdown `json:"by_size"`
}

// OccupancyBreakdown is one aggregation bucket of the occupancy report.
type OccupancyBreakdown struct {
	Key      string  `db:"key" json:"key"`
	Total    int     `db:"total" json:"total"`
	Occupied int     `db:"occupied" json:"occupied"`
	Rate     float64 `db:"-" json:"rate"`
}
