package models

import "time"

// RequestStatus enumerates the slot request lifecycle states.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// Valid reports whether the status belongs to the closed set.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// Processed reports whether the request has left the PENDING state.
// Processed requests are terminal and immutable.
func (s RequestStatus) Processed() bool {
	return s == RequestApproved || s == RequestRejected
}

// SlotRequest represents one user's ask for a parking slot for a specific
// vehicle. SlotID is set only once the request is approved.
type SlotRequest struct {
	ID        string        `db:"id" json:"id"`
	UserID    string        `db:"user_id" json:"user_id"`
	VehicleID string        `db:"vehicle_id" json:"vehicle_id"`
	SlotID    *string       `db:"slot_id" json:"slot_id,omitempty"`
	Status    RequestStatus `db:"status" json:"status"`
	Note      *string       `db:"note" json:"note,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// RequestFilter captures filtering criteria for listing slot requests.
// UserID is set by the service layer for non-admin callers so users only
// ever see their own requests.
type RequestFilter struct {
	UserID    string
	VehicleID string
	Status    *RequestStatus
	Page      int
	PageSize  int
}
