package domain

import "time"

// Status is a free-text lifecycle label; only the initial values are fixed.
type Status string

const (
	BookingRequested Status = "requested"
	WorkerPending    Status = "pending"
)

const (
	TableBookings = "bookings"
	TableWorkers  = "workers"

	ColumnCreatedAt = "created_at"
	ColumnStatus    = "status"
	ColumnID        = "id"
)

// AdminSession is the authenticated admin identity carried on a request.
type AdminSession struct {
	ID        string    `json:"sid"`
	Username  string    `json:"sub"`
	ExpiresAt time.Time `json:"exp"`
}
