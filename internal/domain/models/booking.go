package models

import "homeservices/internal/domain"

// Booking is a row of the bookings table.
type Booking struct {
	ID          ID            `json:"id,omitempty"`
	FullName    *Text         `json:"full_name"`
	Phone       *Text         `json:"phone"`
	Email       *Text         `json:"email"`
	ServiceType *Text         `json:"service_type"`
	Date        *Text         `json:"date"`
	Time        *Text         `json:"time"`
	Duration    *Text         `json:"duration"`
	Address     *Text         `json:"address"`
	Notes       *Text         `json:"notes"`
	Status      domain.Status `json:"status"`
	CreatedAt   string        `json:"created_at,omitempty"`
}

// BookingInput carries the public booking fields. Any status sent by the caller is not part of it.
type BookingInput struct {
	FullName    *Text `json:"full_name"`
	Phone       *Text `json:"phone"`
	Email       *Text `json:"email"`
	ServiceType *Text `json:"service_type"`
	Date        *Text `json:"date"`
	Time        *Text `json:"time"`
	Duration    *Text `json:"duration"`
	Address     *Text `json:"address"`
	Notes       *Text `json:"notes"`
}

// Columns returns the insertable column map; missing fields map to nil.
func (in BookingInput) Columns() map[string]any {
	return map[string]any{
		"full_name":    textOrNil(in.FullName),
		"phone":        textOrNil(in.Phone),
		"email":        textOrNil(in.Email),
		"service_type": textOrNil(in.ServiceType),
		"date":         textOrNil(in.Date),
		"time":         textOrNil(in.Time),
		"duration":     textOrNil(in.Duration),
		"address":      textOrNil(in.Address),
		"notes":        textOrNil(in.Notes),
	}
}

func textOrNil(t *Text) any {
	if t == nil {
		return nil
	}
	return string(*t)
}
