package repositories

import (
	"context"

	"homeservices/internal/domain"
	"homeservices/internal/domain/models"
	"homeservices/internal/store"
)

const storeService = "table store"

type BookingRepository struct {
	Store store.Store
}

// Create inserts one booking and returns the rows echoed back by the store.
func (r BookingRepository) Create(ctx context.Context, in models.BookingInput, status domain.Status) ([]models.Booking, error) {
	row := store.Row(in.Columns())
	row[domain.ColumnStatus] = string(status)

	rows, err := r.Store.Insert(ctx, domain.TableBookings, row)
	if err != nil {
		return nil, domain.UpstreamError{Service: storeService, Op: "insert bookings", Err: err}
	}

	out := []models.Booking{}
	if err := store.Decode(rows, &out); err != nil {
		return nil, domain.InternalError{Msg: "decode inserted booking", Err: err}
	}
	return out, nil
}

// List returns every booking, newest first.
func (r BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.Store.Select(ctx, domain.TableBookings, store.Order{Column: domain.ColumnCreatedAt, Desc: true})
	if err != nil {
		return nil, domain.UpstreamError{Service: storeService, Op: "select bookings", Err: err}
	}

	out := []models.Booking{}
	if err := store.Decode(rows, &out); err != nil {
		return nil, domain.InternalError{Msg: "decode bookings", Err: err}
	}
	return out, nil
}

// UpdateStatus sets the status of one booking. An unknown id is not an error.
func (r BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	err := r.Store.UpdateByID(ctx, domain.TableBookings, id, store.Row{domain.ColumnStatus: string(status)})
	if err != nil {
		return domain.UpstreamError{Service: storeService, Op: "update bookings", Err: err}
	}
	return nil
}
