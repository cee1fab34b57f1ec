package repositories

import (
	"context"

	"homeservices/internal/domain"
	"homeservices/internal/domain/models"
	"homeservices/internal/store"
)

type WorkerRepository struct {
	Store store.Store
}

// Create inserts one application. urls maps document columns to their public urls.
func (r WorkerRepository) Create(ctx context.Context, in models.WorkerInput, urls map[string]string, status domain.Status) error {
	row := store.Row(in.Columns())
	for col, u := range urls {
		row[col] = u
	}
	row[domain.ColumnStatus] = string(status)

	if _, err := r.Store.Insert(ctx, domain.TableWorkers, row); err != nil {
		return domain.UpstreamError{Service: storeService, Op: "insert workers", Err: err}
	}
	return nil
}

func (r WorkerRepository) List(ctx context.Context) ([]models.WorkerApplication, error) {
	rows, err := r.Store.Select(ctx, domain.TableWorkers, store.Order{Column: domain.ColumnCreatedAt, Desc: true})
	if err != nil {
		return nil, domain.UpstreamError{Service: storeService, Op: "select workers", Err: err}
	}

	out := []models.WorkerApplication{}
	if err := store.Decode(rows, &out); err != nil {
		return nil, domain.InternalError{Msg: "decode workers", Err: err}
	}
	return out, nil
}

func (r WorkerRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	err := r.Store.UpdateByID(ctx, domain.TableWorkers, id, store.Row{domain.ColumnStatus: string(status)})
	if err != nil {
		return domain.UpstreamError{Service: storeService, Op: "update workers", Err: err}
	}
	return nil
}
