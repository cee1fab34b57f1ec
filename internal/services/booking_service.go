package services

import (
	"context"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/domain/models"
	"homeservices/internal/metrics"
	"homeservices/internal/repositories"
	"homeservices/internal/utils"
)

type BookingService struct {
	Repo repositories.BookingRepository
	Log  *zap.Logger
}

// Submit stores a public booking. The stored status is always "requested".
func (s BookingService) Submit(ctx context.Context, in models.BookingInput) ([]models.Booking, error) {
	reqID := utils.RequestIDFrom(ctx)

	rows, err := s.Repo.Create(ctx, in, domain.BookingRequested)
	if err != nil {
		metrics.IntakeSubmissions.WithLabelValues("booking", metrics.OutcomeError).Inc()
		utils.LogEvent(s.Log, reqID, "booking", "submit_error", err.Error())
		return nil, err
	}

	metrics.IntakeSubmissions.WithLabelValues("booking", metrics.OutcomeOK).Inc()
	utils.LogEvent(s.Log, reqID, "booking", "submit", "booking stored", zap.Int("rows", len(rows)))
	return rows, nil
}

func (s BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.List(ctx)
}

func (s BookingService) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	metrics.AdminStatusUpdates.WithLabelValues(domain.TableBookings).Inc()
	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "booking", "update_status", "status changed",
		zap.String("id", id), zap.String("status", string(status)))
	return nil
}
