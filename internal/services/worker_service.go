package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/domain/models"
	"homeservices/internal/metrics"
	"homeservices/internal/objectstore"
	"homeservices/internal/repositories"
	"homeservices/internal/utils"
)

// MissingDocumentsMsg is returned when any identity document part is absent.
const MissingDocumentsMsg = "Aadhaar, PAN and photo files required"

type WorkerService struct {
	Repo    repositories.WorkerRepository
	Objects objectstore.Store
	Log     *zap.Logger
	Now     func() time.Time
}

// Submit uploads the documents in order (aadhaar, pan, photo) and then inserts the
// application with status "pending". Uploads are not rolled back when a later step fails.
func (s WorkerService) Submit(ctx context.Context, in models.WorkerInput, docs map[string]*models.Document) error {
	reqID := utils.RequestIDFrom(ctx)

	for _, kind := range models.WorkerDocuments {
		if docs[kind.FormField] == nil {
			metrics.IntakeSubmissions.WithLabelValues("worker", metrics.OutcomeInvalid).Inc()
			return domain.ValidationError{Field: kind.FormField, Msg: MissingDocumentsMsg}
		}
	}

	phone := utils.SafePathPart(in.Phone.Value())
	stamp := s.now().Unix()

	urls := make(map[string]string, len(models.WorkerDocuments))
	uploaded := make([]string, 0, len(models.WorkerDocuments))
	for _, kind := range models.WorkerDocuments {
		doc := docs[kind.FormField]
		path := fmt.Sprintf("%s/%s_%d_%s", kind.Prefix, phone, stamp, utils.SafeFilename(doc.Filename))

		if err := s.Objects.Upload(ctx, path, doc.Data, contentType(doc)); err != nil {
			metrics.DocumentUploads.WithLabelValues(kind.Prefix, metrics.OutcomeError).Inc()
			metrics.IntakeSubmissions.WithLabelValues("worker", metrics.OutcomeError).Inc()
			s.logOrphans(reqID, uploaded, err)
			return domain.UpstreamError{Service: "object storage", Op: "upload " + kind.Prefix, Err: err}
		}
		metrics.DocumentUploads.WithLabelValues(kind.Prefix, metrics.OutcomeOK).Inc()
		uploaded = append(uploaded, path)
		urls[kind.Column] = s.Objects.PublicURL(path)
	}

	if err := s.Repo.Create(ctx, in, urls, domain.WorkerPending); err != nil {
		metrics.IntakeSubmissions.WithLabelValues("worker", metrics.OutcomeError).Inc()
		s.logOrphans(reqID, uploaded, err)
		return err
	}

	metrics.IntakeSubmissions.WithLabelValues("worker", metrics.OutcomeOK).Inc()
	utils.LogEvent(s.Log, reqID, "worker", "submit", "application stored", zap.Int("documents", len(uploaded)))
	return nil
}

func (s WorkerService) List(ctx context.Context) ([]models.WorkerApplication, error) {
	return s.Repo.List(ctx)
}

func (s WorkerService) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	metrics.AdminStatusUpdates.WithLabelValues(domain.TableWorkers).Inc()
	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "worker", "update_status", "status changed",
		zap.String("id", id), zap.String("status", string(status)))
	return nil
}

func (s WorkerService) logOrphans(reqID string, paths []string, cause error) {
	if len(paths) == 0 || s.Log == nil {
		return
	}
	s.Log.Warn("uploaded documents left without an application row",
		zap.String("request_id", reqID),
		zap.Strings("paths", paths),
		zap.Error(cause),
	)
}

func (s WorkerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func contentType(d *models.Document) string {
	if d.ContentType != "" {
		return d.ContentType
	}
	return "application/octet-stream"
}
