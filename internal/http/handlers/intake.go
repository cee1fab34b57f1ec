package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"homeservices/internal/domain"
	"homeservices/internal/domain/models"
	"homeservices/internal/metrics"
)

const (
	maxBookingBody = 1 << 20

	invalidJSONMsg  = "Invalid JSON body"
	bodyTooLargeMsg = "Request body too large"
)

var errInvalidBooking = errors.New("invalid booking body")

// CreateBooking handles POST /api/bookings.
func (h *Handlers) CreateBooking(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBookingBody)
	}
	in, err := decodeBooking(c.Request.Body)
	if err != nil {
		metrics.IntakeSubmissions.WithLabelValues("booking", metrics.OutcomeInvalid).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "body_too_large", bodyTooLargeMsg, nil)
			return
		}
		respondError(c, http.StatusBadRequest, "invalid_json", invalidJSONMsg, nil)
		return
	}

	rows, err := h.Bookings.Submit(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create booking", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking submitted", "data": rows})
}

// decodeBooking accepts only a non-empty JSON object. Read errors are returned as is.
func decodeBooking(body io.Reader) (models.BookingInput, error) {
	var in models.BookingInput
	if body == nil {
		return in, errInvalidBooking
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return in, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return in, errInvalidBooking
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return in, errInvalidBooking
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, errInvalidBooking
	}
	return in, nil
}

// CreateWorker handles POST /api/workers (multipart form).
func (h *Handlers) CreateWorker(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		form = &multipart.Form{}
	}

	in := models.WorkerInputFromForm(func(key string) (string, bool) {
		v, ok := form.Value[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	})

	docs := make(map[string]*models.Document, len(models.WorkerDocuments))
	for _, kind := range models.WorkerDocuments {
		doc, err := readDocument(form.File[kind.FormField])
		if err != nil {
			h.fail(c, "read "+kind.FormField, domain.InternalError{Msg: "read upload", Err: err})
			return
		}
		if doc != nil {
			docs[kind.FormField] = doc
		}
	}

	if err := h.Workers.Submit(c.Request.Context(), in, docs); err != nil {
		if domain.IsValidation(err) {
			RespondDomainError(c, err)
			return
		}
		h.fail(c, "create worker", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted"})
}

// readDocument returns nil for an absent part or an empty file input.
func readDocument(parts []*multipart.FileHeader) (*models.Document, error) {
	if len(parts) == 0 {
		return nil, nil
	}
	fh := parts[0]
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &models.Document{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
