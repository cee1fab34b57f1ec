package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"homeservices/internal/domain/models"
	"homeservices/internal/utils"
)

// ExportService renders the admin tables to PDF.
type ExportService struct {
	Bookings BookingService
	Workers  WorkerService
	Log      *zap.Logger
	Now      func() time.Time
}

type pdfColumn struct {
	Title string
	Width float64
}

var bookingColumns = []pdfColumn{
	{"ID", 10}, {"Name", 28}, {"Phone", 22}, {"Email", 34}, {"Service", 22},
	{"Date", 18}, {"Time", 12}, {"Duration", 14}, {"Address", 38}, {"Notes", 27},
	{"Status", 18}, {"Created", 32},
}

var workerColumns = []pdfColumn{
	{"ID", 10}, {"Name", 28}, {"Phone", 22}, {"Email", 34}, {"City", 20},
	{"Service", 22}, {"Experience", 18}, {"Availability", 20}, {"Address", 40},
	{"Docs", 14}, {"Status", 18}, {"Created", 30},
}

func (s ExportService) BookingsPDF(ctx context.Context) ([]byte, string, error) {
	list, err := s.Bookings.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{
			b.ID.String(), b.FullName.Value(), b.Phone.Value(), b.Email.Value(),
			b.ServiceType.Value(), b.Date.Value(), b.Time.Value(), b.Duration.Value(),
			b.Address.Value(), b.Notes.Value(), string(b.Status), utils.DisplayTimestamp(b.CreatedAt),
		})
	}
	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "export", "bookings_pdf", fmt.Sprintf("rows=%d", len(rows)))
	return s.render("Bookings", "bookings", bookingColumns, rows)
}

func (s ExportService) WorkersPDF(ctx context.Context) ([]byte, string, error) {
	list, err := s.Workers.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]string, 0, len(list))
	for _, w := range list {
		rows = append(rows, []string{
			w.ID.String(), w.FullName.Value(), w.Phone.Value(), w.Email.Value(), w.City.Value(),
			w.ServiceType.Value(), w.Experience.Value(), w.Availability.Value(), w.Address.Value(),
			documentCount(w), string(w.Status), utils.DisplayTimestamp(w.CreatedAt),
		})
	}
	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "export", "workers_pdf", fmt.Sprintf("rows=%d", len(rows)))
	return s.render("Worker applications", "workers", workerColumns, rows)
}

func (s ExportService) render(title, name string, cols []pdfColumn, rows [][]string) ([]byte, string, error) {
	now := s.now()

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range cols {
			pdf.CellFormat(c.Width, 7, c.Title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d records", utils.FormatDateTime(now), len(rows)))
	pdf.Ln(9)
	header()

	if len(rows) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 6, "No records.")
	}
	for _, row := range rows {
		for i, c := range cols {
			cell := ""
			if i < len(row) {
				cell = fit(pdf, tr(safe(row[i], "-")), c.Width-2)
			}
			pdf.CellFormat(c.Width, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_%s.pdf", safeFilenamePart(name), now.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func documentCount(w models.WorkerApplication) string {
	n := 0
	for _, u := range []*models.Text{w.AadhaarURL, w.PanURL, w.PhotoURL} {
		if strings.TrimSpace(u.Value()) != "" {
			n++
		}
	}
	return fmt.Sprintf("%d/3", n)
}

// fit shortens s with a trailing "..." until it fits in width mm.
// s is already in the single-byte font encoding, so it is cut by bytes.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
