// Package views holds the server-rendered pages of the landing page and admin panel.
package views

import (
	"embed"
	"html/template"

	"homeservices/internal/domain/models"
	"homeservices/internal/utils"
)

//go:embed *.html
var files embed.FS

// Funcs are available to every page.
var Funcs = template.FuncMap{
	"txt": func(t *models.Text) string { return t.Value() },
	"ts":  utils.DisplayTimestamp,
}

// Templates parses every page. Each page is addressed by its file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "*.html")
}

// BookingStatuses and WorkerStatuses are the actions offered by the admin tables.
var (
	BookingStatuses = []string{"confirmed", "completed", "cancelled"}
	WorkerStatuses  = []string{"approved", "rejected"}
)
