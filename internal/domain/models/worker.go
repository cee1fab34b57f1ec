package models

import "homeservices/internal/domain"

// WorkerApplication is a row of the workers table.
type WorkerApplication struct {
	ID             ID            `json:"id,omitempty"`
	FullName       *Text         `json:"full_name"`
	Phone          *Text         `json:"phone"`
	Email          *Text         `json:"email"`
	City           *Text         `json:"city"`
	ServiceType    *Text         `json:"service_type"`
	Experience     *Text         `json:"experience"`
	Availability   *Text         `json:"availability"`
	Address        *Text         `json:"address"`
	Certifications *Text         `json:"certifications"`
	Info           *Text         `json:"info"`
	AadhaarURL     *Text         `json:"aadhaar_url"`
	PanURL         *Text         `json:"pan_url"`
	PhotoURL       *Text         `json:"photo_url"`
	Status         domain.Status `json:"status"`
	CreatedAt      string        `json:"created_at,omitempty"`
}

// WorkerInput carries the text part of a worker application form.
type WorkerInput struct {
	FullName       *Text
	Phone          *Text
	Email          *Text
	City           *Text
	ServiceType    *Text
	Experience     *Text
	Availability   *Text
	Address        *Text
	Certifications *Text
	Info           *Text
}

// WorkerFormFields lists the text form keys of a worker application.
var WorkerFormFields = []string{
	"full_name", "phone", "email", "city", "service_type",
	"experience", "availability", "address", "certifications", "info",
}

// WorkerInputFromForm builds a WorkerInput; lookup reports whether a key was present.
func WorkerInputFromForm(lookup func(key string) (string, bool)) WorkerInput {
	get := func(k string) *Text { return NewText(lookup(k)) }
	return WorkerInput{
		FullName:       get("full_name"),
		Phone:          get("phone"),
		Email:          get("email"),
		City:           get("city"),
		ServiceType:    get("service_type"),
		Experience:     get("experience"),
		Availability:   get("availability"),
		Address:        get("address"),
		Certifications: get("certifications"),
		Info:           get("info"),
	}
}

// Columns returns the insertable text columns; document urls are added by the caller.
func (in WorkerInput) Columns() map[string]any {
	return map[string]any{
		"full_name":      textOrNil(in.FullName),
		"phone":          textOrNil(in.Phone),
		"email":          textOrNil(in.Email),
		"city":           textOrNil(in.City),
		"service_type":   textOrNil(in.ServiceType),
		"experience":     textOrNil(in.Experience),
		"availability":   textOrNil(in.Availability),
		"address":        textOrNil(in.Address),
		"certifications": textOrNil(in.Certifications),
		"info":           textOrNil(in.Info),
	}
}
