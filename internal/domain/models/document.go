package models

// DocumentKind describes one identity document of a worker application.
type DocumentKind struct {
	FormField string // multipart part name
	Prefix    string // object storage prefix
	Column    string // workers column receiving the public url
	Label     string
}

// WorkerDocuments is the upload order: aadhaar, then pan, then photo.
var WorkerDocuments = []DocumentKind{
	{FormField: "aadhar_card", Prefix: "aadhaar", Column: "aadhaar_url", Label: "Aadhaar"},
	{FormField: "pan_card", Prefix: "pan", Column: "pan_url", Label: "PAN"},
	{FormField: "photo", Prefix: "photos", Column: "photo_url", Label: "photo"},
}

// Document is one uploaded file.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}
