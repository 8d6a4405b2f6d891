package models

import "time"

// ExportResult describes a spreadsheet archived to object storage.
type ExportResult struct {
	Object    string    `json:"object"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}
