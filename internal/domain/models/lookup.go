package models

import "time"

// Lookup is a named key/value pair substituted into service configs.
// Private values are write-only: they are stored but never returned.
type Lookup struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Value        string    `json:"value"`
	Private      bool      `json:"private"`
	Description  string    `json:"description"`
	CreatedDate  time.Time `json:"created_date"`
	LastModified time.Time `json:"last_modified_date"`
}

type EmailTemplate struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	To           string    `json:"to"`
	Subject      string    `json:"subject"`
	BodyText     string    `json:"body_text"`
	BodyHTML     string    `json:"body_html"`
	CreatedDate  time.Time `json:"created_date"`
	LastModified time.Time `json:"last_modified_date"`
}
