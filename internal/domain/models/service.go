package models

import (
	"encoding/json"
	"time"
)

type Service struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Label        string          `json:"label"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	IsActive     bool            `json:"is_active"`
	Mutable      bool            `json:"mutable"`
	Deletable    bool            `json:"deletable"`
	Config       json.RawMessage `json:"config,omitempty"`
	CreatedDate  time.Time       `json:"created_date"`
	LastModified time.Time       `json:"last_modified_date"`
}
