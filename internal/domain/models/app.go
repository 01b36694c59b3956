package models

import "time"

// App application types, mirroring the console's launch options.
const (
	AppTypeNone        = 0 // no storage, URL only
	AppTypeProvisioned = 1 // file service storage
	AppTypeRemoteURL   = 2
	AppTypeOnWebServer = 3
)

type App struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	APIKey           string    `json:"api_key"`
	Description      string    `json:"description"`
	IsActive         bool      `json:"is_active"`
	Type             int       `json:"type"`
	URL              string    `json:"url"`
	StorageServiceID *int64    `json:"storage_service_id"`
	StorageContainer string    `json:"storage_container"`
	Path             string    `json:"path"`
	LaunchURL        string    `json:"launch_url"`
	CreatedDate      time.Time `json:"created_date"`
	LastModified     time.Time `json:"last_modified_date"`
}
