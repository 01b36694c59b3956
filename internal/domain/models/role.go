package models

import "time"

type Role struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	IsActive      bool                `json:"is_active"`
	ServiceAccess []RoleServiceAccess `json:"role_service_access_by_role_id,omitempty"`
	CreatedDate   time.Time           `json:"created_date"`
	LastModified  time.Time           `json:"last_modified_date"`
}

// RoleServiceAccess grants a role access to a service component.
// VerbMask is a bitmask over GET=1, POST=2, PUT=4, PATCH=8, DELETE=16.
type RoleServiceAccess struct {
	ID            int64  `json:"id"`
	RoleID        int64  `json:"role_id"`
	ServiceID     *int64 `json:"service_id"`
	Component     string `json:"component"`
	VerbMask      int    `json:"verb_mask"`
	RequestorMask int    `json:"requestor_mask"`
}
