package models

import "time"

type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Username      string     `json:"username"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PasswordHash  string     `json:"-"` // never serialized to clients
	IsActive      bool       `json:"is_active"`
	IsSysAdmin    bool       `json:"is_sys_admin"`
	RoleID        *int64     `json:"role_id"`
	RoleByRoleID  *Role      `json:"role_by_role_id,omitempty"`
	LastLoginDate *time.Time `json:"last_login_date"`
	CreatedDate   time.Time  `json:"created_date"`
	LastModified  time.Time  `json:"last_modified_date"`
}
