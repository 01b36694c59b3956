package models

import "time"

// Limit periods accepted by the rate limiter configuration.
var LimitPeriods = []string{"minute", "hour", "day", "7-day", "30-day"}

// Limit types scope a rate limit to an instance, user, role, or service.
var LimitTypes = []string{
	"instance",
	"instance.user",
	"instance.each_user",
	"instance.service",
	"instance.role",
	"instance.user.service",
	"instance.each_user.service",
	"instance.service.endpoint",
}

type Limit struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Rate         int       `json:"rate"`
	Period       string    `json:"period"`
	UserID       *int64    `json:"user_id"`
	RoleID       *int64    `json:"role_id"`
	ServiceID    *int64    `json:"service_id"`
	Endpoint     string    `json:"endpoint"`
	IsActive     bool      `json:"is_active"`
	CreatedDate  time.Time `json:"created_date"`
	LastModified time.Time `json:"last_modified_date"`
}
