package services

import (
	"testing"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

func TestValidateLimit(t *testing.T) {
	uid := int64(3)
	sid := int64(9)

	cases := []struct {
		name  string
		limit models.Limit
		ok    bool
	}{
		{"instance wide", models.Limit{Name: "all", Type: "instance", Rate: 100, Period: "minute"}, true},
		{"user scoped with id", models.Limit{Name: "u", Type: "instance.user", Rate: 10, Period: "hour", UserID: &uid}, true},
		{"user scoped missing id", models.Limit{Name: "u", Type: "instance.user", Rate: 10, Period: "hour"}, false},
		{"each user needs no id", models.Limit{Name: "e", Type: "instance.each_user", Rate: 10, Period: "day"}, true},
		{"service scoped missing id", models.Limit{Name: "s", Type: "instance.service", Rate: 10, Period: "day"}, false},
		{"endpoint scoped", models.Limit{Name: "ep", Type: "instance.service.endpoint", Rate: 5, Period: "minute", ServiceID: &sid, Endpoint: "/api/v2/db"}, true},
		{"endpoint missing path", models.Limit{Name: "ep", Type: "instance.service.endpoint", Rate: 5, Period: "minute", ServiceID: &sid}, false},
		{"zero rate", models.Limit{Name: "z", Type: "instance", Rate: 0, Period: "minute"}, false},
		{"bad period", models.Limit{Name: "p", Type: "instance", Rate: 1, Period: "decade"}, false},
		{"bad type", models.Limit{Name: "t", Type: "galaxy", Rate: 1, Period: "minute"}, false},
	}

	for _, tc := range cases {
		err := validateLimit(tc.limit)
		if tc.ok && err != nil {
			t.Fatalf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.ok && !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}
