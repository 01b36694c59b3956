package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

func TestGenerateLimitsReport(t *testing.T) {
	svc := ReportsService{
		Loader: func() ([]models.Limit, error) {
			return []models.Limit{
				{ID: 1, Name: "api-wide", Type: "instance", Rate: 1000, Period: "hour", IsActive: true},
				{ID: 2, Name: "per-user", Type: "instance.each_user", Rate: 60, Period: "minute"},
			}, nil
		},
	}

	data, filename, err := svc.GenerateLimitsReport()
	if err != nil {
		t.Fatalf("report error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "LIMITS_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abcdefghij", 8); got != "abcde..." {
		t.Fatalf("unexpected truncation: %q", got)
	}

	// multi-byte names must never be cut mid-character
	got := truncate(strings.Repeat("ü", 20), 8)
	if got != strings.Repeat("ü", 5)+"..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func TestGenerateLimitsReport_EmptySet(t *testing.T) {
	svc := ReportsService{
		Loader: func() ([]models.Limit, error) { return nil, nil },
	}
	data, _, err := svc.GenerateLimitsReport()
	if err != nil {
		t.Fatalf("report error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty report should still render")
	}
}
