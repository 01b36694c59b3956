package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
)

func TestGenerateAPIKey_Format(t *testing.T) {
	key, err := generateAPIKey()
	if err != nil {
		t.Fatalf("keygen error: %v", err)
	}
	if len(key) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(key))
	}
	for _, c := range key {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("non-hex char %q in key", c)
		}
	}
}

func TestAppServiceCreate_AssignsGeneratedKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM app").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO app").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("FROM app.*WHERE id = \\?").WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "api_key", "description", "is_active", "type", "url",
			"storage_service_id", "storage_container", "path",
			"created_date", "last_modified_date",
		}).AddRow(12, "console", "deadbeef", "", true, models.AppTypeRemoteURL, "https://example.com", nil, "", "", now, now))

	svc := AppService{
		Repo:   repositories.AppRepository{DB: db},
		KeyGen: func() (string, error) { return "deadbeef", nil },
	}
	created, err := svc.Create(models.App{Name: "console", Type: models.AppTypeRemoteURL, URL: "https://example.com", IsActive: true})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.APIKey != "deadbeef" {
		t.Fatalf("expected generated key on record, got %q", created.APIKey)
	}
	if created.LaunchURL != "https://example.com" {
		t.Fatalf("launch URL not derived, got %q", created.LaunchURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppServiceCreate_RemoteURLRequired(t *testing.T) {
	svc := AppService{}
	_, err := svc.Create(models.App{Name: "x", Type: models.AppTypeRemoteURL})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
