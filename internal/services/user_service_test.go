package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
)

func TestUserServiceCreate_RejectsBadEmail(t *testing.T) {
	svc := UserService{}
	_, err := svc.Create(models.User{Name: "Jo", Email: "not-an-email"}, "secret1")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserServiceCreate_RejectsShortPassword(t *testing.T) {
	svc := UserService{}
	_, err := svc.Create(models.User{Name: "Jo", Email: "jo@example.com"}, "abc")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserServiceCreate_ConflictOnDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM user").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := UserService{Repo: repositories.UserRepository{DB: db}}
	_, err = svc.Create(models.User{Name: "Jo", Email: "jo@example.com"}, "secret1")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	now := time.Now()

	authRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "name", "username", "first_name", "last_name", "email", "phone",
			"is_active", "is_sys_admin", "role_id", "last_login_date",
			"created_date", "last_modified_date", "password_hash",
		}).AddRow(1, "Admin", "admin", "", "", "admin@example.com", "", true, true, nil, nil, now, now, string(hash))
	}

	mock.ExpectQuery("FROM user").WithArgs("admin@example.com", "admin@example.com").
		WillReturnRows(authRows())
	mock.ExpectQuery("FROM user").WithArgs("admin@example.com", "admin@example.com").
		WillReturnRows(authRows())
	mock.ExpectExec("UPDATE user SET last_login_date").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := UserService{Repo: repositories.UserRepository{DB: db}}

	u, err := svc.Authenticate("Admin@Example.com", "right-horse")
	if err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
	if u.ID != 1 || !u.IsSysAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Authenticate("admin@example.com", "wrong"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUserServiceAuthenticate_UnknownAccountIndistinct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM user").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := UserService{Repo: repositories.UserRepository{DB: db}}
	if _, err := svc.Authenticate("ghost@example.com", "whatever"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUserServiceDelete_SelfDeleteForbidden(t *testing.T) {
	svc := UserService{}
	if err := svc.Delete(7, 7); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
