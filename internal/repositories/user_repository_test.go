package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
)

func TestBuildUserPatch_AbsentKeysNotTouched(t *testing.T) {
	cols, args, err := buildUserPatch([]byte(`{"name":"Jo"}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cols) != 1 || cols[0] != "name = ?" {
		t.Fatalf("unexpected cols: %v", cols)
	}
	if len(args) != 1 || args[0] != "Jo" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildUserPatch_ExplicitNullRoleIDClears(t *testing.T) {
	cols, args, err := buildUserPatch([]byte(`{"role_id":null}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cols) != 1 || cols[0] != "role_id = ?" {
		t.Fatalf("role_id should be written when key present, cols=%v", cols)
	}
	if args[0] != nil {
		t.Fatalf("explicit null should bind NULL, got %v", args[0])
	}
}

func TestBuildUserPatch_RoleIDAbsentStaysUntouched(t *testing.T) {
	cols, _, err := buildUserPatch([]byte(`{"is_active":false}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, c := range cols {
		if c == "role_id = ?" {
			t.Fatalf("role_id written without key presence")
		}
	}
}

func TestBuildUserPatch_BadPayloadRejected(t *testing.T) {
	_, _, err := buildUserPatch([]byte(`{"is_active":`))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func userRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "username", "first_name", "last_name", "email", "phone",
		"is_active", "is_sys_admin", "role_id", "last_login_date",
		"created_date", "last_modified_date",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, "User", "user", "U", "Ser", "u@example.com", "", true, false, nil, nil, now, now)
	}
	return rows
}

func TestUserRepositoryList_PagedWithCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT id, COALESCE\\(name,''\\).*FROM user.*LIMIT \\? OFFSET \\?").
		WithArgs(true, 2, 2).
		WillReturnRows(userRows(3, 4))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM user").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	repo := UserRepository{DB: db}
	users, total, err := repo.List(domain.ListParams{
		Limit: 2, Offset: 2, Filter: "is_active=true", IncludeCount: true,
	}, false)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryList_AdminScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM user.*WHERE is_sys_admin = 1.*LIMIT \\? OFFSET \\?").
		WithArgs(50, 0).
		WillReturnRows(userRows(1))

	repo := UserRepository{DB: db}
	users, _, err := repo.List(domain.ListParams{}, true)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(users))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM user WHERE id = \\?").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UserRepository{DB: db}
	if err := repo.Delete(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
