package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

// UserRepository wraps DB access for the user table. Admin accounts are
// regular users with is_sys_admin set; the /system/admin endpoints reuse
// this repository with adminOnly scoping.
type UserRepository struct {
	DB *sql.DB
}

var userColumns = map[string]bool{
	"id": true, "name": true, "username": true, "first_name": true,
	"last_name": true, "email": true, "phone": true, "is_active": true,
	"is_sys_admin": true, "role_id": true, "created_date": true,
	"last_modified_date": true, "last_login_date": true,
}

const userSelect = `
	SELECT id, COALESCE(name,''), COALESCE(username,''), COALESCE(first_name,''),
	       COALESCE(last_name,''), COALESCE(email,''), COALESCE(phone,''),
	       is_active, is_sys_admin, role_id, last_login_date,
	       created_date, last_modified_date
	FROM user`

func scanUser(rs interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var roleID sql.NullInt64
	var lastLogin sql.NullTime
	err := rs.Scan(
		&u.ID, &u.Name, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.Phone, &u.IsActive, &u.IsSysAdmin,
		&roleID, &lastLogin, &u.CreatedDate, &u.LastModified,
	)
	if err != nil {
		return u, err
	}
	if roleID.Valid {
		u.RoleID = &roleID.Int64
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginDate = &t
	}
	return u, nil
}

// List returns one page of users plus the unpaged total when requested.
func (r UserRepository) List(p domain.ListParams, adminOnly bool) ([]models.User, int, error) {
	q, err := BuildListQuery(p, userColumns)
	if err != nil {
		return nil, 0, err
	}

	where := q.Where
	args := q.Args
	if adminOnly {
		if where == "" {
			where = "is_sys_admin = 1"
		} else {
			where = "is_sys_admin = 1 AND " + where
		}
	}

	query := userSelect
	if where != "" {
		query += " WHERE " + where
	}
	order := q.Order
	if order == "" {
		order = "id ASC"
	}
	query += " ORDER BY " + order + " LIMIT ? OFFSET ?"

	rows, err := r.DB.Query(query, append(append([]any{}, args...), q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM user"
		if where != "" {
			countQuery += " WHERE " + where
		}
		if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	if hasRelated(p.Related, "role_by_role_id") {
		if err := r.attachRoles(users); err != nil {
			return nil, 0, err
		}
	}

	return users, total, nil
}

func hasRelated(related []string, name string) bool {
	for _, r := range related {
		if strings.EqualFold(strings.TrimSpace(r), name) {
			return true
		}
	}
	return false
}

func (r UserRepository) attachRoles(users []models.User) error {
	ids := []any{}
	seen := map[int64]bool{}
	for _, u := range users {
		if u.RoleID != nil && !seen[*u.RoleID] {
			seen[*u.RoleID] = true
			ids = append(ids, *u.RoleID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	rows, err := r.DB.Query(`
		SELECT id, COALESCE(name,''), COALESCE(description,''), is_active, created_date, last_modified_date
		FROM role WHERE id IN (`+placeholders+`)`, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[int64]models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedDate, &role.LastModified); err != nil {
			return err
		}
		byID[role.ID] = role
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range users {
		if users[i].RoleID != nil {
			if role, ok := byID[*users[i].RoleID]; ok {
				r := role
				users[i].RoleByRoleID = &r
			}
		}
	}
	return nil
}

func (r UserRepository) GetByID(id int64, related []string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRow(userSelect+" WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, err
	}
	if hasRelated(related, "role_by_role_id") {
		users := []models.User{u}
		if err := r.attachRoles(users); err != nil {
			return u, err
		}
		u = users[0]
	}
	return u, nil
}

// GetByEmail loads a user plus its password hash for authentication.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var u models.User
	var hash string
	var roleID sql.NullInt64
	var lastLogin sql.NullTime
	err := r.DB.QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(username,''), COALESCE(first_name,''),
		       COALESCE(last_name,''), COALESCE(email,''), COALESCE(phone,''),
		       is_active, is_sys_admin, role_id, last_login_date,
		       created_date, last_modified_date, COALESCE(password_hash,'')
		FROM user
		WHERE email = ? OR username = ?`, email, email).Scan(
		&u.ID, &u.Name, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.Phone, &u.IsActive, &u.IsSysAdmin,
		&roleID, &lastLogin, &u.CreatedDate, &u.LastModified, &hash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, "", domain.NotFoundError{Resource: "user"}
		}
		return u, "", err
	}
	if roleID.Valid {
		u.RoleID = &roleID.Int64
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginDate = &t
	}
	return u, hash, nil
}

func (r UserRepository) CountByEmailOrUsername(email, username string, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM user
		WHERE (email = ? OR (username <> '' AND username = ?)) AND id <> ?`,
		email, username, excludeID).Scan(&n)
	return n, err
}

func (r UserRepository) Create(u models.User) (models.User, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO user
			(name, username, first_name, last_name, email, phone, password_hash,
			 is_active, is_sys_admin, role_id, created_date, last_modified_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		u.Name, db.NullIfEmpty(u.Username), db.NullIfEmpty(u.FirstName),
		db.NullIfEmpty(u.LastName), u.Email, db.NullIfEmpty(u.Phone),
		u.PasswordHash, u.IsActive, u.IsSysAdmin, db.NullInt64(u.RoleID), now, now,
	)
	if err != nil {
		return u, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return u, err
	}
	return r.GetByID(id, nil)
}

// userPatch mirrors the patchable subset of user columns. Key presence
// in the raw JSON decides what gets written; absent keys keep their
// stored value.
type userPatch struct {
	Name       *string `json:"name"`
	Username   *string `json:"username"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"is_active"`
	IsSysAdmin *bool   `json:"is_sys_admin"`
	RoleID     *int64  `json:"role_id"`
}

// buildUserPatch converts raw JSON into SET columns and bind args.
func buildUserPatch(raw []byte) ([]string, []any, error) {
	var patch userPatch
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	if err := dec.Decode(&patch); err != nil {
		return nil, nil, domain.ValidationError{Msg: "invalid patch payload", Err: err}
	}

	// distinguish explicit null role_id from absence
	var rawKeys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rawKeys); err != nil {
		return nil, nil, domain.ValidationError{Msg: "invalid patch payload", Err: err}
	}

	cols := []string{}
	args := []any{}
	add := func(col string, val any) {
		cols = append(cols, col+" = ?")
		args = append(args, val)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Username != nil {
		add("username", db.NullIfEmpty(*patch.Username))
	}
	if patch.FirstName != nil {
		add("first_name", db.NullIfEmpty(*patch.FirstName))
	}
	if patch.LastName != nil {
		add("last_name", db.NullIfEmpty(*patch.LastName))
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", db.NullIfEmpty(*patch.Phone))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.IsSysAdmin != nil {
		add("is_sys_admin", *patch.IsSysAdmin)
	}
	if _, present := rawKeys["role_id"]; present {
		add("role_id", db.NullInt64(patch.RoleID))
	}

	return cols, args, nil
}

// UpdatePartial applies only fields present in raw JSON, keeping
// existing data intact.
func (r UserRepository) UpdatePartial(id int64, raw []byte) (models.User, error) {
	cols, args, err := buildUserPatch(raw)
	if err != nil {
		return models.User{}, err
	}
	if len(cols) == 0 {
		return r.GetByID(id, nil)
	}

	cols = append(cols, "last_modified_date = ?")
	args = append(args, time.Now())
	args = append(args, id)

	if _, err := r.DB.Exec(fmt.Sprintf("UPDATE user SET %s WHERE id = ?", strings.Join(cols, ", ")), args...); err != nil {
		return models.User{}, err
	}
	// zero affected rows can mean "no change"; existence is confirmed by the read-back
	return r.GetByID(id, nil)
}

func (r UserRepository) SetPassword(id int64, hash string) error {
	res, err := r.DB.Exec("UPDATE user SET password_hash = ?, last_modified_date = ? WHERE id = ?", hash, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) TouchLastLogin(id int64) error {
	_, err := r.DB.Exec("UPDATE user SET last_login_date = ? WHERE id = ?", time.Now(), id)
	return err
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.DB.Exec("DELETE FROM user WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
