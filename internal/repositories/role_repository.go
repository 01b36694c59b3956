package repositories

import (
	"database/sql"
	"strings"
	"time"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

type RoleRepository struct {
	DB *sql.DB
}

var roleColumns = map[string]bool{
	"id": true, "name": true, "description": true, "is_active": true,
	"created_date": true, "last_modified_date": true,
}

const roleSelect = `
	SELECT id, COALESCE(name,''), COALESCE(description,''), is_active, created_date, last_modified_date
	FROM role`

func (r RoleRepository) List(p domain.ListParams) ([]models.Role, int, error) {
	q, err := BuildListQuery(p, roleColumns)
	if err != nil {
		return nil, 0, err
	}

	query := roleSelect
	if q.Where != "" {
		query += " WHERE " + q.Where
	}
	order := q.Order
	if order == "" {
		order = "id ASC"
	}
	query += " ORDER BY " + order + " LIMIT ? OFFSET ?"

	rows, err := r.DB.Query(query, append(append([]any{}, q.Args...), q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedDate, &role.LastModified); err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM role"
		if q.Where != "" {
			countQuery += " WHERE " + q.Where
		}
		if err := r.DB.QueryRow(countQuery, q.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	if hasRelated(p.Related, "role_service_access_by_role_id") {
		for i := range roles {
			access, err := r.listServiceAccess(roles[i].ID)
			if err != nil {
				return nil, 0, err
			}
			roles[i].ServiceAccess = access
		}
	}

	return roles, total, nil
}

func (r RoleRepository) GetByID(id int64, related []string) (models.Role, error) {
	var role models.Role
	err := r.DB.QueryRow(roleSelect+" WHERE id = ?", id).Scan(
		&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedDate, &role.LastModified)
	if err != nil {
		if err == sql.ErrNoRows {
			return role, domain.NotFoundError{Resource: "role"}
		}
		return role, err
	}
	if hasRelated(related, "role_service_access_by_role_id") {
		access, err := r.listServiceAccess(id)
		if err != nil {
			return role, err
		}
		role.ServiceAccess = access
	}
	return role, nil
}

func (r RoleRepository) listServiceAccess(roleID int64) ([]models.RoleServiceAccess, error) {
	rows, err := r.DB.Query(`
		SELECT id, role_id, service_id, COALESCE(component,''), verb_mask, requestor_mask
		FROM role_service_access WHERE role_id = ? ORDER BY id ASC`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	access := []models.RoleServiceAccess{}
	for rows.Next() {
		var a models.RoleServiceAccess
		var serviceID sql.NullInt64
		if err := rows.Scan(&a.ID, &a.RoleID, &serviceID, &a.Component, &a.VerbMask, &a.RequestorMask); err != nil {
			return nil, err
		}
		if serviceID.Valid {
			a.ServiceID = &serviceID.Int64
		}
		access = append(access, a)
	}
	return access, rows.Err()
}

func (r RoleRepository) Create(role models.Role) (models.Role, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO role (name, description, is_active, created_date, last_modified_date)
		VALUES (?,?,?,?,?)`,
		role.Name, db.NullIfEmpty(role.Description), role.IsActive, now, now)
	if err != nil {
		return role, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return role, err
	}
	if err := r.replaceServiceAccess(id, role.ServiceAccess); err != nil {
		return role, err
	}
	return r.GetByID(id, []string{"role_service_access_by_role_id"})
}

// Update replaces the role row and, when the payload carries access
// rules, the whole role_service_access set. The console always submits
// the full rule list, so replace-all is the simplest correct write.
func (r RoleRepository) Update(id int64, role models.Role, withAccess bool) (models.Role, error) {
	res, err := r.DB.Exec(`
		UPDATE role SET name = ?, description = ?, is_active = ?, last_modified_date = ?
		WHERE id = ?`,
		role.Name, db.NullIfEmpty(role.Description), role.IsActive, time.Now(), id)
	if err != nil {
		return role, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(id, nil); err != nil {
			return role, err
		}
	}
	if withAccess {
		if err := r.replaceServiceAccess(id, role.ServiceAccess); err != nil {
			return role, err
		}
	}
	return r.GetByID(id, []string{"role_service_access_by_role_id"})
}

func (r RoleRepository) replaceServiceAccess(roleID int64, access []models.RoleServiceAccess) error {
	if _, err := r.DB.Exec("DELETE FROM role_service_access WHERE role_id = ?", roleID); err != nil {
		return err
	}
	for _, a := range access {
		component := strings.TrimSpace(a.Component)
		if component == "" {
			component = "*"
		}
		if _, err := r.DB.Exec(`
			INSERT INTO role_service_access (role_id, service_id, component, verb_mask, requestor_mask)
			VALUES (?,?,?,?,?)`,
			roleID, db.NullInt64(a.ServiceID), component, a.VerbMask, a.RequestorMask); err != nil {
			return err
		}
	}
	return nil
}

func (r RoleRepository) Delete(id int64) error {
	if _, err := r.DB.Exec("DELETE FROM role_service_access WHERE role_id = ?", id); err != nil {
		return err
	}
	res, err := r.DB.Exec("DELETE FROM role WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "role"}
	}
	return nil
}
