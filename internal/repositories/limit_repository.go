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

type LimitRepository struct {
	DB *sql.DB
}

var limitColumns = map[string]bool{
	"id": true, "type": true, "name": true, "description": true,
	"rate": true, "period": true, "user_id": true, "role_id": true,
	"service_id": true, "endpoint": true, "is_active": true,
	"created_date": true, "last_modified_date": true,
}

const limitSelect = `
	SELECT id, COALESCE(type,''), COALESCE(name,''), COALESCE(description,''),
	       rate, COALESCE(period,''), user_id, role_id, service_id,
	       COALESCE(endpoint,''), is_active, created_date, last_modified_date
	FROM limits`

func scanLimit(rs interface{ Scan(...any) error }) (models.Limit, error) {
	var l models.Limit
	var userID, roleID, serviceID sql.NullInt64
	err := rs.Scan(
		&l.ID, &l.Type, &l.Name, &l.Description, &l.Rate, &l.Period,
		&userID, &roleID, &serviceID, &l.Endpoint, &l.IsActive,
		&l.CreatedDate, &l.LastModified,
	)
	if err != nil {
		return l, err
	}
	if userID.Valid {
		l.UserID = &userID.Int64
	}
	if roleID.Valid {
		l.RoleID = &roleID.Int64
	}
	if serviceID.Valid {
		l.ServiceID = &serviceID.Int64
	}
	return l, nil
}

func (r LimitRepository) List(p domain.ListParams) ([]models.Limit, int, error) {
	q, err := BuildListQuery(p, limitColumns)
	if err != nil {
		return nil, 0, err
	}

	query := limitSelect
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

	limits := []models.Limit{}
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, 0, err
		}
		limits = append(limits, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM limits"
		if q.Where != "" {
			countQuery += " WHERE " + q.Where
		}
		if err := r.DB.QueryRow(countQuery, q.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return limits, total, nil
}

// ListAll loads every limit row for report rendering.
func (r LimitRepository) ListAll() ([]models.Limit, error) {
	rows, err := r.DB.Query(limitSelect + " ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limits := []models.Limit{}
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

func (r LimitRepository) GetByID(id int64) (models.Limit, error) {
	l, err := scanLimit(r.DB.QueryRow(limitSelect+" WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return l, domain.NotFoundError{Resource: "limit"}
		}
		return l, err
	}
	return l, nil
}

func (r LimitRepository) Create(l models.Limit) (models.Limit, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO limits
			(type, name, description, rate, period, user_id, role_id, service_id,
			 endpoint, is_active, created_date, last_modified_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		l.Type, l.Name, db.NullIfEmpty(l.Description), l.Rate, l.Period,
		db.NullInt64(l.UserID), db.NullInt64(l.RoleID), db.NullInt64(l.ServiceID),
		db.NullIfEmpty(l.Endpoint), l.IsActive, now, now)
	if err != nil {
		return l, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return l, err
	}
	return r.GetByID(id)
}

// limitPatch mirrors the patchable subset of limit columns.
type limitPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Rate        *int    `json:"rate"`
	Period      *string `json:"period"`
	IsActive    *bool   `json:"is_active"`
}

func buildLimitPatch(raw []byte) ([]string, []any, error) {
	var patch limitPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
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
	if patch.Description != nil {
		add("description", db.NullIfEmpty(*patch.Description))
	}
	if patch.Rate != nil {
		if *patch.Rate <= 0 {
			return nil, nil, domain.ValidationError{Field: "rate", Msg: "must be a positive integer"}
		}
		add("rate", *patch.Rate)
	}
	if patch.Period != nil {
		if !validLimitPeriod(*patch.Period) {
			return nil, nil, domain.ValidationError{Field: "period", Msg: fmt.Sprintf("unknown period %q", *patch.Period)}
		}
		add("period", *patch.Period)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}

	return cols, args, nil
}

func validLimitPeriod(period string) bool {
	for _, p := range models.LimitPeriods {
		if p == period {
			return true
		}
	}
	return false
}

func (r LimitRepository) UpdatePartial(id int64, raw []byte) (models.Limit, error) {
	cols, args, err := buildLimitPatch(raw)
	if err != nil {
		return models.Limit{}, err
	}
	if len(cols) == 0 {
		return r.GetByID(id)
	}

	cols = append(cols, "last_modified_date = ?")
	args = append(args, time.Now())
	args = append(args, id)

	if _, err := r.DB.Exec(fmt.Sprintf("UPDATE limits SET %s WHERE id = ?", strings.Join(cols, ", ")), args...); err != nil {
		return models.Limit{}, err
	}
	return r.GetByID(id)
}

func (r LimitRepository) Delete(id int64) error {
	res, err := r.DB.Exec("DELETE FROM limits WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "limit"}
	}
	return nil
}
