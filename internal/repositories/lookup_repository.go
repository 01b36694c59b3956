package repositories

import (
	"database/sql"
	"time"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

type LookupRepository struct {
	DB *sql.DB
}

var lookupColumns = map[string]bool{
	"id": true, "name": true, "private": true, "description": true,
	"created_date": true, "last_modified_date": true,
}

const lookupSelect = `
	SELECT id, COALESCE(name,''), COALESCE(value,''), private, COALESCE(description,''),
	       created_date, last_modified_date
	FROM lookup`

func scanLookup(rs interface{ Scan(...any) error }) (models.Lookup, error) {
	var l models.Lookup
	err := rs.Scan(&l.ID, &l.Name, &l.Value, &l.Private, &l.Description, &l.CreatedDate, &l.LastModified)
	if err != nil {
		return l, err
	}
	// private values are write-only
	if l.Private {
		l.Value = ""
	}
	return l, nil
}

func (r LookupRepository) List(p domain.ListParams) ([]models.Lookup, int, error) {
	q, err := BuildListQuery(p, lookupColumns)
	if err != nil {
		return nil, 0, err
	}

	query := lookupSelect
	if q.Where != "" {
		query += " WHERE " + q.Where
	}
	order := q.Order
	if order == "" {
		order = "name ASC"
	}
	query += " ORDER BY " + order + " LIMIT ? OFFSET ?"

	rows, err := r.DB.Query(query, append(append([]any{}, q.Args...), q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	lookups := []models.Lookup{}
	for rows.Next() {
		l, err := scanLookup(rows)
		if err != nil {
			return nil, 0, err
		}
		lookups = append(lookups, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM lookup"
		if q.Where != "" {
			countQuery += " WHERE " + q.Where
		}
		if err := r.DB.QueryRow(countQuery, q.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return lookups, total, nil
}

func (r LookupRepository) GetByID(id int64) (models.Lookup, error) {
	l, err := scanLookup(r.DB.QueryRow(lookupSelect+" WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return l, domain.NotFoundError{Resource: "lookup"}
		}
		return l, err
	}
	return l, nil
}

func (r LookupRepository) CountByName(name string, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM lookup WHERE name = ? AND id <> ?", name, excludeID).Scan(&n)
	return n, err
}

func (r LookupRepository) Create(l models.Lookup) (models.Lookup, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO lookup (name, value, private, description, created_date, last_modified_date)
		VALUES (?,?,?,?,?,?)`,
		l.Name, l.Value, l.Private, db.NullIfEmpty(l.Description), now, now)
	if err != nil {
		return l, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return l, err
	}
	return r.GetByID(id)
}

func (r LookupRepository) Update(id int64, l models.Lookup) (models.Lookup, error) {
	if _, err := r.DB.Exec(`
		UPDATE lookup SET name = ?, value = ?, private = ?, description = ?, last_modified_date = ?
		WHERE id = ?`,
		l.Name, l.Value, l.Private, db.NullIfEmpty(l.Description), time.Now(), id); err != nil {
		return l, err
	}
	return r.GetByID(id)
}

func (r LookupRepository) Delete(id int64) error {
	res, err := r.DB.Exec("DELETE FROM lookup WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "lookup"}
	}
	return nil
}
