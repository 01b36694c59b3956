package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

var serviceColumns = map[string]bool{
	"id": true, "name": true, "label": true, "description": true,
	"type": true, "is_active": true, "mutable": true, "deletable": true,
	"created_date": true, "last_modified_date": true,
}

const serviceSelect = `
	SELECT id, COALESCE(name,''), COALESCE(label,''), COALESCE(description,''),
	       COALESCE(type,''), is_active, mutable, deletable, config,
	       created_date, last_modified_date
	FROM service`

func scanService(rs interface{ Scan(...any) error }) (models.Service, error) {
	var s models.Service
	var config sql.NullString
	err := rs.Scan(
		&s.ID, &s.Name, &s.Label, &s.Description, &s.Type,
		&s.IsActive, &s.Mutable, &s.Deletable, &config,
		&s.CreatedDate, &s.LastModified,
	)
	if err != nil {
		return s, err
	}
	if config.Valid && config.String != "" {
		s.Config = json.RawMessage(config.String)
	}
	return s, nil
}

func (r ServiceRepository) List(p domain.ListParams) ([]models.Service, int, error) {
	q, err := BuildListQuery(p, serviceColumns)
	if err != nil {
		return nil, 0, err
	}

	query := serviceSelect
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

	services := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM service"
		if q.Where != "" {
			countQuery += " WHERE " + q.Where
		}
		if err := r.DB.QueryRow(countQuery, q.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return services, total, nil
}

func (r ServiceRepository) GetByID(id int64) (models.Service, error) {
	s, err := scanService(r.DB.QueryRow(serviceSelect+" WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return s, domain.NotFoundError{Resource: "service"}
		}
		return s, err
	}
	return s, nil
}

func (r ServiceRepository) GetByName(name string) (models.Service, error) {
	s, err := scanService(r.DB.QueryRow(serviceSelect+" WHERE name = ?", name))
	if err != nil {
		if err == sql.ErrNoRows {
			return s, domain.NotFoundError{Resource: "service"}
		}
		return s, err
	}
	return s, nil
}

func (r ServiceRepository) CountByName(name string, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM service WHERE name = ? AND id <> ?", name, excludeID).Scan(&n)
	return n, err
}

func (r ServiceRepository) Create(s models.Service) (models.Service, error) {
	now := time.Now()
	var config any
	if len(s.Config) > 0 {
		config = string(s.Config)
	}
	res, err := r.DB.Exec(`
		INSERT INTO service
			(name, label, description, type, is_active, mutable, deletable, config,
			 created_date, last_modified_date)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		s.Name, db.NullIfEmpty(s.Label), db.NullIfEmpty(s.Description), s.Type,
		s.IsActive, s.Mutable, s.Deletable, config, now, now)
	if err != nil {
		return s, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return s, err
	}
	return r.GetByID(id)
}

func (r ServiceRepository) Update(id int64, s models.Service) (models.Service, error) {
	var config any
	if len(s.Config) > 0 {
		config = string(s.Config)
	}
	if _, err := r.DB.Exec(`
		UPDATE service SET label = ?, description = ?, is_active = ?, config = ?, last_modified_date = ?
		WHERE id = ?`,
		db.NullIfEmpty(s.Label), db.NullIfEmpty(s.Description), s.IsActive,
		config, time.Now(), id); err != nil {
		return s, err
	}
	return r.GetByID(id)
}

func (r ServiceRepository) Delete(id int64) error {
	res, err := r.DB.Exec("DELETE FROM service WHERE id = ? AND deletable = 1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return domain.ForbiddenError{Msg: "service is not deletable"}
	}
	return nil
}
