package repositories

import (
	"database/sql"
	"time"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

type AppRepository struct {
	DB *sql.DB
}

var appColumns = map[string]bool{
	"id": true, "name": true, "api_key": true, "description": true,
	"is_active": true, "type": true, "url": true, "storage_service_id": true,
	"storage_container": true, "path": true, "created_date": true,
	"last_modified_date": true,
}

const appSelect = `
	SELECT id, COALESCE(name,''), COALESCE(api_key,''), COALESCE(description,''),
	       is_active, type, COALESCE(url,''), storage_service_id,
	       COALESCE(storage_container,''), COALESCE(path,''),
	       created_date, last_modified_date
	FROM app`

func scanApp(rs interface{ Scan(...any) error }) (models.App, error) {
	var a models.App
	var storageID sql.NullInt64
	err := rs.Scan(
		&a.ID, &a.Name, &a.APIKey, &a.Description, &a.IsActive, &a.Type,
		&a.URL, &storageID, &a.StorageContainer, &a.Path,
		&a.CreatedDate, &a.LastModified,
	)
	if err != nil {
		return a, err
	}
	if storageID.Valid {
		a.StorageServiceID = &storageID.Int64
	}
	a.LaunchURL = launchURL(a)
	return a, nil
}

// launchURL derives the console's "launch app" link from the storage type.
func launchURL(a models.App) string {
	switch a.Type {
	case models.AppTypeRemoteURL:
		return a.URL
	case models.AppTypeProvisioned, models.AppTypeOnWebServer:
		if a.Path == "" {
			return ""
		}
		return "/" + a.StorageContainer + "/" + a.Path
	default:
		return ""
	}
}

func (r AppRepository) List(p domain.ListParams) ([]models.App, int, error) {
	q, err := BuildListQuery(p, appColumns)
	if err != nil {
		return nil, 0, err
	}

	query := appSelect
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

	apps := []models.App{}
	for rows.Next() {
		a, err := scanApp(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM app"
		if q.Where != "" {
			countQuery += " WHERE " + q.Where
		}
		if err := r.DB.QueryRow(countQuery, q.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return apps, total, nil
}

func (r AppRepository) GetByID(id int64) (models.App, error) {
	a, err := scanApp(r.DB.QueryRow(appSelect+" WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.NotFoundError{Resource: "app"}
		}
		return a, err
	}
	return a, nil
}

func (r AppRepository) CountByName(name string, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM app WHERE name = ? AND id <> ?", name, excludeID).Scan(&n)
	return n, err
}

func (r AppRepository) Create(a models.App) (models.App, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO app
			(name, api_key, description, is_active, type, url,
			 storage_service_id, storage_container, path, created_date, last_modified_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		a.Name, a.APIKey, db.NullIfEmpty(a.Description), a.IsActive, a.Type,
		db.NullIfEmpty(a.URL), db.NullInt64(a.StorageServiceID),
		db.NullIfEmpty(a.StorageContainer), db.NullIfEmpty(a.Path), now, now)
	if err != nil {
		return a, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return a, err
	}
	return r.GetByID(id)
}

func (r AppRepository) Update(id int64, a models.App) (models.App, error) {
	if _, err := r.DB.Exec(`
		UPDATE app SET name = ?, description = ?, is_active = ?, type = ?, url = ?,
		       storage_service_id = ?, storage_container = ?, path = ?, last_modified_date = ?
		WHERE id = ?`,
		a.Name, db.NullIfEmpty(a.Description), a.IsActive, a.Type,
		db.NullIfEmpty(a.URL), db.NullInt64(a.StorageServiceID),
		db.NullIfEmpty(a.StorageContainer), db.NullIfEmpty(a.Path),
		time.Now(), id); err != nil {
		return a, err
	}
	return r.GetByID(id)
}

// ResetAPIKey stores a freshly generated key for an existing app.
func (r AppRepository) ResetAPIKey(id int64, key string) error {
	res, err := r.DB.Exec("UPDATE app SET api_key = ?, last_modified_date = ? WHERE id = ?", key, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "app"}
	}
	return nil
}

func (r AppRepository) Delete(id int64) error {
	res, err := r.DB.Exec("DELETE FROM app WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "app"}
	}
	return nil
}
