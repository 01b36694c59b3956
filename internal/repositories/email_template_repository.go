package repositories

import (
	"database/sql"
	"time"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

type EmailTemplateRepository struct {
	DB *sql.DB
}

var emailTemplateColumns = map[string]bool{
	"id": true, "name": true, "description": true, "subject": true,
	"created_date": true, "last_modified_date": true,
}

const emailTemplateSelect = `
	SELECT id, COALESCE(name,''), COALESCE(description,''), COALESCE(to_email,''),
	       COALESCE(subject,''), COALESCE(body_text,''), COALESCE(body_html,''),
	       created_date, last_modified_date
	FROM email_template`

func scanEmailTemplate(rs interface{ Scan(...any) error }) (models.EmailTemplate, error) {
	var t models.EmailTemplate
	err := rs.Scan(&t.ID, &t.Name, &t.Description, &t.To, &t.Subject,
		&t.BodyText, &t.BodyHTML, &t.CreatedDate, &t.LastModified)
	return t, err
}

func (r EmailTemplateRepository) List(p domain.ListParams) ([]models.EmailTemplate, int, error) {
	q, err := BuildListQuery(p, emailTemplateColumns)
	if err != nil {
		return nil, 0, err
	}

	query := emailTemplateSelect
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

	templates := []models.EmailTemplate{}
	for rows.Next() {
		t, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := 0
	if p.IncludeCount {
		countQuery := "SELECT COUNT(*) FROM email_template"
		if q.Where != "" {
			countQuery += " WHERE " + q.Where
		}
		if err := r.DB.QueryRow(countQuery, q.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return templates, total, nil
}

func (r EmailTemplateRepository) GetByID(id int64) (models.EmailTemplate, error) {
	t, err := scanEmailTemplate(r.DB.QueryRow(emailTemplateSelect+" WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.NotFoundError{Resource: "email_template"}
		}
		return t, err
	}
	return t, nil
}

func (r EmailTemplateRepository) Create(t models.EmailTemplate) (models.EmailTemplate, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO email_template
			(name, description, to_email, subject, body_text, body_html, created_date, last_modified_date)
		VALUES (?,?,?,?,?,?,?,?)`,
		t.Name, db.NullIfEmpty(t.Description), db.NullIfEmpty(t.To),
		db.NullIfEmpty(t.Subject), db.NullIfEmpty(t.BodyText), db.NullIfEmpty(t.BodyHTML), now, now)
	if err != nil {
		return t, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return t, err
	}
	return r.GetByID(id)
}

func (r EmailTemplateRepository) Update(id int64, t models.EmailTemplate) (models.EmailTemplate, error) {
	if _, err := r.DB.Exec(`
		UPDATE email_template
		SET name = ?, description = ?, to_email = ?, subject = ?, body_text = ?, body_html = ?, last_modified_date = ?
		WHERE id = ?`,
		t.Name, db.NullIfEmpty(t.Description), db.NullIfEmpty(t.To),
		db.NullIfEmpty(t.Subject), db.NullIfEmpty(t.BodyText), db.NullIfEmpty(t.BodyHTML),
		time.Now(), id); err != nil {
		return t, err
	}
	return r.GetByID(id)
}

func (r EmailTemplateRepository) Delete(id int64) error {
	res, err := r.DB.Exec("DELETE FROM email_template WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "email_template"}
	}
	return nil
}
