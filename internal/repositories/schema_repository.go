package repositories

import (
	"database/sql"
	"strings"

	"github.com/dreamfactorysoftware/df-admin-api/internal/db"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
)

// SchemaRepository reads table and column metadata for the connected
// database out of information_schema, powering the console's schema
// browser endpoints.
type SchemaRepository struct {
	DB *sql.DB
}

func (r SchemaRepository) ListTables() ([]models.TableSchema, error) {
	rows, err := r.DB.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []models.TableSchema{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, models.TableSchema{Name: name, Label: labelize(name)})
	}
	return tables, rows.Err()
}

func (r SchemaRepository) GetTable(table string) (models.TableSchema, error) {
	if !db.HasTable(r.DB, table) {
		return models.TableSchema{}, domain.NotFoundError{Resource: "table"}
	}
	fields, err := r.ListFields(table)
	if err != nil {
		return models.TableSchema{}, err
	}
	return models.TableSchema{Name: table, Label: labelize(table), Fields: fields}, nil
}

func (r SchemaRepository) ListFields(table string) ([]models.FieldSchema, error) {
	if !db.HasTable(r.DB, table) {
		return nil, domain.NotFoundError{Resource: "table"}
	}

	rows, err := r.DB.Query(`
		SELECT column_name, data_type, column_type, character_maximum_length,
		       is_nullable, column_default, column_key, extra
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []models.FieldSchema{}
	for rows.Next() {
		var (
			f          models.FieldSchema
			columnType string
			maxLen     sql.NullInt64
			nullable   string
			defVal     sql.NullString
			columnKey  string
			extra      string
		)
		if err := rows.Scan(&f.Name, &f.Type, &columnType, &maxLen, &nullable, &defVal, &columnKey, &extra); err != nil {
			return nil, err
		}
		f.Label = labelize(f.Name)
		f.DBType = columnType
		f.Type = portableType(f.Type)
		if maxLen.Valid {
			l := maxLen.Int64
			f.Length = &l
		}
		f.AllowNull = strings.EqualFold(nullable, "YES")
		if defVal.Valid {
			d := defVal.String
			f.DefaultValue = &d
		}
		f.IsPrimaryKey = columnKey == "PRI"
		f.IsUnique = columnKey == "UNI"
		f.AutoIncrement = strings.Contains(extra, "auto_increment")
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (r SchemaRepository) GetField(table, field string) (models.FieldSchema, error) {
	fields, err := r.ListFields(table)
	if err != nil {
		return models.FieldSchema{}, err
	}
	for _, f := range fields {
		if f.Name == field {
			return f, nil
		}
	}
	return models.FieldSchema{}, domain.NotFoundError{Resource: "field"}
}

// portableType maps MySQL data types onto the console's portable names.
func portableType(dbType string) string {
	switch strings.ToLower(dbType) {
	case "tinyint":
		return "boolean"
	case "smallint", "mediumint", "int", "bigint":
		return "integer"
	case "decimal", "float", "double":
		return "float"
	case "date":
		return "date"
	case "datetime", "timestamp":
		return "timestamp"
	case "time":
		return "time"
	case "text", "mediumtext", "longtext":
		return "text"
	case "blob", "mediumblob", "longblob", "binary", "varbinary":
		return "binary"
	default:
		return "string"
	}
}

// labelize turns snake_case identifiers into display labels.
func labelize(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
