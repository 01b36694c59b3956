package models

// TableSchema describes a table discovered from the database service.
type TableSchema struct {
	Name   string        `json:"name"`
	Label  string        `json:"label"`
	Fields []FieldSchema `json:"field,omitempty"`
}

// FieldSchema describes one column of a table.
type FieldSchema struct {
	Name          string  `json:"name"`
	Label         string  `json:"label"`
	Type          string  `json:"type"`
	DBType        string  `json:"db_type"`
	Length        *int64  `json:"length"`
	AllowNull     bool    `json:"allow_null"`
	DefaultValue  *string `json:"default"`
	IsPrimaryKey  bool    `json:"is_primary_key"`
	IsUnique      bool    `json:"is_unique"`
	AutoIncrement bool    `json:"auto_increment"`
}
