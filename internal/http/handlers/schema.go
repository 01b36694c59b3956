package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
)

func schemaRepo() repositories.SchemaRepository {
	return repositories.SchemaRepository{DB: intconfig.DB}
}

// GET /api/v2/db/_schema
func GetSchemaTables(c *gin.Context) {
	tables, err := schemaRepo().ListTables()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[models.TableSchema]{Resource: tables})
}

// GET /api/v2/db/_schema/:table
func GetSchemaTable(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	t, err := schemaRepo().GetTable(table)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/v2/db/_schema/:table/_field
func GetSchemaFields(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	fields, err := schemaRepo().ListFields(table)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	p, ok := parseListParams(c)
	if !ok {
		return
	}
	if len(p.Fields) > 0 {
		wanted := map[string]bool{}
		for _, f := range p.Fields {
			wanted[strings.ToLower(f)] = true
		}
		filtered := fields[:0]
		for _, f := range fields {
			if wanted[strings.ToLower(f.Name)] {
				filtered = append(filtered, f)
			}
		}
		fields = filtered
	}

	c.JSON(http.StatusOK, domain.Envelope[models.FieldSchema]{Resource: fields})
}

// GET /api/v2/db/_schema/:table/_field/:field
func GetSchemaField(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	field := strings.TrimSpace(c.Param("field"))
	f, err := schemaRepo().GetField(table, field)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
