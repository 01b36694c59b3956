package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

func lookupRepo() repositories.LookupRepository {
	return repositories.LookupRepository{DB: intconfig.DB}
}

type lookupPayload struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Private     bool   `json:"private"`
	Description string `json:"description"`
}

func (p lookupPayload) toModel() (models.Lookup, error) {
	l := models.Lookup{
		Name:        utils.TrimOrEmpty(p.Name),
		Value:       p.Value,
		Private:     p.Private,
		Description: p.Description,
	}
	if l.Name == "" {
		return l, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	return l, nil
}

// GET /api/v2/system/lookup
func GetLookups(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	lookups, total, err := lookupRepo().List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, lookups, total, p)
}

// GET /api/v2/system/lookup/:id
func GetLookupByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	l, err := lookupRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /api/v2/system/lookup
func CreateLookup(c *gin.Context) {
	var req lookupPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	l, err := req.toModel()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	n, err := lookupRepo().CountByName(l.Name, 0)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if n > 0 {
		RespondDomainError(c, domain.ConflictError{Resource: "lookup", Msg: "name already in use"})
		return
	}
	created, err := lookupRepo().Create(l)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v2/system/lookup/:id
func UpdateLookup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req lookupPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	l, err := req.toModel()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := lookupRepo().Update(id, l)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v2/system/lookup/:id
func DeleteLookup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := lookupRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
