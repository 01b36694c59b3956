package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

func serviceRepo() repositories.ServiceRepository {
	return repositories.ServiceRepository{DB: intconfig.DB}
}

type servicePayload struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	IsActive    *bool           `json:"is_active"`
	Config      json.RawMessage `json:"config"`
}

func (p servicePayload) toModel() (models.Service, error) {
	s := models.Service{
		Name:        utils.TrimOrEmpty(p.Name),
		Label:       p.Label,
		Description: p.Description,
		Type:        utils.TrimOrEmpty(p.Type),
		IsActive:    true,
		Mutable:     true,
		Deletable:   true,
		Config:      p.Config,
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if s.Name == "" {
		return s, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if s.Type == "" {
		return s, domain.ValidationError{Field: "type", Msg: "is required"}
	}
	if len(p.Config) > 0 && !json.Valid(p.Config) {
		return s, domain.ValidationError{Field: "config", Msg: "must be valid JSON"}
	}
	return s, nil
}

// GET /api/v2/system/service
func GetServices(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	services, total, err := serviceRepo().List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, services, total, p)
}

// GET /api/v2/system/service/:id
func GetServiceByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc, err := serviceRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// POST /api/v2/system/service
func CreateService(c *gin.Context) {
	var req servicePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	svc, err := req.toModel()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	n, err := serviceRepo().CountByName(svc.Name, 0)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if n > 0 {
		RespondDomainError(c, domain.ConflictError{Resource: "service", Msg: "name already in use"})
		return
	}
	created, err := serviceRepo().Create(svc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v2/system/service/:id
// Name and type are immutable after creation; only label, description,
// active flag, and config are writable.
func UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req servicePayload
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := serviceRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !existing.Mutable {
		RespondDomainError(c, domain.ForbiddenError{Msg: "service is not mutable"})
		return
	}
	if len(req.Config) > 0 && !json.Valid(req.Config) {
		RespondDomainError(c, domain.ValidationError{Field: "config", Msg: "must be valid JSON"})
		return
	}

	existing.Label = req.Label
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.Config != nil {
		existing.Config = req.Config
	}

	updated, err := serviceRepo().Update(id, existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v2/system/service/:id
func DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := serviceRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
