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

func roleRepo() repositories.RoleRepository {
	return repositories.RoleRepository{DB: intconfig.DB}
}

type rolePayload struct {
	Name          string                     `json:"name"`
	Description   string                     `json:"description"`
	IsActive      *bool                      `json:"is_active"`
	ServiceAccess []models.RoleServiceAccess `json:"role_service_access_by_role_id"`
}

func (p rolePayload) toModel() (models.Role, error) {
	role := models.Role{
		Name:          utils.NormalizeSpace(p.Name),
		Description:   p.Description,
		IsActive:      true,
		ServiceAccess: p.ServiceAccess,
	}
	if p.IsActive != nil {
		role.IsActive = *p.IsActive
	}
	if role.Name == "" {
		return role, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	for _, a := range p.ServiceAccess {
		if a.VerbMask < 0 || a.VerbMask > 31 {
			return role, domain.ValidationError{Field: "verb_mask", Msg: "must be a 5-bit verb bitmask"}
		}
	}
	return role, nil
}

// GET /api/v2/system/role
func GetRoles(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	roles, total, err := roleRepo().List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, roles, total, p)
}

// GET /api/v2/system/role/:id
func GetRoleByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	role, err := roleRepo().GetByID(id, p.Related)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// POST /api/v2/system/role
func CreateRole(c *gin.Context) {
	var req rolePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	role, err := req.toModel()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := roleRepo().Create(role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v2/system/role/:id
func UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req rolePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	role, err := req.toModel()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := roleRepo().Update(id, role, req.ServiceAccess != nil)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v2/system/role/:id
func DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := roleRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
