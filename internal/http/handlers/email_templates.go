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

func emailTemplateRepo() repositories.EmailTemplateRepository {
	return repositories.EmailTemplateRepository{DB: intconfig.DB}
}

// GET /api/v2/system/email_template
func GetEmailTemplates(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	templates, total, err := emailTemplateRepo().List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, templates, total, p)
}

// GET /api/v2/system/email_template/:id
func GetEmailTemplateByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	t, err := emailTemplateRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/v2/system/email_template
func CreateEmailTemplate(c *gin.Context) {
	var req models.EmailTemplate
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Name = utils.NormalizeSpace(req.Name)
	if req.Name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "is required"})
		return
	}
	created, err := emailTemplateRepo().Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v2/system/email_template/:id
func UpdateEmailTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req models.EmailTemplate
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Name = utils.NormalizeSpace(req.Name)
	if req.Name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "is required"})
		return
	}
	updated, err := emailTemplateRepo().Update(id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v2/system/email_template/:id
func DeleteEmailTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := emailTemplateRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
