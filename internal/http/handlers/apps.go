package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/services"
)

func appService(c *gin.Context) services.AppService {
	return services.AppService{
		Repo:      repositories.AppRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

type appPayload struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	IsActive         *bool  `json:"is_active"`
	Type             int    `json:"type"`
	URL              string `json:"url"`
	StorageServiceID *int64 `json:"storage_service_id"`
	StorageContainer string `json:"storage_container"`
	Path             string `json:"path"`
}

func (p appPayload) toModel() models.App {
	a := models.App{
		Name:             p.Name,
		Description:      p.Description,
		IsActive:         true,
		Type:             p.Type,
		URL:              p.URL,
		StorageServiceID: p.StorageServiceID,
		StorageContainer: p.StorageContainer,
		Path:             p.Path,
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	return a
}

// GET /api/v2/system/app
func GetApps(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	apps, total, err := appService(c).List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, apps, total, p)
}

// GET /api/v2/system/app/:id
func GetAppByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	app, err := appService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// POST /api/v2/system/app
func CreateApp(c *gin.Context) {
	var req appPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	created, err := appService(c).Create(req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v2/system/app/:id
func UpdateApp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req appPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	updated, err := appService(c).Update(id, req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// POST /api/v2/system/app/:id/api_key
func ResetAppAPIKey(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	app, err := appService(c).ResetAPIKey(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// DELETE /api/v2/system/app/:id
func DeleteApp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := appService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
