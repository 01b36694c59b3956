package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/services"
)

func limitService(c *gin.Context) services.LimitService {
	return services.LimitService{
		Repo:      repositories.LimitRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/v2/system/limit
func GetLimits(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	limits, total, err := limitService(c).List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, limits, total, p)
}

// GET /api/v2/system/limit/:id
func GetLimitByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	limit, err := limitService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, limit)
}

// POST /api/v2/system/limit
func CreateLimit(c *gin.Context) {
	var req models.Limit
	if !BindJSONOrError(c, &req) {
		return
	}
	created, err := limitService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PATCH /api/v2/system/limit/:id
func UpdateLimit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		respondError(c, http.StatusBadRequest, "request body is empty", nil)
		return
	}
	updated, err := limitService(c).UpdatePartial(id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v2/system/limit/:id
func DeleteLimit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := limitService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
