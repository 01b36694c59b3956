package handlers

import (
	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/services"
)

func reportsService(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		LimitRepo: repositories.LimitRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}
