package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
)

const serverVersion = "1.0.0"

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		respondError(c, http.StatusServiceUnavailable, "database unreachable", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/v2/system/environment
// Reports what the console dashboard shows about the instance.
func Environment(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"platform": gin.H{
			"version":  serverVersion,
			"language": runtime.Version(),
			"host_os":  runtime.GOOS,
		},
		"authentication": gin.H{
			"allow_open_registration": false,
			"login_attribute":         "email",
			"session_header":          middleware.SessionTokenHeader,
		},
	})
}

// GET /api/v2/system/report/limits
func DownloadLimitsReport(c *gin.Context) {
	data, filename, err := reportsService(c).GenerateLimitsReport()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
