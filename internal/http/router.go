package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	h "github.com/dreamfactorysoftware/df-admin-api/internal/http/handlers"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", middleware.SessionTokenHeader, "X-DreamFactory-API-Key"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  gin.H{"code": stdhttp.StatusNotFound, "message": "route not found"},
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/api/health", h.Health)
	r.GET("/api/db-check", h.DBCheck)

	api := r.Group("/api/v2")
	{
		// Session (login is the only unauthenticated system route)
		api.POST("/system/admin/session", h.CreateSession)

		auth := middleware.Auth(env.JWTSecret)
		api.GET("/system/admin/session", auth, h.GetSession)
		api.DELETE("/system/admin/session", auth, h.DeleteSession)

		sys := api.Group("/system", auth, middleware.RequireSysAdmin())
		{
			sys.GET("/environment", h.Environment)

			users := sys.Group("/user")
			users.GET("", h.GetUsers)
			users.GET("/:id", h.GetUserByID)
			users.POST("", h.CreateUser)
			users.PATCH("/:id", h.UpdateUser)
			users.PUT("/:id/password", h.SetUserPassword)
			users.DELETE("/:id", h.DeleteUser)

			admins := sys.Group("/admin")
			admins.GET("", h.GetAdmins)
			admins.GET("/:id", h.GetAdminByID)
			admins.POST("", h.CreateAdmin)
			admins.PATCH("/:id", h.UpdateAdmin)
			admins.DELETE("/:id", h.DeleteAdmin)

			roles := sys.Group("/role")
			roles.GET("", h.GetRoles)
			roles.GET("/:id", h.GetRoleByID)
			roles.POST("", h.CreateRole)
			roles.PUT("/:id", h.UpdateRole)
			roles.DELETE("/:id", h.DeleteRole)

			apps := sys.Group("/app")
			apps.GET("", h.GetApps)
			apps.GET("/:id", h.GetAppByID)
			apps.POST("", h.CreateApp)
			apps.PUT("/:id", h.UpdateApp)
			apps.POST("/:id/api_key", h.ResetAppAPIKey)
			apps.DELETE("/:id", h.DeleteApp)

			servicesGroup := sys.Group("/service")
			servicesGroup.GET("", h.GetServices)
			servicesGroup.GET("/:id", h.GetServiceByID)
			servicesGroup.POST("", h.CreateService)
			servicesGroup.PUT("/:id", h.UpdateService)
			servicesGroup.DELETE("/:id", h.DeleteService)

			limits := sys.Group("/limit")
			limits.GET("", h.GetLimits)
			limits.GET("/:id", h.GetLimitByID)
			limits.POST("", h.CreateLimit)
			limits.PATCH("/:id", h.UpdateLimit)
			limits.DELETE("/:id", h.DeleteLimit)

			lookups := sys.Group("/lookup")
			lookups.GET("", h.GetLookups)
			lookups.GET("/:id", h.GetLookupByID)
			lookups.POST("", h.CreateLookup)
			lookups.PUT("/:id", h.UpdateLookup)
			lookups.DELETE("/:id", h.DeleteLookup)

			templates := sys.Group("/email_template")
			templates.GET("", h.GetEmailTemplates)
			templates.GET("/:id", h.GetEmailTemplateByID)
			templates.POST("", h.CreateEmailTemplate)
			templates.PUT("/:id", h.UpdateEmailTemplate)
			templates.DELETE("/:id", h.DeleteEmailTemplate)

			sys.GET("/report/limits", h.DownloadLimitsReport)
		}

		// Schema browser for the bundled database service.
		schema := api.Group("/db/_schema", auth, middleware.RequireSysAdmin())
		schema.GET("", h.GetSchemaTables)
		schema.GET("/:table", h.GetSchemaTable)
		schema.GET("/:table/_field", h.GetSchemaFields)
		schema.GET("/:table/_field/:field", h.GetSchemaField)
	}

	return r
}
