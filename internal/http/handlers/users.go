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

func userService(c *gin.Context) services.UserService {
	return services.UserService{
		Repo:      repositories.UserRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

type userPayload struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	IsActive   *bool  `json:"is_active"`
	IsSysAdmin bool   `json:"is_sys_admin"`
	RoleID     *int64 `json:"role_id"`
}

// listUsers backs both /system/user and /system/admin.
func listUsers(c *gin.Context, adminOnly bool) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	users, total, err := userService(c).List(p, adminOnly)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, users, total, p)
}

func getUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	user, err := userService(c).Get(id, p.Related)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func createUser(c *gin.Context, asAdmin bool) {
	var req userPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	user := models.User{
		Name:      req.Name,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsActive:  true,
		RoleID:    req.RoleID,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.IsSysAdmin = asAdmin || req.IsSysAdmin

	created, err := userService(c).Create(user, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func patchUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		respondError(c, http.StatusBadRequest, "request body is empty", nil)
		return
	}
	updated, err := userService(c).UpdatePartial(id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type passwordPayload struct {
	Password string `json:"password"`
}

func setUserPassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req passwordPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := userService(c).SetPassword(id, req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := userService(c).Delete(id, middleware.SessionUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GET /api/v2/system/user
func GetUsers(c *gin.Context) { listUsers(c, false) }

// GET /api/v2/system/user/:id
func GetUserByID(c *gin.Context) { getUser(c) }

// POST /api/v2/system/user
func CreateUser(c *gin.Context) { createUser(c, false) }

// PATCH /api/v2/system/user/:id
func UpdateUser(c *gin.Context) { patchUser(c) }

// PUT /api/v2/system/user/:id/password
func SetUserPassword(c *gin.Context) { setUserPassword(c) }

// DELETE /api/v2/system/user/:id
func DeleteUser(c *gin.Context) { deleteUser(c) }

// GET /api/v2/system/admin
func GetAdmins(c *gin.Context) { listUsers(c, true) }

// GET /api/v2/system/admin/:id
func GetAdminByID(c *gin.Context) { getUser(c) }

// POST /api/v2/system/admin
func CreateAdmin(c *gin.Context) { createUser(c, true) }

// PATCH /api/v2/system/admin/:id
func UpdateAdmin(c *gin.Context) { patchUser(c) }

// DELETE /api/v2/system/admin/:id
func DeleteAdmin(c *gin.Context) { deleteUser(c) }
