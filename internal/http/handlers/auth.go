package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse mirrors what the console stores after login.
type sessionResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	IsSysAdmin   bool   `json:"is_sys_admin"`
	SessionToken string `json:"session_token"`
	TokenExpiry  int64  `json:"token_expiry_date"`
}

// POST /api/v2/system/admin/session
func CreateSession(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{
		Repo:      repositories.UserRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
	user, err := svc.Authenticate(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !user.IsSysAdmin {
		respondError(c, http.StatusForbidden, "administrator access required", nil)
		return
	}

	resp, err := issueSession(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/v2/system/admin/session
func GetSession(c *gin.Context) {
	repo := repositories.UserRepository{DB: intconfig.DB}
	user, err := repo.GetByID(middleware.SessionUserID(c), nil)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"email":        user.Email,
		"is_sys_admin": user.IsSysAdmin,
	})
}

// DELETE /api/v2/system/admin/session
// Stateless JWT: the server has nothing to revoke, the console drops
// its stored token.
func DeleteSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func issueSession(user models.User) (sessionResponse, error) {
	expiry := time.Now().Add(sessionTTL)
	claims := middleware.SessionClaims{
		Email:      user.Email,
		IsSysAdmin: user.IsSysAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{
		ID:           user.ID,
		Name:         user.Name,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		IsSysAdmin:   user.IsSysAdmin,
		SessionToken: token,
		TokenExpiry:  expiry.Unix(),
	}, nil
}
