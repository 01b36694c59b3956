package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/http/middleware"
)

// errorBody is the DreamFactory-style error envelope.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

func respondError(c *gin.Context, status int, message string, context any) {
	body := gin.H{"error": errorBody{Code: status, Message: message, Context: context}}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		body["request_id"] = reqID
	}
	c.JSON(status, body)
}

// RespondDomainError maps domain errors to HTTP responses. Internal
// detail is logged, never surfaced.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var v domain.ValidationError
		errors.As(err, &v)
		var context any
		if v.Field != "" {
			context = gin.H{"field": v.Field}
		}
		respondError(c, http.StatusBadRequest, err.Error(), context)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error(), nil)
	default:
		log.Printf("[HTTP] request_id=%s internal error: %v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "an unexpected error occurred", nil)
	}
}
