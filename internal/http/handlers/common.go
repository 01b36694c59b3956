package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "github.com/dreamfactorysoftware/df-admin-api/internal/config"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

var (
	jwtSecret  []byte
	sessionTTL = 24 * time.Hour
)

// Configure wires environment-derived settings into the handler package.
// Called once from the router before any route is mounted.
func Configure(env intconfig.Env) {
	jwtSecret = []byte(env.JWTSecret)
	if env.SessionTTL > 0 {
		sessionTTL = env.SessionTTL
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "request payload is invalid", err.Error())
		return false
	}
	return true
}

// parseListParams reads the standard list query options. Unparsable
// numerics are rejected here; clamping and filter validation happen
// when the repository compiles the query.
func parseListParams(c *gin.Context) (domain.ListParams, bool) {
	p := domain.ListParams{
		Sort:   strings.TrimSpace(c.Query("sort")),
		Filter: strings.TrimSpace(c.Query("filter")),
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return p, false
		}
		p.Limit = n
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, "offset must be a non-negative integer", nil)
			return p, false
		}
		p.Offset = n
	}

	p.Related = utils.SplitCSV(c.Query("related"))
	p.Fields = utils.SplitCSV(c.Query("fields"))
	p.IncludeCount = queryBool(c, "include_count")
	p.Refresh = queryBool(c, "refresh")
	return p, true
}

func queryBool(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// respondList writes the canonical envelope. Meta is attached only when
// the caller asked for a count, matching what the console expects.
func respondList[T any](c *gin.Context, items []T, total int, p domain.ListParams) {
	env := domain.Envelope[T]{Resource: items}
	if p.IncludeCount {
		limit := p.Limit
		if limit <= 0 {
			limit = 50
		}
		meta := domain.NewMeta(total, p.Offset, limit)
		env.Meta = &meta
	}
	c.JSON(http.StatusOK, env)
}
