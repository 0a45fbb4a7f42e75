package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
	"github.com/recruitbase/recruitbase-api/internal/services"
)

const tenantKey = "company_id"

// TenantRequired pulls the tenant out of the X-Company-ID header and
// parks it on the context. Session auth lives outside this service;
// the header carries the session's resolved tenant claim.
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader("X-Company-ID"), 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-Company-ID header"})
			return
		}
		c.Set(tenantKey, uint(id))
		c.Next()
	}
}

func tenantID(c *gin.Context) uint {
	return c.GetUint(tenantKey)
}

// reserved query parameters that are not filter fields.
var reservedParams = map[string]bool{
	"search":    true,
	"date_from": true,
	"date_to":   true,
	"sort_by":   true,
	"sort_dir":  true,
	"page":      true,
	"page_size": true,
	"format":    true,
	"year":      true,
}

// parseListQuery lifts the URL parameters into a ListQuery. Everything
// not reserved rides along as a candidate filter; the query package
// decides what it recognizes.
func parseListQuery(c *gin.Context) dtos.ListQuery {
	q := dtos.ListQuery{
		Filters:  map[string]string{},
		Search:   c.Query("search"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	for key, vals := range c.Request.URL.Query() {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		q.Filters[key] = vals[0]
	}
	return q
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
