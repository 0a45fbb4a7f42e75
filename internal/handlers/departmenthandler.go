package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
	"github.com/recruitbase/recruitbase-api/internal/export"
	"github.com/recruitbase/recruitbase-api/internal/services"
)

type DepartmentHandler struct {
	DepartmentService *services.DepartmentService
}

func NewDepartmentHandler(d *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{DepartmentService: d}
}

func (h *DepartmentHandler) List(c *gin.Context) {
	page, err := h.DepartmentService.List(c.Request.Context(), tenantID(c), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dept, err := h.DepartmentService.Get(c.Request.Context(), tenantID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dtos.DepartmentCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	dept, err := h.DepartmentService.Create(c.Request.Context(), tenantID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dtos.DepartmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	dept, err := h.DepartmentService.Update(c.Request.Context(), tenantID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.DepartmentService.Delete(c.Request.Context(), tenantID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DepartmentHandler) Export(c *gin.Context) {
	format := export.ParseFormat(c.Query("format"))
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="departments.%s"`, format))

	err := h.DepartmentService.Export(c.Request.Context(), tenantID(c), parseListQuery(c), format, c.Writer)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}
