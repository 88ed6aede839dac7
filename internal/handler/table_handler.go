package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cadtools/internal/datatable"
	"cadtools/internal/service"
)

// TableHandler handles data table endpoints.
type TableHandler struct {
	tableSvc service.TableService
	log      *zap.Logger
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(tableSvc service.TableService, log *zap.Logger) *TableHandler {
	return &TableHandler{tableSvc: tableSvc, log: log}
}

// List handles GET /api/v1/tables
func (h *TableHandler) List(c *gin.Context) {
	names, err := h.tableSvc.List(c.Request.Context())
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, names)
}

// Get handles GET /api/v1/tables/:name
func (h *TableHandler) Get(c *gin.Context) {
	t, err := h.tableSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, t)
}

// Save handles PUT /api/v1/tables/:name
func (h *TableHandler) Save(c *gin.Context) {
	var req struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid table body")
		return
	}

	saved, err := h.tableSvc.Save(c.Request.Context(), &datatable.Table{
		Name:    c.Param("name"),
		Columns: req.Columns,
		Rows:    req.Rows,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, saved)
}

// Edit handles POST /api/v1/tables/:name/edit
func (h *TableHandler) Edit(c *gin.Context) {
	var edit service.TableEdit
	if err := c.ShouldBindJSON(&edit); err != nil || edit.Op == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "op is required")
		return
	}

	result, err := h.tableSvc.Edit(c.Request.Context(), c.Param("name"), edit)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, result)
}

// ColumnValues handles GET /api/v1/tables/:name/columns/:column?remove_empty=true
func (h *TableHandler) ColumnValues(c *gin.Context) {
	removeEmpty, _ := strconv.ParseBool(c.DefaultQuery("remove_empty", "false"))

	values, err := h.tableSvc.ColumnValues(c.Request.Context(), c.Param("name"), c.Param("column"), removeEmpty)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, values)
}

// Delete handles DELETE /api/v1/tables/:name
func (h *TableHandler) Delete(c *gin.Context) {
	if err := h.tableSvc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"message": "table deleted"})
}

// Export handles GET /api/v1/tables/:name/export?format=xlsx|csv
func (h *TableHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	file, err := h.tableSvc.Export(c.Request.Context(), c.Param("name"), format)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondFile(c, file.Filename, file.ContentType, file.Body)
}
