package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cadtools/internal/domain"
	"cadtools/internal/provider/manifest"
	"cadtools/internal/service"
)

// DocumentHandler handles the document workspace endpoints.
type DocumentHandler struct {
	workspace service.WorkspaceService
	log       *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(workspace service.WorkspaceService, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{workspace: workspace, log: log}
}

// Add handles POST /api/v1/documents. The body is a single manifest entry.
func (h *DocumentHandler) Add(c *gin.Context) {
	var req manifest.Document
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document body")
		return
	}
	doc, err := req.Record()
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	added, err := h.workspace.Add(doc)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	if !added {
		RespondOK(c, gin.H{"added": false, "document": doc})
		return
	}
	RespondCreated(c, gin.H{"added": true, "document": doc})
}

// List handles GET /api/v1/documents?type=drawing,part&q=shaft
func (h *DocumentHandler) List(c *gin.Context) {
	var types []domain.DocumentType
	if raw := c.Query("type"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			types = append(types, domain.ParseDocumentType(t))
		}
	}

	docs := h.workspace.List(types, c.Query("q"))
	RespondOK(c, docs)
}

// Get handles GET /api/v1/documents/lookup?path=...
func (h *DocumentHandler) Get(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "path is required")
		return
	}

	doc, err := h.workspace.Get(path)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, doc)
}

// At handles GET /api/v1/documents/at/:index
func (h *DocumentHandler) At(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	doc, err := h.workspace.At(index)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, doc)
}

// Find handles GET /api/v1/documents/find?text=...
func (h *DocumentHandler) Find(c *gin.Context) {
	doc, err := h.workspace.Find(c.Query("text"))
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, doc)
}

// FileNames handles GET /api/v1/documents/names?search=...
func (h *DocumentHandler) FileNames(c *gin.Context) {
	RespondOK(c, h.workspace.FileNames(c.Query("search")))
}

// Remove handles DELETE /api/v1/documents?path=...
func (h *DocumentHandler) Remove(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "path is required")
		return
	}

	if err := h.workspace.Remove(path); err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"message": "document removed"})
}

// RemoveAt handles DELETE /api/v1/documents/at/:index
func (h *DocumentHandler) RemoveAt(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	if err := h.workspace.RemoveAt(index); err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"message": "document removed"})
}

// Clear handles DELETE /api/v1/documents/all
func (h *DocumentHandler) Clear(c *gin.Context) {
	h.workspace.Clear()
	RespondOK(c, gin.H{"message": "workspace cleared"})
}

// Load handles POST /api/v1/documents/load?replace=true
func (h *DocumentHandler) Load(c *gin.Context) {
	replace, _ := strconv.ParseBool(c.DefaultQuery("replace", "false"))

	result, err := h.workspace.Load(c.Request.Context(), replace)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, result)
}

// CountSheets handles POST /api/v1/documents/count-sheets
func (h *DocumentHandler) CountSheets(c *gin.Context) {
	report, err := h.workspace.CountSheets(c.Request.Context())
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondCreated(c, report)
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "index must be an integer")
		return 0, false
	}
	return index, true
}
