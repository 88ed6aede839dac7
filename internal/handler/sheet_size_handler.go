package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cadtools/internal/config"
	"cadtools/internal/domain"
	"cadtools/internal/provider/manifest"
	"cadtools/internal/service"
)

// SheetSizeHandler handles sheet classification, counting and report endpoints.
type SheetSizeHandler struct {
	sheetSvc service.SheetSizeService
	limits   config.ReportsConfig
	log      *zap.Logger
}

// NewSheetSizeHandler creates a new SheetSizeHandler.
func NewSheetSizeHandler(sheetSvc service.SheetSizeService, limits config.ReportsConfig, log *zap.Logger) *SheetSizeHandler {
	return &SheetSizeHandler{sheetSvc: sheetSvc, limits: limits, log: log}
}

// Sizes handles GET /api/v1/sheet-sizes
func (h *SheetSizeHandler) Sizes(c *gin.Context) {
	RespondOK(c, h.sheetSvc.Sizes())
}

// Classify handles POST /api/v1/sheet-sizes/classify
func (h *SheetSizeHandler) Classify(c *gin.Context) {
	var req struct {
		Height float64 `json:"height" binding:"required"`
		Width  float64 `json:"width" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "height and width are required")
		return
	}

	sheet, err := h.sheetSvc.Classify(req.Height, req.Width)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, sheet)
}

// Count handles POST /api/v1/sheet-sizes/count. The body uses the document
// manifest layout; only drawings are counted.
func (h *SheetSizeHandler) Count(c *gin.Context) {
	records, err := manifest.Decode(c.Request.Body)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	drawings := make([]domain.DrawingDocument, 0, len(records))
	for _, r := range records {
		if r.Type == domain.DocumentTypeDrawing {
			drawings = append(drawings, r)
		}
	}

	report, err := h.sheetSvc.Count(c.Request.Context(), drawings)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondCreated(c, report)
}

// ListReports handles GET /api/v1/sheet-sizes/reports
func (h *SheetSizeHandler) ListReports(c *gin.Context) {
	offset, limit := parsePagination(c, h.limits.DefaultLimit, h.limits.MaxLimit)

	reports, total, err := h.sheetSvc.ListReports(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondPaginated(c, reports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetReport handles GET /api/v1/sheet-sizes/reports/:id
func (h *SheetSizeHandler) GetReport(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}

	report, err := h.sheetSvc.GetReport(c.Request.Context(), id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, report)
}

// ExportReport handles GET /api/v1/sheet-sizes/reports/:id/export?format=xlsx|csv
func (h *SheetSizeHandler) ExportReport(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	file, err := h.sheetSvc.Export(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondFile(c, file.Filename, file.ContentType, file.Body)
}

// PublishReport handles POST /api/v1/sheet-sizes/reports/:id/publish?format=xlsx|csv
func (h *SheetSizeHandler) PublishReport(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	published, err := h.sheetSvc.Publish(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondCreated(c, published)
}

func parseReportID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return uuid.Nil, false
	}
	return id, true
}
