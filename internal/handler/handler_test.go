package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cadtools/internal/config"
	"cadtools/internal/domain"
	"cadtools/internal/handler"
	"cadtools/internal/service"
	"cadtools/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSheetSizeHandler() (*handler.SheetSizeHandler, *mocks.MockSheetSizeService) {
	mockSvc := new(mocks.MockSheetSizeService)
	limits := config.ReportsConfig{DefaultLimit: 20, MaxLimit: 100}
	return handler.NewSheetSizeHandler(mockSvc, limits, zap.NewNop()), mockSvc
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{fmt.Errorf("wrapped: %w", domain.ErrReportNotFound), http.StatusNotFound, "REPORT_NOT_FOUND"},
		{domain.ErrTableNotFound, http.StatusNotFound, "TABLE_NOT_FOUND"},
		{domain.ErrInvalidDimensions, http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{domain.ErrInvalidTableName, http.StatusBadRequest, "INVALID_TABLE_NAME"},
		{domain.ErrInvalidTableEdit, http.StatusBadRequest, "INVALID_TABLE_EDIT"},
		{domain.ErrInvalidDocument, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{domain.ErrInvalidManifest, http.StatusBadRequest, "INVALID_MANIFEST"},
		{domain.ErrManifestReadFailed, http.StatusBadGateway, "MANIFEST_READ_FAILED"},
		{domain.ErrTableWriteFailed, http.StatusInternalServerError, "TABLE_WRITE_FAILED"},
		{errors.Join(domain.ErrStorageFailed, errors.New("denied")), http.StatusInternalServerError, "STORAGE_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestSheetSizeHandler_Classify_BadBody(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sheet-sizes/classify", strings.NewReader(`{"height": 297}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Classify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, parseResponse(t, w).Success)
	mockSvc.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestSheetSizeHandler_Count_OnlyDrawings(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()

	report := &domain.SheetSizeReport{ID: uuid.New(), DocumentCount: 1}
	mockSvc.On("Count", mock.Anything, mock.MatchedBy(func(docs []domain.DrawingDocument) bool {
		return len(docs) == 1 && docs[0].FullFileName() == "/p/a.cdw"
	})).Return(report, nil)

	body := `{"documents": [
		{"path": "/p/a.cdw", "sheets": [{"height": 297, "width": 210}]},
		{"path": "/p/a.m3d"}
	]}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sheet-sizes/count", strings.NewReader(body))

	h.Count(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, parseResponse(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestSheetSizeHandler_Count_InvalidSheet(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sheet-sizes/count",
		strings.NewReader(`{"documents": [{"path": "/p/a.cdw", "sheets": [{"height": 0, "width": 210}]}]}`))

	h.Count(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DIMENSIONS", parseResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestSheetSizeHandler_Count_MalformedBody(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sheet-sizes/count", strings.NewReader(`{not json`))

	h.Count(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_MANIFEST", parseResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestSheetSizeHandler_ListReports_ClampsLimit(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()
	mockSvc.On("ListReports", mock.Anything, 0, 20).Return([]domain.SheetSizeReport{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sheet-sizes/reports?offset=-3&limit=5000", http.NoBody)

	h.ListReports(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 20, resp.Meta.Limit)
	mockSvc.AssertExpectations(t)
}

func TestSheetSizeHandler_GetReport_InvalidID(t *testing.T) {
	h, _ := newSheetSizeHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sheet-sizes/reports/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", parseResponse(t, w).Error.Code)
}

func TestSheetSizeHandler_GetReport_NotFound(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()
	id := uuid.New()
	mockSvc.On("GetReport", mock.Anything, id).Return(nil, domain.ErrReportNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sheet-sizes/reports/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetReport(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSheetSizeHandler_ExportReport(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()
	id := uuid.New()
	mockSvc.On("Export", mock.Anything, id, service.FormatCSV).Return(&service.ExportFile{
		Filename:    "sheet_sizes_2026-10-15.csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        []byte("Size\n"),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sheet-sizes/reports/"+id.String()+"/export?format=csv", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.ExportReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="sheet_sizes_2026-10-15.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Size\n", w.Body.String())
}

func TestSheetSizeHandler_PublishReport_BadFormat(t *testing.T) {
	h, mockSvc := newSheetSizeHandler()
	id := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/x?format=pdf", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.PublishReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", parseResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_At(t *testing.T) {
	mockSvc := new(mocks.MockWorkspaceService)
	h := handler.NewDocumentHandler(mockSvc, zap.NewNop())
	mockSvc.On("At", 1).Return(&domain.Record{FullPath: "/p/b.cdw"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/at/1", http.NoBody)
	c.Params = gin.Params{{Key: "index", Value: "1"}}

	h.At(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_file_name":"/p/b.cdw"`)
}

func TestDocumentHandler_At_InvalidIndex(t *testing.T) {
	mockSvc := new(mocks.MockWorkspaceService)
	h := handler.NewDocumentHandler(mockSvc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/at/x", http.NoBody)
	c.Params = gin.Params{{Key: "index", Value: "x"}}

	h.At(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "At", mock.Anything)
}

func TestDocumentHandler_List_ParsesTypes(t *testing.T) {
	mockSvc := new(mocks.MockWorkspaceService)
	h := handler.NewDocumentHandler(mockSvc, zap.NewNop())
	types := []domain.DocumentType{domain.DocumentTypeDrawing, domain.DocumentTypePart}
	mockSvc.On("List", types, "shaft").Return([]*domain.Record{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents?type=drawing,Part&q=shaft", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Load_ManifestError(t *testing.T) {
	mockSvc := new(mocks.MockWorkspaceService)
	h := handler.NewDocumentHandler(mockSvc, zap.NewNop())
	mockSvc.On("Load", mock.Anything, true).Return(nil, domain.ErrManifestReadFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/load?replace=true", http.NoBody)

	h.Load(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestTableHandler_Edit_MissingOp(t *testing.T) {
	mockSvc := new(mocks.MockTableService)
	h := handler.NewTableHandler(mockSvc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tables/Materials/edit", strings.NewReader(`{"rows": [1]}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "name", Value: "Materials"}}

	h.Edit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything)
}

func TestTableHandler_Get_ReadFailure(t *testing.T) {
	mockSvc := new(mocks.MockTableService)
	h := handler.NewTableHandler(mockSvc, zap.NewNop())
	mockSvc.On("Get", mock.Anything, "Materials").Return(nil, fmt.Errorf("%w: Materials: EOF", domain.ErrTableReadFailed))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tables/Materials", http.NoBody)
	c.Params = gin.Params{{Key: "name", Value: "Materials"}}

	h.Get(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "TABLE_READ_FAILED", resp.Error.Code)
	assert.Equal(t, "failed to open data table file", resp.Error.Message)
}
