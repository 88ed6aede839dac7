package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cadtools/internal/domain"
	"cadtools/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondFile sends an attachment download.
func RespondFile(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, "REPORT_NOT_FOUND", "sheet size report not found"
	case errors.Is(err, domain.ErrTableNotFound):
		return http.StatusNotFound, "TABLE_NOT_FOUND", "data table not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInvalidDocument):
		return http.StatusBadRequest, "INVALID_DOCUMENT", "document must have a full file name"
	case errors.Is(err, domain.ErrInvalidManifest):
		return http.StatusBadRequest, "INVALID_MANIFEST", "request body is not a valid document manifest"
	case errors.Is(err, domain.ErrInvalidDimensions):
		return http.StatusBadRequest, "INVALID_DIMENSIONS", "sheet height and width must be positive"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: xlsx, csv"
	case errors.Is(err, domain.ErrInvalidTableName):
		return http.StatusBadRequest, "INVALID_TABLE_NAME", "table names may contain only letters, digits, '-' and '_'"
	case errors.Is(err, domain.ErrInvalidTableEdit):
		return http.StatusBadRequest, "INVALID_TABLE_EDIT", "invalid data table edit"
	case errors.Is(err, domain.ErrManifestReadFailed):
		return http.StatusBadGateway, "MANIFEST_READ_FAILED", "failed to read document manifest"
	case errors.Is(err, domain.ErrTableReadFailed):
		return http.StatusInternalServerError, "TABLE_READ_FAILED", "failed to open data table file"
	case errors.Is(err, domain.ErrTableWriteFailed):
		return http.StatusInternalServerError, "TABLE_WRITE_FAILED", "failed to save data table file"
	case errors.Is(err, domain.ErrStorageFailed):
		return http.StatusInternalServerError, "STORAGE_FAILED", "upload to object storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Server-side failures are logged with the request ID.
func HandleError(c *gin.Context, log *zap.Logger, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 && log != nil {
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	RespondError(c, status, code, msg)
}

// parsePagination reads offset and limit, clamping limit to maxLimit and
// falling back to defaultLimit when it is missing or out of range.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
