package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrInvalidManifest    = errors.New("malformed document manifest")
	ErrInvalidDimensions  = errors.New("sheet dimensions must be positive")
	ErrReportNotFound     = errors.New("sheet size report not found")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrTableNotFound      = errors.New("data table not found")
	ErrInvalidTableName   = errors.New("invalid data table name")
	ErrInvalidTableEdit   = errors.New("invalid data table edit")
	ErrTableReadFailed    = errors.New("failed to open data table file")
	ErrTableWriteFailed   = errors.New("failed to save data table file")
	ErrStorageFailed      = errors.New("upload to object storage failed")
	ErrManifestReadFailed = errors.New("failed to read document manifest")
)
