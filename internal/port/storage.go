package port

import "context"

// StoredObject describes an export written to object storage.
type StoredObject struct {
	Key      string
	Location string
	ETag     string
}

// ExportStorage stores exported reports and tables in the configured bucket.
type ExportStorage interface {
	Put(ctx context.Context, key, contentType string, body []byte) (*StoredObject, error)
	PresignedURL(ctx context.Context, key string) (string, error)
}
