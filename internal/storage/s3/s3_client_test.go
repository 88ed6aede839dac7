package s3

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadtools/internal/config"
)

func newTestClient(t *testing.T, prefix string, expiry int64) *s3Client {
	t.Helper()
	storage, err := NewS3Client(&config.S3Config{
		Region:        "us-east-1",
		Bucket:        "cadtools-exports",
		Endpoint:      "http://localhost:9000",
		AccessKey:     "test",
		SecretKey:     "secret",
		Prefix:        prefix,
		PresignExpiry: expiry,
	})
	require.NoError(t, err)
	return storage.(*s3Client)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "exports/reports/a.csv", newTestClient(t, "exports", 0).objectKey("reports/a.csv"))
	assert.Equal(t, "reports/a.csv", newTestClient(t, "", 0).objectKey("reports/a.csv"))
}

func TestExpiryDefault(t *testing.T) {
	assert.Equal(t, time.Hour, newTestClient(t, "", 0).expiry)
	assert.Equal(t, 10*time.Minute, newTestClient(t, "", 600).expiry)
}

func TestPresignedURL(t *testing.T) {
	c := newTestClient(t, "exports", 600)

	url, err := c.PresignedURL(context.Background(), "exports/reports/a.csv")
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/cadtools-exports/exports/reports/a.csv")
	assert.Contains(t, url, "X-Amz-Expires=600")
}
