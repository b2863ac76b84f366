package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"travelapi/internal/config"
)

func TestTranslateErr(t *testing.T) {
	assert.NoError(t, translateErr(nil))

	missing := minio.ErrorResponse{Code: "NoSuchKey", Key: "documents/u/a.pdf", StatusCode: http.StatusNotFound}
	err := translateErr(missing)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Contains(t, err.Error(), "documents/u/a.pdf")

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	assert.Equal(t, error(denied), translateErr(denied))

	other := errors.New("dial tcp: refused")
	assert.Equal(t, other, translateErr(other))
}

func TestNewMinIO_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{"no endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}, "endpoint is required"},
		{"no credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}, "credentials are required"},
		{"no bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(tt.cfg)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
