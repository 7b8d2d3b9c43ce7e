package objstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("s3://bucket/docs", "/tmp/dl", "/tmp/out", true)
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Location.Protocol)
	assert.Equal(t, "bucket", cfg.Location.Directory)
	assert.Equal(t, "docs", cfg.Location.File)
	assert.True(t, cfg.Recursive)
}

func TestNewConfig_InvalidLocation(t *testing.T) {
	_, err := NewConfig("not-a-location", "/tmp/dl", "/tmp/out", false)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestNewConfig_Idempotent(t *testing.T) {
	a, err := NewConfig("gs://bucket/a/b", "/dl", "/out", false)
	require.NoError(t, err)
	b, err := NewConfig("gs://bucket/a/b", "/dl", "/out", false)
	require.NoError(t, err)
	assert.Equal(t, a.Location, b.Location)
}
