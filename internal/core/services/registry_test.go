package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

func TestRegistrySchemes(t *testing.T) {
	r := NewRegistry()

	schemes := r.Schemes()
	assert.Contains(t, schemes, "s3")
	assert.Contains(t, schemes, "s3a")
	assert.Contains(t, schemes, "gs")
	assert.Contains(t, schemes, "gcs")
	assert.Contains(t, schemes, "dropbox")
}

func TestRegistryUnsupportedScheme(t *testing.T) {
	r := NewRegistry()

	_, err := r.Store(context.Background(), "carrierpigeon", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedScheme))
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry()

	called := false
	r.Register("s3", func(context.Context, map[string]string) (driven.ObjectStore, error) {
		called = true
		return nil, nil
	})

	_, err := r.Store(context.Background(), "s3", map[string]string{})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRegistryDropboxRequiresToken(t *testing.T) {
	r := NewRegistry()

	_, err := r.Store(context.Background(), "dropbox", map[string]string{})
	assert.Error(t, err)
}
