package objstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// writeOutput creates a fake processed artifact under the config's output root.
func writeOutput(t *testing.T, cfg *Config, rel, content string) *domain.IngestDocument {
	t.Helper()
	outputPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(outputPath), 0o755))
	require.NoError(t, os.WriteFile(outputPath, []byte(content), 0o644))
	return domain.NewIngestDocument(rel, "", outputPath, nil)
}

func TestDestination_Write_MirrorsHierarchy(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/out/", false)
	store := &fakeStore{}
	doc := writeOutput(t, cfg, "sub/b.txt.json", `{"text":"b"}`)

	results := NewDestination(cfg, store).Write(context.Background(), []*domain.IngestDocument{doc})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	// No double slash, no dropped "sub" segment.
	assert.Equal(t, "bucket/out/sub/b.txt.json", results[0].Target)
	assert.Equal(t, `{"text":"b"}`, store.uploads["bucket/out/sub/b.txt.json"])
}

func TestDestination_Write_RootWithoutTrailingSlash(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/out", false)
	store := &fakeStore{}
	doc := writeOutput(t, cfg, "sub/b.txt.json", "{}")

	results := NewDestination(cfg, store).Write(context.Background(), []*domain.IngestDocument{doc})
	require.Len(t, results, 1)
	assert.Equal(t, "bucket/out/sub/b.txt.json", results[0].Target)
}

func TestDestination_Write_FailureIsolation(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/out", false)
	store := &fakeStore{putErr: map[string]error{
		"bucket/out/b.json": errors.New("throttled"),
	}}
	docs := []*domain.IngestDocument{
		writeOutput(t, cfg, "a.json", "{}"),
		writeOutput(t, cfg, "b.json", "{}"),
		writeOutput(t, cfg, "c.json", "{}"),
	}

	results := NewDestination(cfg, store).Write(context.Background(), docs)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrSourceConnection)
	assert.NoError(t, results[2].Err)

	// The failing document does not block the others.
	assert.Contains(t, store.uploads, "bucket/out/a.json")
	assert.Contains(t, store.uploads, "bucket/out/c.json")
}

func TestDestination_Initialize_NoOp(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/out", false)
	assert.NoError(t, NewDestination(cfg, &fakeStore{}).Initialize(context.Background()))
}
