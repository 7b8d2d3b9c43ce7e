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
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// fakeStore is an in-memory ObjectStore for connector tests.
type fakeStore struct {
	shallow []driven.ObjectInfo
	deep    []driven.ObjectInfo
	content map[string]string
	uploads map[string]string
	lsErr   error
	putErr  map[string]error
}

func (f *fakeStore) Ls(_ context.Context, _ string) ([]driven.ObjectInfo, error) {
	return f.shallow, f.lsErr
}

func (f *fakeStore) Find(_ context.Context, _ string) ([]driven.ObjectInfo, error) {
	return f.deep, f.lsErr
}

func (f *fakeStore) Get(_ context.Context, remotePath, localPath string) error {
	content, ok := f.content[remotePath]
	if !ok {
		return errors.New("no such object")
	}
	return os.WriteFile(localPath, []byte(content), 0o644)
}

func (f *fakeStore) Put(_ context.Context, localPath, remotePath string) error {
	if err := f.putErr[remotePath]; err != nil {
		return err
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	if f.uploads == nil {
		f.uploads = make(map[string]string)
	}
	f.uploads[remotePath] = string(data)
	return nil
}

func newTestConfig(t *testing.T, raw string, recursive bool) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := NewConfig(raw, filepath.Join(dir, "downloads"), filepath.Join(dir, "output"), recursive)
	require.NoError(t, err)
	return cfg
}

func TestSource_Initialize(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", false)
	store := &fakeStore{shallow: []driven.ObjectInfo{{Path: "bucket/docs/a.txt", Size: 10}}}

	assert.NoError(t, NewSource(cfg, store).Initialize(context.Background()))
}

func TestSource_Initialize_EmptyRoot(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", false)
	store := &fakeStore{}

	err := NewSource(cfg, store).Initialize(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectorInit)
}

func TestSource_Initialize_Unreachable(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", false)
	store := &fakeStore{lsErr: errors.New("connection refused")}

	err := NewSource(cfg, store).Initialize(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectorInit)
}

func TestSource_List_ExcludesZeroSizePlaceholders(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", true)
	store := &fakeStore{deep: []driven.ObjectInfo{
		{Path: "bucket/docs/a.txt", Size: 10},
		{Path: "bucket/docs/sub/", Size: 0},
		{Path: "bucket/docs/sub/b.txt", Size: 5},
	}}

	docs, err := NewSource(cfg, store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "bucket/docs/a.txt", docs[0].RemoteRef)
	assert.Equal(t, "bucket/docs/sub/b.txt", docs[1].RemoteRef)
}

func TestSource_List_ShallowUsesLs(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", false)
	store := &fakeStore{
		shallow: []driven.ObjectInfo{{Path: "bucket/docs/a.txt", Size: 10}},
		deep: []driven.ObjectInfo{
			{Path: "bucket/docs/a.txt", Size: 10},
			{Path: "bucket/docs/sub/b.txt", Size: 5},
		},
	}

	docs, err := NewSource(cfg, store).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSource_List_PathMapping(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", true)
	store := &fakeStore{deep: []driven.ObjectInfo{{Path: "bucket/docs/sub/b.txt", Size: 5}}}

	docs, err := NewSource(cfg, store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, filepath.Join(cfg.DownloadDir, "docs", "sub", "b.txt"), docs[0].DownloadPath)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "docs", "sub", "b.txt.json"), docs[0].OutputPath)
}

func TestSource_List_DocumentsFetchThroughStore(t *testing.T) {
	cfg := newTestConfig(t, "s3://bucket/docs", false)
	store := &fakeStore{
		shallow: []driven.ObjectInfo{{Path: "bucket/docs/a.txt", Size: 5}},
		content: map[string]string{"bucket/docs/a.txt": "hello"},
	}

	docs, err := NewSource(cfg, store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	require.NoError(t, docs[0].Fetch(context.Background()))
	data, err := os.ReadFile(docs[0].DownloadPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestSource_Type(t *testing.T) {
	cfg := newTestConfig(t, "gs://bucket", false)
	assert.Equal(t, "gs", NewSource(cfg, &fakeStore{}).Type())
}
