package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_GeneralCase(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		directory string
		file      string
	}{
		{"nested file", "s3://bucket/a/b/c.txt", "bucket", "a/b/c.txt"},
		{"single file", "gs://my-bucket/doc.pdf", "my-bucket", "doc.pdf"},
		{"dir with trailing slash", "s3://bucket/docs/", "bucket", "docs/"},
		{"azure scheme", "abfs://container/path/file.html", "container", "path/file.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.directory, loc.Directory)
			assert.Equal(t, tt.file, loc.File)
			assert.Equal(t, tt.raw, loc.Raw)
		})
	}
}

func TestResolve_RootOnly(t *testing.T) {
	for _, raw := range []string{"s3://bucket", "s3://bucket/", "s3://bucket///"} {
		loc, err := Resolve(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "bucket", loc.Directory, raw)
		assert.Equal(t, "", loc.File, raw)
	}
}

func TestResolve_EmptyRootSentinel(t *testing.T) {
	loc, err := Resolve("dropbox:// /")
	require.NoError(t, err)
	assert.Equal(t, " ", loc.Directory)
	assert.Equal(t, "", loc.File)
	// Raw is preserved because " /" cannot be reconstructed from the parts.
	assert.Equal(t, "dropbox:// /", loc.Raw)
}

func TestResolve_SentinelOnlyForDropbox(t *testing.T) {
	_, err := Resolve("s3:// /")
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestResolve_Idempotent(t *testing.T) {
	loc, err := Resolve("s3://bucket/a/b/c.txt")
	require.NoError(t, err)

	reconstructed := loc.Protocol + "://" + loc.Directory + "/" + loc.File
	again, err := Resolve(reconstructed)
	require.NoError(t, err)
	assert.Equal(t, loc, again)
}

func TestResolve_Malformed(t *testing.T) {
	tests := []string{
		"bucket/a/b/c.txt", // no scheme
		"s3:/bucket/file",  // single slash
		"s3://",            // nothing after scheme
	}
	for _, raw := range tests {
		_, err := Resolve(raw)
		assert.ErrorIs(t, err, ErrInvalidLocation, raw)
	}
}

func TestResolve_UnrecognizedScheme(t *testing.T) {
	_, err := Resolve("ftp://bucket/file.txt")
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestDownloadPath_MirrorsHierarchy(t *testing.T) {
	got := DownloadPath("/tmp/dl", "bucket", "bucket/a/b/c.txt")
	assert.Equal(t, filepath.Join("/tmp/dl", "a", "b", "c.txt"), got)
}

func TestDownloadPath_NoCollisionForSameBasename(t *testing.T) {
	p1 := DownloadPath("/tmp/dl", "bucket", "bucket/dir1/f.txt")
	p2 := DownloadPath("/tmp/dl", "bucket", "bucket/dir2/f.txt")
	assert.NotEqual(t, p1, p2)
}

func TestOutputPath_AppendsJSON(t *testing.T) {
	got := OutputPath("/tmp/out", "bucket", "bucket/sub/b.txt")
	assert.Equal(t, filepath.Join("/tmp/out", "sub", "b.txt.json"), got)
}

func TestRemoteTarget_SeparatorNormalization(t *testing.T) {
	tests := []struct {
		name     string
		destRoot string
	}{
		{"trailing slash", "bucket/out/"},
		{"no trailing slash", "bucket/out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoteTarget(tt.destRoot, "output", filepath.Join("output", "sub", "b.txt.json"))
			assert.Equal(t, "bucket/out/sub/b.txt.json", got)
		})
	}
}
