package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBucketKey(t *testing.T) {
	tests := []struct {
		path   string
		bucket string
		key    string
	}{
		{"bucket/docs/a.txt", "bucket", "docs/a.txt"},
		{"bucket/docs", "bucket", "docs"},
		{"bucket", "bucket", ""},
		{"bucket/", "bucket", ""},
	}
	for _, tt := range tests {
		bucket, key := splitBucketKey(tt.path)
		assert.Equal(t, tt.bucket, bucket, tt.path)
		assert.Equal(t, tt.key, key, tt.path)
	}
}
