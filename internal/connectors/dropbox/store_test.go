package dropbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty-root sentinel", " /", ""},
		{"bare sentinel", " ", ""},
		{"empty", "", ""},
		{"folder", "folder", "/folder"},
		{"nested", "folder/sub/f.txt", "/folder/sub/f.txt"},
		{"already rooted", "/folder", "/folder"},
		{"trailing slash", "folder/", "/folder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apiPath(tt.in))
		})
	}
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
