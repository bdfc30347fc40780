package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paljsingh/consultqueue/internal/blob/core"
)

func TestStore_PutGetHeadList(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, core.DriverFilesystem, s.Driver())

	info, err := s.Put(ctx, "run-1/outputPS5.txt", strings.NewReader("report body"), core.PutOptions{
		ContentType: "text/plain",
		Metadata:    map[string]string{"patients": "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size)

	data, err := os.ReadFile(filepath.Join(root, "run-1", "outputPS5.txt"))
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))

	info, rc, err := s.Get(ctx, "run-1/outputPS5.txt")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "report body", string(b))
	assert.Equal(t, "3", info.Metadata["patients"])

	head, err := s.Head(ctx, "run-1/outputPS5.txt")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", head.ContentType)

	_, err = s.Put(ctx, "run-1/outputPS5.txt", strings.NewReader("x"), core.PutOptions{})
	assert.ErrorIs(t, err, core.ErrExists)

	_, err = s.Put(ctx, "run-2/outputPS5.txt", strings.NewReader("y"), core.PutOptions{})
	require.NoError(t, err)

	list, err := s.List(ctx, "run-1/")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "run-1/outputPS5.txt", list[0].Key)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Get(ctx, "missing.txt")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.Head(ctx, "missing.txt")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"a/b.txt", false},
		{"", true},
		{"   ", true},
		{"../escape", true},
		{"/abs", true},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			_, err := sanitizeKey(tc.key)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
