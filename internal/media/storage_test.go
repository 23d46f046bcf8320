package media

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instantshare/internal/util"
)

func TestSaveAndPath(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	ref, err := storage.Save("Holiday Photo.JPG", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
	assert.NotContains(t, ref, "Holiday", "client name must not leak into the reference")

	path, err := storage.Path(ref)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))
}

func TestPath_RejectsTraversal(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	for _, ref := range []string{"", "../secret", "a/b.jpg", `a\b.jpg`} {
		_, err := storage.Path(ref)
		assert.ErrorIs(t, err, util.ErrInvalidInput, "ref %q", ref)
	}
}

func TestPath_UnknownReference(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Path("missing.jpg")
	assert.ErrorIs(t, err, util.ErrNotFound)
}
