package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/jinkisoma/web-manager/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *AttachmentStore {
	t.Helper()
	s, err := NewAttachmentStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStoreAndOpen(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Store("x.png", strings.NewReader("png-bytes")))
	assert.True(t, s.Exists("x.png"))

	f, err := s.Open("x.png")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestOpenMissingIsNotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.Open("nope.pdf")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Store("x.png", strings.NewReader("data")))
	require.NoError(t, s.Remove("x.png"))
	assert.False(t, s.Exists("x.png"))

	// deleting a missing file is not an error
	assert.NoError(t, s.Remove("x.png"))
}

func TestReplaceLeavesExactlyOneFile(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Store("x.png", strings.NewReader("old")))

	// save-new then delete-old, as the service sequences a replacement
	require.NoError(t, s.Store("y.png", strings.NewReader("new")))
	require.NoError(t, s.Remove("x.png"))

	assert.False(t, s.Exists("x.png"))
	assert.True(t, s.Exists("y.png"))
}

func TestRejectsPathEscapes(t *testing.T) {
	s := newStore(t)

	for _, name := range []string{"", "..", "../evil.png", "a/b.png", `a\b.png`} {
		err := s.Store(name, strings.NewReader("x"))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "name %q", name)
	}
}
