package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextExtractor_SinglePage(t *testing.T) {
	path := writeTempDoc(t, "doc.txt", "Alpha beta!")

	occs, err := NewTextExtractor().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []Occurrence{
		{Token: "alpha", Page: 1},
		{Token: "beta", Page: 1},
		{Token: "!", Page: 1},
	}, occs)
}

func TestTextExtractor_FormFeedPages(t *testing.T) {
	path := writeTempDoc(t, "doc.txt", "one\ftwo\fthree")

	occs, err := NewTextExtractor().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []Occurrence{
		{Token: "one", Page: 1},
		{Token: "two", Page: 2},
		{Token: "three", Page: 3},
	}, occs)
}

func TestTextExtractor_EmptyDocument(t *testing.T) {
	path := writeTempDoc(t, "doc.txt", "")

	occs, err := NewTextExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestTextExtractor_MissingFile(t *testing.T) {
	_, err := NewTextExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestTextExtractor_CancelledContext(t *testing.T) {
	path := writeTempDoc(t, "doc.txt", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTextExtractor().Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
