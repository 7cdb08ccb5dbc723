package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zipWith builds an in-memory archive from name->content pairs and returns
// its file list.
func zipWith(t *testing.T, entries map[string]string) []*zip.File {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return r.File
}

func TestResolveExactMatch(t *testing.T) {
	files := zipWith(t, map[string]string{
		"photos/abc.jpg": "x",
		"riverlog.json":  "{}",
	})

	f := resolveAttachment(files, "photos/abc.jpg")
	require.NotNil(t, f)
	assert.Equal(t, "photos/abc.jpg", f.Name)
}

func TestResolveNestedSuffix(t *testing.T) {
	files := zipWith(t, map[string]string{
		"Export Folder/photos/abc.jpg": "x",
	})

	f := resolveAttachment(files, "photos/abc.jpg")
	require.NotNil(t, f)
	assert.Equal(t, "Export Folder/photos/abc.jpg", f.Name)
}

func TestResolveCaseInsensitive(t *testing.T) {
	files := zipWith(t, map[string]string{
		"Photos/ABC.JPG": "x",
	})

	f := resolveAttachment(files, "photos/abc.jpg")
	require.NotNil(t, f)
}

func TestResolveBackslashSeparators(t *testing.T) {
	files := zipWith(t, map[string]string{
		`photos\abc.jpg`: "x",
	})

	f := resolveAttachment(files, "photos/abc.jpg")
	require.NotNil(t, f)
}

func TestResolveBasenameFallback(t *testing.T) {
	files := zipWith(t, map[string]string{
		"some/strange/layout/abc.jpg": "x",
	})

	f := resolveAttachment(files, "photos/abc.jpg")
	require.NotNil(t, f)
	assert.Equal(t, "some/strange/layout/abc.jpg", f.Name)
}

func TestResolveAttachmentMiss(t *testing.T) {
	files := zipWith(t, map[string]string{
		"photos/other.jpg": "x",
	})

	assert.Nil(t, resolveAttachment(files, "photos/abc.jpg"))
}

func TestResolveManifestNested(t *testing.T) {
	files := zipWith(t, map[string]string{
		"Export Folder/riverlog.json": "{}",
	})

	f := resolveManifest(files, "riverlog.json")
	require.NotNil(t, f)
}

func TestResolveManifestNoBasenameFallback(t *testing.T) {
	// A manifest under an unrelated name must not match on basename; only
	// attachments get that leniency.
	files := zipWith(t, map[string]string{
		"backup/old-riverlog.json": "{}",
	})

	assert.Nil(t, resolveManifest(files, "riverlog.json"))
}

func TestResolvePrefersExactOverSuffix(t *testing.T) {
	files := zipWith(t, map[string]string{
		"photos/abc.jpg":        "exact",
		"nested/photos/abc.jpg": "nested",
	})

	f := resolveAttachment(files, "photos/abc.jpg")
	require.NotNil(t, f)
	assert.Equal(t, "photos/abc.jpg", f.Name)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "photos/abc.jpg", normalizePath(`Photos\ABC.jpg`))
	assert.Equal(t, "a/b/c", normalizePath(`A\b/C`))
}
