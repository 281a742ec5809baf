package registry

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velt/spriteset/internal/config"
	"github.com/velt/spriteset/internal/loader"
)

func writeImage(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 12))))
}

func newRegistry() *Registry {
	return New(loader.New(config.Default()))
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "ann/a/outfits/casual.png")
	writeImage(t, root, "bea/a/outfits/uniform.png")
	// "broken" has no outfits directory at all and must be skipped.
	writeImage(t, root, "broken/a/faces/face/0.png")
	// Stray files at the root are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	r := newRegistry()
	require.NoError(t, r.LoadAll(context.Background(), root))

	assert.Equal(t, []string{"ann", "bea"}, r.Characters())
	_, ok := r.Body("broken")
	assert.False(t, ok)
}

func TestLoadAllUnreadableRoot(t *testing.T) {
	r := newRegistry()
	err := r.LoadAll(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestReloadReplacesRecord(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeImage(t, root, "ann/a/outfits/casual.png")

	r := newRegistry()
	require.NoError(t, r.Load(ctx, root, "ann"))
	first, ok := r.Body("ann")
	require.True(t, ok)

	writeImage(t, root, "ann/a/outfits/formal.png")
	require.NoError(t, r.Load(ctx, root, "ann"))
	second, ok := r.Body("ann")
	require.True(t, ok)

	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"casual"}, first.Outfits())
	assert.Equal(t, []string{"casual", "formal"}, second.Outfits())
}

func TestLoadFailureKeepsPreviousRecord(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeImage(t, root, "ann/a/outfits/casual.png")

	r := newRegistry()
	require.NoError(t, r.Load(ctx, root, "ann"))

	// Corrupt the representative image and reload: the load fails but the
	// prior record stays available.
	p := filepath.Join(root, "ann", "a", "outfits", "casual.png")
	require.NoError(t, os.WriteFile(p, []byte("junk"), 0o644))
	require.Error(t, r.Load(ctx, root, "ann"))

	body, ok := r.Body("ann")
	require.True(t, ok)
	assert.Equal(t, []string{"casual"}, body.Outfits())
}
