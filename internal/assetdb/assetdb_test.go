package assetdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guidA = "5d1ef5a8a1b0e4b4d9c5e4c5f0e7e6a1"
	guidB = "0f9c8d7e6b5a49382716a5b4c3d2e1f0"
)

func writeAsset(t *testing.T, root, assetPath, meta string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(assetPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("content"), 0o600))
	if meta != "" {
		require.NoError(t, os.WriteFile(full+MetaExtension, []byte(meta), 0o600))
	}
}

func metaDoc(guid string) string {
	return "fileFormatVersion: 2\nguid: " + guid + "\nTextureImporter:\n  mipmaps: 0\n"
}

func TestNormalizeGUID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{guidA, guidA, true},
		{"5D1EF5A8-A1B0-E4B4-D9C5-E4C5F0E7E6A1", guidA, true},
		{"  " + guidB + " ", guidB, true},
		{"", "", false},
		{"00000000000000000000000000000000", "", false},
		{"not-a-guid", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeGUID(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestMetaResolver(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "Assets/UI/Login.prefab", metaDoc(guidA))
	writeAsset(t, root, "Assets/UI/NoMeta.png", "")
	writeAsset(t, root, "Assets/UI/Broken.png", "guid: [")

	r := NewMetaResolver(root)
	ctx := context.Background()

	got, err := r.Identity(ctx, "Assets/UI/Login.prefab")
	require.NoError(t, err)
	assert.Equal(t, guidA, got)

	for _, p := range []string{"Assets/UI/NoMeta.png", "Assets/UI/Broken.png", "", "../outside.png", "/abs/path.png"} {
		got, err := r.Identity(ctx, p)
		require.NoError(t, err, p)
		assert.Empty(t, got, p)
	}
}

func TestStaticResolver(t *testing.T) {
	r := StaticResolver{"a": guidA, "bad": "xyz"}
	got, err := r.Identity(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, guidA, got)

	got, _ = r.Identity(context.Background(), "bad")
	assert.Empty(t, got)
	got, _ = r.Identity(context.Background(), "missing")
	assert.Empty(t, got)
}

func TestSQLiteIndex_PutAndIdentity(t *testing.T) {
	idx, err := OpenSQLiteIndex(":memory:")
	require.NoError(t, err)
	defer idx.Close()
	ctx := context.Background()

	require.NoError(t, idx.Put(ctx, "Assets/a.png", guidA))
	require.NoError(t, idx.Put(ctx, "Assets/a.png", guidB))
	require.Error(t, idx.Put(ctx, "Assets/b.png", "nope"))

	got, err := idx.Identity(ctx, "Assets/a.png")
	require.NoError(t, err)
	assert.Equal(t, guidB, got)

	got, err = idx.Identity(ctx, "Assets/missing.png")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteIndex_Import(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "Assets/UI/Login.prefab", metaDoc(guidA))
	writeAsset(t, root, "Assets/Audio/click.wav", metaDoc(guidB))
	writeAsset(t, root, "Assets/Audio/empty.wav", "fileFormatVersion: 2\n")
	writeAsset(t, root, "Packages/ignored.asset", metaDoc(guidA))

	idx, err := OpenSQLiteIndex(filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	defer idx.Close()
	ctx := context.Background()

	stats, err := idx.Import(ctx, root, "Assets")
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Indexed: 2, Skipped: 1}, stats)

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := idx.Identity(ctx, "Assets/Audio/click.wav")
	require.NoError(t, err)
	assert.Equal(t, guidB, got)
}

func TestSQLiteIndex_ImportMissingDir(t *testing.T) {
	idx, err := OpenSQLiteIndex(":memory:")
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Import(context.Background(), t.TempDir(), "Assets")
	require.Error(t, err)
}
