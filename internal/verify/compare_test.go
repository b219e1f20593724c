package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bundlebuilder/internal/assetdb"
)

const (
	g1 = "11111111111111111111111111111111"
	g2 = "22222222222222222222222222222222"
	g3 = "33333333333333333333333333333333"
)

func TestCompare(t *testing.T) {
	t.Run("unexpected bundle reported", func(t *testing.T) {
		diags := Compare([]string{"A", "B"}, []string{"A", "B", "C"})
		require.Len(t, diags, 1)
		assert.Equal(t, Diagnostic{Kind: KindUnexpectedBundle, Bundle: "C"}, diags[0])
	})

	t.Run("exact set passes", func(t *testing.T) {
		assert.Empty(t, Compare([]string{"A", "B"}, []string{"B", "A"}))
	})

	t.Run("missing built bundle is not a bundle-set failure", func(t *testing.T) {
		assert.Empty(t, Compare([]string{"A", "B"}, []string{"A"}))
	})

	t.Run("order follows built list", func(t *testing.T) {
		diags := Compare(nil, []string{"Z", "Y", "Z"})
		require.Len(t, diags, 2)
		assert.Equal(t, "Z", diags[0].Bundle)
		assert.Equal(t, "Y", diags[1].Bundle)
	})
}

func TestCompareAssets_IdentityNotPath(t *testing.T) {
	// The asset was renamed after planning; identity still matches.
	resolver := assetdb.StaticResolver{"Assets/old.png": g1, "Assets/new.png": g1}
	diags, err := CompareAssets(context.Background(), "ui", []string{"Assets/old.png"}, []string{"Assets/new.png"}, resolver)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCompareAssets_Unmatched(t *testing.T) {
	resolver := assetdb.StaticResolver{"a": g1, "b": g2, "c": g3}
	diags, err := CompareAssets(context.Background(), "ui", []string{"a", "b"}, []string{"a", "c"}, resolver)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Diagnostic{Kind: KindUnmatchedAsset, Bundle: "ui", Asset: "c"}, diags[0])
}

func TestCompareAssets_InvalidPath(t *testing.T) {
	resolver := assetdb.StaticResolver{"a": g1, "b": g2}
	diags, err := CompareAssets(context.Background(), "ui", []string{"a", "b"}, []string{"a", "Assets/ü?.png"}, resolver)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, KindInvalidAssetPath, diags[0].Kind)
	assert.Equal(t, "Assets/ü?.png", diags[0].Asset)
}

func TestCompareAssets_CountMismatch(t *testing.T) {
	resolver := assetdb.StaticResolver{"a": g1, "b": g2, "zzz": g3}
	diags, err := CompareAssets(context.Background(), "ui", []string{"a", "b"}, []string{"zzz"}, resolver)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Diagnostic{Kind: KindAssetCountMismatch, Bundle: "ui", Expected: 2, Actual: 1}, diags[0])
}

type failingResolver struct{ err error }

func (f failingResolver) Identity(context.Context, string) (string, error) { return "", f.err }

func TestCompareAssets_ResolverError(t *testing.T) {
	boom := errors.New("db closed")
	_, err := CompareAssets(context.Background(), "ui", []string{"a"}, []string{"a"}, failingResolver{boom})
	assert.ErrorIs(t, err, boom)
}

func TestDiagnosticMessage(t *testing.T) {
	assert.Equal(t, "unexpected bundle in build output: C", Diagnostic{Kind: KindUnexpectedBundle, Bundle: "C"}.Message())
	assert.Contains(t, Diagnostic{Kind: KindAssetCountMismatch, Bundle: "ui", Expected: 2, Actual: 1}.Message(), "expected 2, built 1")
	assert.Equal(t, "unmatched asset in built bundle ui: c", Diagnostic{Kind: KindUnmatchedAsset, Bundle: "ui", Asset: "c"}.Message())
}
