package verify

import (
	"context"

	"git.home.luguber.info/inful/bundlebuilder/internal/assetdb"
	"git.home.luguber.info/inful/bundlebuilder/internal/util/sets"
)

// Compare returns one KindUnexpectedBundle diagnostic per built bundle that is
// not in expected, in built order. Expected bundles that were not built are not
// reported; the engine skips empty bundles.
func Compare(expected, built []string) []Diagnostic {
	unexpected := sets.NewOrdered(built...).Difference(sets.NewOrdered(expected...))
	out := make([]Diagnostic, 0, unexpected.Len())
	for _, name := range unexpected.Values() {
		out = append(out, Diagnostic{Kind: KindUnexpectedBundle, Bundle: name})
	}
	return out
}

// CompareAssets checks one built bundle against its planned asset list.
//
// A count mismatch is reported alone and skips the per-asset comparison. Otherwise
// every actual asset must resolve to a non-empty identity that some expected
// asset also resolves to. A resolver error aborts the comparison.
func CompareAssets(ctx context.Context, bundle string, expected, actual []string, resolver assetdb.Resolver) ([]Diagnostic, error) {
	if len(expected) != len(actual) {
		return []Diagnostic{{
			Kind:     KindAssetCountMismatch,
			Bundle:   bundle,
			Expected: len(expected),
			Actual:   len(actual),
		}}, nil
	}

	expectedIDs := sets.New[string]()
	for _, p := range expected {
		id, err := resolver.Identity(ctx, p)
		if err != nil {
			return nil, err
		}
		if id != "" {
			expectedIDs.Add(id)
		}
	}

	var out []Diagnostic
	for _, p := range actual {
		id, err := resolver.Identity(ctx, p)
		if err != nil {
			return nil, err
		}
		if id == "" {
			out = append(out, Diagnostic{Kind: KindInvalidAssetPath, Bundle: bundle, Asset: p})
			continue
		}
		if !expectedIDs.Has(id) {
			out = append(out, Diagnostic{Kind: KindUnmatchedAsset, Bundle: bundle, Asset: p})
		}
	}
	return out, nil
}
