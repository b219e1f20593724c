package verify

import "fmt"

// DiagnosticKind classifies a verification mismatch.
type DiagnosticKind string

const (
	KindUnexpectedBundle   DiagnosticKind = "unexpected_bundle"
	KindAssetCountMismatch DiagnosticKind = "asset_count_mismatch"
	KindInvalidAssetPath   DiagnosticKind = "invalid_asset_path"
	KindUnmatchedAsset     DiagnosticKind = "unmatched_asset"
)

// Diagnostic is one detected divergence between plan and build output.
type Diagnostic struct {
	Kind   DiagnosticKind
	Bundle string
	// Asset is empty for bundle-level diagnostics.
	Asset    string
	Expected int
	Actual   int
}

// Message renders the diagnostic for operators.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case KindUnexpectedBundle:
		return fmt.Sprintf("unexpected bundle in build output: %s", d.Bundle)
	case KindAssetCountMismatch:
		return fmt.Sprintf("asset count in built bundle %s does not match the plan: expected %d, built %d", d.Bundle, d.Expected, d.Actual)
	case KindInvalidAssetPath:
		return fmt.Sprintf("invalid asset path in bundle %s, check it for special characters: %s", d.Bundle, d.Asset)
	case KindUnmatchedAsset:
		return fmt.Sprintf("unmatched asset in built bundle %s: %s", d.Bundle, d.Asset)
	default:
		return fmt.Sprintf("%s: bundle=%s asset=%s", d.Kind, d.Bundle, d.Asset)
	}
}

// Result is the outcome of a verification pass.
type Result struct {
	Passed      bool
	Diagnostics []Diagnostic
	// AssetLevel reports whether the asset-level check ran.
	AssetLevel     bool
	BundlesChecked int
}

// Count returns the number of diagnostics of kind k.
func (r *Result) Count(k DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			n++
		}
	}
	return n
}
