package assetdb

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Resolver maps an asset path to its content identity.
//
// An unknown or malformed path yields ("", nil). A non-nil error means the
// lookup itself failed and the caller should abort.
type Resolver interface {
	Identity(ctx context.Context, assetPath string) (string, error)
}

// NormalizeGUID canonicalizes a GUID to 32 lower-case hex digits.
// It reports false for malformed input and for the all-zero GUID.
func NormalizeGUID(raw string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || u == uuid.Nil {
		return "", false
	}
	return strings.ReplaceAll(u.String(), "-", ""), true
}

// StaticResolver is an in-memory path to GUID table.
type StaticResolver map[string]string

// Identity implements Resolver.
func (s StaticResolver) Identity(_ context.Context, assetPath string) (string, error) {
	guid, ok := NormalizeGUID(s[assetPath])
	if !ok {
		return "", nil
	}
	return guid, nil
}
