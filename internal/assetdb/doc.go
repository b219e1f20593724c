// Package assetdb resolves asset paths to content identities (GUIDs).
//
// Verification compares assets by identity rather than by path, because an
// asset can be renamed between planning and building while remaining the same
// asset. Identities come from the ".meta" sidecar next to each asset, either
// read directly (MetaResolver) or through an SQLite index built from them
// (SQLiteIndex).
package assetdb
