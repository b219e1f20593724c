package build

import "strings"

// BuildOptions is the flag set handed to the builtin packaging pipeline.
type BuildOptions uint32

// OptionNone is the empty flag set.
const OptionNone BuildOptions = 0

const (
	// OptionStrictMode fails the whole compile when any error is reported.
	OptionStrictMode BuildOptions = 1 << iota
	OptionDryRunBuild
	OptionUncompressedAssetBundle
	OptionChunkBasedCompression
	OptionForceRebuildAssetBundle
	OptionDisableWriteTypeTree
	OptionIgnoreTypeTreeChanges
	OptionDisableLoadAssetByFileName
	OptionDisableLoadAssetByFileNameWithExtension
)

var optionNames = []struct {
	flag BuildOptions
	name string
}{
	{OptionStrictMode, "StrictMode"},
	{OptionDryRunBuild, "DryRunBuild"},
	{OptionUncompressedAssetBundle, "UncompressedAssetBundle"},
	{OptionChunkBasedCompression, "ChunkBasedCompression"},
	{OptionForceRebuildAssetBundle, "ForceRebuildAssetBundle"},
	{OptionDisableWriteTypeTree, "DisableWriteTypeTree"},
	{OptionIgnoreTypeTreeChanges, "IgnoreTypeTreeChanges"},
	{OptionDisableLoadAssetByFileName, "DisableLoadAssetByFileName"},
	{OptionDisableLoadAssetByFileNameWithExtension, "DisableLoadAssetByFileNameWithExtension"},
}

// Has reports whether every flag in f is set.
func (o BuildOptions) Has(f BuildOptions) bool { return o&f == f }

// Names returns the set flag names in declaration order.
func (o BuildOptions) Names() []string {
	var names []string
	for _, n := range optionNames {
		if o.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (o BuildOptions) String() string {
	if o == OptionNone {
		return "None"
	}
	return strings.Join(o.Names(), "|")
}
