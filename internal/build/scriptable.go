package build

// ContentBuildFlags are content-level switches of the scriptable pipeline.
type ContentBuildFlags uint32

const (
	ContentFlagsNone                ContentBuildFlags = 0
	ContentFlagDisableWriteTypeTree ContentBuildFlags = 1 << 0
)

// ScriptableParameters is the parameter set for the scriptable packaging pipeline.
type ScriptableParameters struct {
	BuildTarget     string
	OutputDirectory string
	Compression     CompressOption
	UseCache        bool
	ContentFlags    ContentBuildFlags
	WriteLinkXML    bool
}
