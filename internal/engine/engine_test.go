package engine

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/manifest"
)

const buildManifest = `ManifestFileVersion: 0
CRC: 1
AssetBundleManifest:
  AssetBundleInfos:
    Info_0:
      Name: ui.bundle
      Dependencies: {}
    Info_1:
      Name: audio.bundle
      Dependencies: {}
`

func outputDir(t *testing.T) string {
	t.Helper()
	dir := filepath.ToSlash(filepath.Join(t.TempDir(), "Android"))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func TestPrebuilt(t *testing.T) {
	dir := outputDir(t)
	require.NoError(t, os.WriteFile(manifest.BuildManifestPath(dir), []byte(buildManifest), 0o600))

	res, err := Prebuilt{}.Build(context.Background(), Request{OutputDirectory: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"ui.bundle", "audio.bundle"}, res.BundleNames)
	assert.Equal(t, uint32(1), res.Manifest.CRC)
}

func TestPrebuilt_MissingManifest(t *testing.T) {
	_, err := Prebuilt{}.Build(context.Background(), Request{OutputDirectory: outputDir(t)})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestPrebuilt_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Prebuilt{}.Build(ctx, Request{OutputDirectory: outputDir(t)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFunc(t *testing.T) {
	var got Request
	e := Func(func(_ context.Context, req Request) (*Result, error) {
		got = req
		return &Result{BundleNames: []string{"a"}}, nil
	})
	res, err := e.Build(context.Background(), Request{BuildTarget: "iOS"})
	require.NoError(t, err)
	assert.Equal(t, "iOS", got.BuildTarget)
	assert.Equal(t, []string{"a"}, res.BundleNames)
}

func TestRequestEnv(t *testing.T) {
	builtin := requestEnv(Request{
		Pipeline:        build.PipelineBuiltin,
		BuildTarget:     "Android",
		OutputDirectory: "/out/Android",
		Options:         build.OptionStrictMode | build.OptionDryRunBuild,
	})
	assert.Contains(t, builtin, EnvBuildOptions+"=StrictMode|DryRunBuild")
	assert.NotContains(t, builtin, EnvUseCache+"=true")

	scriptable := requestEnv(Request{
		Pipeline: build.PipelineScriptable,
		Scriptable: build.ScriptableParameters{
			Compression:  build.CompressLZMA,
			UseCache:     true,
			ContentFlags: build.ContentFlagDisableWriteTypeTree,
		},
	})
	assert.Contains(t, scriptable, EnvCompression+"=LZMA")
	assert.Contains(t, scriptable, EnvUseCache+"=true")
	assert.Contains(t, scriptable, EnvContentFlags+"=1")
}

func TestCommand(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
	dir := outputDir(t)
	script := `printf '%s' "$MANIFEST" > "$BUNDLEBUILDER_OUTPUT_DIRECTORY/Android.manifest"`
	t.Setenv("MANIFEST", buildManifest)

	res, err := Command{Path: "/bin/sh", Args: []string{"-c", script}}.Build(context.Background(), Request{
		Pipeline:        build.PipelineBuiltin,
		BuildTarget:     "Android",
		OutputDirectory: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ui.bundle", "audio.bundle"}, res.BundleNames)
}

func TestCommand_LogsThroughInjectedLogger(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
	dir := outputDir(t)
	script := `echo compiled; echo "shader warning" >&2; printf '%s' "$MANIFEST" > "$BUNDLEBUILDER_OUTPUT_DIRECTORY/Android.manifest"`
	t.Setenv("MANIFEST", buildManifest)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := Command{Path: "/bin/sh", Args: []string{"-c", script}, Logger: logger}.Build(context.Background(), Request{
		Pipeline:        build.PipelineBuiltin,
		BuildTarget:     "Android",
		OutputDirectory: dir,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "command=/bin/sh")
	assert.Contains(t, out, "stdout=")
	assert.Contains(t, out, `stderr="shader warning\n"`)
}

func TestCommand_Failure(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
	_, err := Command{Path: "/bin/sh", Args: []string{"-c", "echo broken >&2; exit 3"}}.Build(context.Background(), Request{OutputDirectory: outputDir(t)})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryEngine))

	_, err = Command{}.Build(context.Background(), Request{})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
