package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// Example returns the configuration Init writes.
func Example() *Config {
	return &Config{
		Version: CurrentVersion,
		Build: BuildConfig{
			OutputRoot:           "Bundles",
			BuildTarget:          "Android",
			BuildVersion:         VersionAuto,
			BuildMode:            "IncrementalBuild",
			BuildPipeline:        "builtin",
			CompressOption:       "LZ4",
			VerifyBuildingResult: true,
		},
		BuildMap: "Library/bundlebuilder/buildmap.yaml",
		AssetDatabase: AssetDBConfig{
			ProjectRoot: ".",
			Index:       "Library/bundlebuilder/assets.db",
		},
		Engine: EngineConfig{
			Command: "${UNITY_EDITOR}",
			Args:    []string{"-batchmode", "-quit", "-executeMethod", "BundleBuild.Run"},
		},
		Output: OutputConfig{
			Report:  "Library/bundlebuilder/last-run.yaml",
			History: "Library/bundlebuilder/history.db",
		},
	}
}

// Init writes an example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}
	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example configuration").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.FileSystemError("write configuration file").WithCause(err).WithContext("path", configPath).Build()
	}
	return nil
}
