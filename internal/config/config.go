// Package config loads the build configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/vcs"
)

// VersionAuto asks for the build version to be derived from git.
const VersionAuto = "auto"

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1"

// Config is the on-disk build configuration.
type Config struct {
	Version       string        `yaml:"version"`
	Build         BuildConfig   `yaml:"build"`
	BuildMap      string        `yaml:"build_map"`
	AssetDatabase AssetDBConfig `yaml:"asset_database"`
	Engine        EngineConfig  `yaml:"engine,omitempty"`
	Output        OutputConfig  `yaml:"output,omitempty"`

	// dir is the directory of the loaded file; relative paths resolve against it.
	dir string
}

// BuildConfig mirrors build.BuildParameters with loosely typed enum fields.
type BuildConfig struct {
	OutputRoot            string           `yaml:"output_root"`
	BuildTarget           string           `yaml:"build_target"`
	BuildVersion          string           `yaml:"build_version"`
	BuildMode             string           `yaml:"build_mode"`
	BuildPipeline         string           `yaml:"build_pipeline,omitempty"`
	CompressOption        string           `yaml:"compress_option"`
	DisableWriteTypeTree  bool             `yaml:"disable_write_type_tree"`
	IgnoreTypeTreeChanges bool             `yaml:"ignore_type_tree_changes"`
	VerifyBuildingResult  bool             `yaml:"verify_building_result"`
	Scriptable            ScriptableConfig `yaml:"scriptable,omitempty"`
}

// ScriptableConfig holds scriptable pipeline settings.
type ScriptableConfig struct {
	WriteLinkXML bool `yaml:"write_link_xml"`
}

// AssetDBConfig tells the verifier where asset identities come from. With an
// index set, identities are read from the SQLite index; otherwise from the
// .meta files under ProjectRoot.
type AssetDBConfig struct {
	ProjectRoot string `yaml:"project_root"`
	Index       string `yaml:"index,omitempty"`
}

// EngineConfig selects the packaging engine. An empty command means the
// output directory is already built.
type EngineConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// OutputConfig holds optional side outputs of a run.
type OutputConfig struct {
	Report      string     `yaml:"report,omitempty"`
	MetricsFile string     `yaml:"metrics_file,omitempty"`
	History     string     `yaml:"history,omitempty"`
	NATS        NATSConfig `yaml:"nats,omitempty"`
}

// NATSConfig enables publishing run events. An empty URL disables it.
type NATSConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Load reads the configuration at configPath, expanding ${VAR} references from
// the environment, and applies defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.FileSystemError("read configuration file").WithCause(err).WithContext("path", configPath).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(configPath)
	return cfg, nil
}

// Parse decodes configuration YAML and applies defaults. Relative paths stay
// relative to the working directory.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "decode configuration").Build()
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Build.OutputRoot == "" {
		c.Build.OutputRoot = "Bundles"
	}
	if c.AssetDatabase.ProjectRoot == "" {
		c.AssetDatabase.ProjectRoot = "."
	}
}

// Validate checks that enum fields parse and required fields are present.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return errors.ConfigError("unsupported configuration version").WithContext("version", c.Version).Build()
	}
	if strings.TrimSpace(c.Build.BuildTarget) == "" {
		return errors.ConfigError("build.build_target is required").Build()
	}
	if strings.TrimSpace(c.Build.BuildVersion) == "" {
		return errors.ConfigError("build.build_version is required (use \"auto\" to derive it from git)").Build()
	}
	if _, err := build.ParseBuildMode(c.Build.BuildMode); err != nil {
		return err
	}
	if _, err := build.ParsePipelineKind(c.Build.BuildPipeline); err != nil {
		return err
	}
	if _, err := build.ParseCompressOption(c.Build.CompressOption); err != nil {
		return err
	}
	return nil
}

// Resolve turns a path from the file into one usable from the working directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Parameters converts the build section to build.BuildParameters, resolving
// build_version "auto" from the git repository containing the project root.
func (c *Config) Parameters() (build.BuildParameters, error) {
	b := c.Build
	mode, err := build.ParseBuildMode(b.BuildMode)
	if err != nil {
		return build.BuildParameters{}, err
	}
	pipelineKind, err := build.ParsePipelineKind(b.BuildPipeline)
	if err != nil {
		return build.BuildParameters{}, err
	}
	compression, err := build.ParseCompressOption(b.CompressOption)
	if err != nil {
		return build.BuildParameters{}, err
	}

	version := strings.TrimSpace(b.BuildVersion)
	if strings.EqualFold(version, VersionAuto) {
		version, err = vcs.ResolveVersion(c.Resolve(c.AssetDatabase.ProjectRoot))
		if err != nil {
			return build.BuildParameters{}, err
		}
	}

	return build.BuildParameters{
		OutputRoot:            c.Resolve(b.OutputRoot),
		BuildTarget:           b.BuildTarget,
		BuildVersion:          version,
		BuildMode:             mode,
		BuildPipeline:         pipelineKind,
		CompressOption:        compression,
		DisableWriteTypeTree:  b.DisableWriteTypeTree,
		IgnoreTypeTreeChanges: b.IgnoreTypeTreeChanges,
		VerifyBuildingResult:  b.VerifyBuildingResult,
		Scriptable:            build.ScriptableOptions{WriteLinkXML: b.Scriptable.WriteLinkXML},
	}, nil
}
