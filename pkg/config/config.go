// Package config reads .clangrun.yaml.
// Every list has a built-in default, so a repository without a configuration file
// still gets C/C++ extensions, the usual vendor/build exclusions and the standard
// external dependency patterns.
package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
)

const SchemaVersion = 1

type Config struct {
	Version          int      `json:"version,omitempty" jsonschema:"enum=1"`
	Extensions       []string `json:"extensions,omitempty" jsonschema:"description=File extensions of target files including the leading dot. e.g. .cpp"`
	ExcludeDirs      []string `json:"exclude_dirs,omitempty" yaml:"exclude_dirs" jsonschema:"description=Directory names that are skipped wherever they appear in a path"`
	ExternalPatterns []string `json:"external_patterns,omitempty" yaml:"external_patterns" jsonschema:"description=Glob patterns of external dependency paths whose diagnostics are ignored"`
	RespectGitignore bool     `json:"respect_gitignore,omitempty" yaml:"respect_gitignore" jsonschema:"description=Skip files ignored by .gitignore in the root directory"`
	Tidy             *Tidy    `json:"tidy,omitempty"`
	Format           *Format  `json:"format,omitempty"`
}

type Tidy struct {
	Path             string   `json:"path,omitempty" jsonschema:"description=clang-tidy executable. By default it's looked up from PATH"`
	Checks           string   `json:"checks,omitempty" jsonschema:"description=Value of --checks. If empty, .clang-tidy is used"`
	BuildDir         string   `json:"build_dir,omitempty" yaml:"build_dir" jsonschema:"description=Directory containing compile_commands.json"`
	ExtraArgs        []string `json:"extra_args,omitempty" yaml:"extra_args" jsonschema:"description=Arguments passed to clang-tidy as is"`
	MinVersion       string   `json:"min_version,omitempty" yaml:"min_version" jsonschema:"description=Minimum clang-tidy version"`
	UnsupportedFlags []string `json:"unsupported_flags,omitempty" yaml:"unsupported_flags" jsonschema:"description=Compiler flags removed from compile_commands.json. A flag ending with = matches by prefix"`
	IssueMarkers     []string `json:"issue_markers,omitempty" yaml:"issue_markers"`
	CleanMarkers     []string `json:"clean_markers,omitempty" yaml:"clean_markers"`
}

type Format struct {
	Path       string `json:"path,omitempty" jsonschema:"description=clang-format executable. By default it's looked up from PATH"`
	Style      string `json:"style,omitempty" jsonschema:"description=Value of --style"`
	MinVersion string `json:"min_version,omitempty" yaml:"min_version" jsonschema:"description=Minimum clang-format version"`
}

var (
	DefaultExtensions = []string{".c", ".cc", ".cpp", ".cxx", ".c++", ".h", ".hh", ".hpp", ".hxx", ".ipp", ".inl"}

	DefaultExcludeDirs = []string{
		".git", "build", "_deps", "third_party", "external", "vendor", "node_modules",
		"cmake-build-debug", "cmake-build-release", "out",
	}

	DefaultExternalPatterns = []string{
		"**/_deps/**",
		"**/third_party/**",
		"**/external/**",
		"**/vendor/**",
		"/usr/**",
		"/opt/**",
	}

	DefaultUnsupportedFlags = []string{
		"-fmodules-ts",
		"-fmodule-mapper=",
		"-fdeps-format=",
		"-fdeps-file=",
		"-fdeps-target=",
		"-fconcepts-diagnostics-depth=",
		"-fno-fat-lto-objects",
		"-mno-direct-extern-access",
		"-fcoroutines",
	}

	DefaultIssueMarkers = []string{"warning:", "error:"}
	DefaultCleanMarkers = []string{"No relevant warnings found"}
)

const (
	DefaultBuildDir = "build"
	DefaultStyle    = "file"
)

// SetDefaults fills empty fields with built-in values.
func (c *Config) SetDefaults() {
	if c.Version == 0 {
		c.Version = SchemaVersion
	}
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}
	if c.ExcludeDirs == nil {
		c.ExcludeDirs = DefaultExcludeDirs
	}
	if c.ExternalPatterns == nil {
		c.ExternalPatterns = DefaultExternalPatterns
	}
	if c.Tidy == nil {
		c.Tidy = &Tidy{}
	}
	if c.Tidy.BuildDir == "" {
		c.Tidy.BuildDir = DefaultBuildDir
	}
	if c.Tidy.UnsupportedFlags == nil {
		c.Tidy.UnsupportedFlags = DefaultUnsupportedFlags
	}
	if len(c.Tidy.IssueMarkers) == 0 {
		c.Tidy.IssueMarkers = DefaultIssueMarkers
	}
	if c.Tidy.CleanMarkers == nil {
		c.Tidy.CleanMarkers = DefaultCleanMarkers
	}
	if c.Format == nil {
		c.Format = &Format{}
	}
	if c.Format.Style == "" {
		c.Format.Style = DefaultStyle
	}
}

func validateSchemaVersion(v int) error {
	if v != SchemaVersion {
		return fmt.Errorf("unsupported configuration version %d. version must be %d", v, SchemaVersion)
	}
	return nil
}

func validateMinVersion(v string) error {
	if v == "" {
		return nil
	}
	if _, err := version.NewVersion(v); err != nil {
		return fmt.Errorf("parse min_version: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail in the middle of a run.
func (c *Config) Validate() error {
	if err := validateSchemaVersion(c.Version); err != nil {
		return err
	}
	for _, ext := range c.Extensions {
		if ext == "" || ext[0] != '.' {
			return fmt.Errorf("extension must start with '.': %q", ext)
		}
	}
	for _, dir := range c.ExcludeDirs {
		if dir == "" {
			return errors.New("exclude_dirs must not contain an empty string")
		}
	}
	for _, pattern := range c.ExternalPatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid external_patterns: %s", pattern)
		}
	}
	if c.Tidy != nil {
		if err := validateMinVersion(c.Tidy.MinVersion); err != nil {
			return fmt.Errorf("tidy: %w", err)
		}
	}
	if c.Format != nil {
		if err := validateMinVersion(c.Format.MinVersion); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	return nil
}

func getConfigPath(fs afero.Fs, dir string) (string, error) {
	for _, p := range []string{".clangrun.yaml", ".github/clangrun.yaml", ".clangrun.yml", ".github/clangrun.yml"} {
		p = filepath.Join(dir, p)
		f, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if f {
			return p, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it isn't empty.
// Otherwise it looks for a configuration file in dir and returns an empty string if nothing is found.
func (f *Finder) Find(configFilePath, dir string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs, dir)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes configFilePath into cfg, applies defaults and validates the result.
// An empty configFilePath yields the defaults.
func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath != "" {
		f, err := r.fs.Open(configFilePath)
		if err != nil {
			return fmt.Errorf("open a configuration file: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode a configuration file as YAML: %w", err)
		}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate the configuration: %w", err)
	}
	return nil
}

// Load finds a configuration file with Finder and reads it with Reader.
// It returns the path of the file, which is empty if the defaults are used.
func Load(fs afero.Fs, configFilePath, dir string) (*Config, string, error) {
	p, err := NewFinder(fs).Find(configFilePath, dir)
	if err != nil {
		return nil, "", fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &Config{}
	if err := NewReader(fs).Read(cfg, p); err != nil {
		return nil, "", err
	}
	return cfg, p, nil
}
