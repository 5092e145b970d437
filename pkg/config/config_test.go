package config_test

import (
	"testing"

	"github.com/clangrun/clangrun/pkg/config"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestConfig_Validate(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  &config.Config{},
		},
		{
			name:    "extension without dot",
			cfg:     &config.Config{Extensions: []string{"cpp"}},
			wantErr: true,
		},
		{
			name:    "empty exclude dir",
			cfg:     &config.Config{ExcludeDirs: []string{""}},
			wantErr: true,
		},
		{
			name:    "invalid external pattern",
			cfg:     &config.Config{ExternalPatterns: []string{"[abc"}},
			wantErr: true,
		},
		{
			name:    "invalid tidy min_version",
			cfg:     &config.Config{Tidy: &config.Tidy{MinVersion: "foo"}},
			wantErr: true,
		},
		{
			name:    "invalid format min_version",
			cfg:     &config.Config{Format: &config.Format{MinVersion: "foo"}},
			wantErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			d.cfg.SetDefaults()
			err := d.cfg.Validate()
			if d.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFinder_Find(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		files []string
		param string
		exp   string
	}{
		{name: "param", param: "foo.yaml", exp: "foo.yaml"},
		{name: "not found", exp: ""},
		{name: "root", files: []string{"/src/.clangrun.yaml"}, exp: "/src/.clangrun.yaml"},
		{name: ".github", files: []string{"/src/.github/clangrun.yaml"}, exp: "/src/.github/clangrun.yaml"},
		{
			name:  "root takes precedence",
			files: []string{"/src/.github/clangrun.yaml", "/src/.clangrun.yaml"},
			exp:   "/src/.clangrun.yaml",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			for _, f := range d.files {
				if err := afero.WriteFile(fs, f, []byte("version: 1\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			p, err := config.NewFinder(fs).Find(d.param, "/src")
			if err != nil {
				t.Fatal(err)
			}
			if p != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, p)
			}
		})
	}
}

func TestReader_Read(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	content := `version: 1
extensions:
  - .cpp
exclude_dirs:
  - build
external_patterns:
  - "**/_deps/**"
tidy:
  checks: "-*,bugprone-*"
  build_dir: out/debug
  min_version: "15"
format:
  style: google
`
	if err := afero.WriteFile(fs, "/src/.clangrun.yaml", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, "/src/.clangrun.yaml"); err != nil {
		t.Fatal(err)
	}
	exp := &config.Config{
		Version:          1,
		Extensions:       []string{".cpp"},
		ExcludeDirs:      []string{"build"},
		ExternalPatterns: []string{"**/_deps/**"},
		Tidy: &config.Tidy{
			Checks:           "-*,bugprone-*",
			BuildDir:         "out/debug",
			MinVersion:       "15",
			UnsupportedFlags: config.DefaultUnsupportedFlags,
			IssueMarkers:     config.DefaultIssueMarkers,
			CleanMarkers:     config.DefaultCleanMarkers,
		},
		Format: &config.Format{
			Style: "google",
		},
	}
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Fatal(diff)
	}
}

func TestReader_Read_defaults(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	if err := config.NewReader(afero.NewMemMapFs()).Read(cfg, ""); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config.DefaultExcludeDirs, cfg.ExcludeDirs); diff != "" {
		t.Error(diff)
	}
	if cfg.Tidy.BuildDir != config.DefaultBuildDir {
		t.Errorf("BuildDir: wanted %q, got %q", config.DefaultBuildDir, cfg.Tidy.BuildDir)
	}
	if cfg.Format.Style != config.DefaultStyle {
		t.Errorf("Style: wanted %q, got %q", config.DefaultStyle, cfg.Format.Style)
	}
}

func TestReader_Read_invalid(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/src/.clangrun.yaml", []byte("version: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := config.NewReader(fs).Read(&config.Config{}, "/src/.clangrun.yaml"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/.github/clangrun.yaml", []byte("tidy:\n  build_dir: out\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, p, err := config.Load(fs, "", "/p")
	if err != nil {
		t.Fatal(err)
	}
	if p != "/p/.github/clangrun.yaml" {
		t.Fatalf("unexpected path: %s", p)
	}
	if cfg.Tidy.BuildDir != "out" {
		t.Fatalf("build_dir must be read from the file, got %s", cfg.Tidy.BuildDir)
	}
	if cfg.Format.Style != config.DefaultStyle {
		t.Fatalf("style must be the default, got %s", cfg.Format.Style)
	}

	cfg, p, err = config.Load(fs, "", "/q")
	if err != nil {
		t.Fatal(err)
	}
	if p != "" || cfg.Tidy.BuildDir != config.DefaultBuildDir {
		t.Fatalf("defaults must be used without a configuration file: %q %s", p, cfg.Tidy.BuildDir)
	}
}
