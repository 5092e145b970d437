package format_test

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/command/commandtest"
	"github.com/clangrun/clangrun/pkg/config"
	"github.com/clangrun/clangrun/pkg/controller/format"
	"github.com/clangrun/clangrun/pkg/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SetDefaults()
	return cfg
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for p, content := range files {
		if err := afero.WriteFile(fs, p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

// newExecutor returns a fake clang-format which requires spaces instead of tabs.
func newExecutor(fs afero.Fs) *commandtest.Executor {
	return &commandtest.Executor{
		Paths: map[string]string{"clang-format": "/usr/bin/clang-format"},
		Handler: func(_ context.Context, cmd *command.Command) (*command.Output, error) {
			if cmd.Args[0] == "--version" {
				return &command.Output{Combined: "clang-format version 18.1.3\n"}, nil
			}
			file := cmd.Args[len(cmd.Args)-1]
			b, err := afero.ReadFile(fs, file)
			if err != nil {
				return nil, err
			}
			content := string(b)
			if !strings.Contains(content, "\t") {
				return &command.Output{}, nil
			}
			if slices.Contains(cmd.Args, "-i") {
				if err := afero.WriteFile(fs, file, []byte(strings.ReplaceAll(content, "\t", "    ")), 0o644); err != nil {
					return nil, err
				}
				return &command.Output{}, nil
			}
			return &command.Output{
				ExitCode: 1,
				Combined: file + ":1:1: error: code should be clang-formatted [-Wclang-format-violations]\n",
			}, nil
		},
	}
}

func TestController_Run_modeConflict(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{"/p/a.cpp": "\tint a;"})
	exe := newExecutor(fs)
	ctrl := format.New(fs, exe, newConfig(), &format.Param{Root: "/p", Check: true, Fix: true, Stdout: &bytes.Buffer{}})
	if err := ctrl.Run(context.Background(), logrus.NewEntry(logrus.New())); !errors.Is(err, format.ErrModeConflict) {
		t.Fatalf("wanted ErrModeConflict, got %v", err)
	}
	if n := len(exe.Calls()); n != 0 {
		t.Fatalf("nothing must be executed, got %d calls", n)
	}
}

func TestController_Run_check(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{
		"/p/a.cpp":              "\tint a;",
		"/p/b.h":                "int b;",
		"/p/third_party/c.cpp":  "\tint c;",
		"/p/build/generated.cc": "\tint d;",
	})
	exe := newExecutor(fs)
	stdout := &bytes.Buffer{}
	ctrl := format.New(fs, exe, newConfig(), &format.Param{Root: "/p", Stdout: stdout})
	if err := ctrl.Run(context.Background(), logrus.NewEntry(logrus.New())); !errors.Is(err, aggregate.ErrIssuesFound) {
		t.Fatalf("wanted ErrIssuesFound, got %v", err)
	}
	calls := exe.Calls()
	args := make([]string, len(calls))
	for i, c := range calls {
		args[i] = strings.Join(c.Args, " ")
	}
	slices.Sort(args)
	exp := []string{
		"--style=file --dry-run --Werror /p/a.cpp",
		"--style=file --dry-run --Werror /p/b.h",
	}
	if diff := cmp.Diff(exp, args); diff != "" {
		t.Fatal(diff)
	}
	b, err := afero.ReadFile(fs, "/p/a.cpp")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "\tint a;" {
		t.Fatal("check mode must not modify files")
	}
	if !strings.Contains(stdout.String(), "1 clean, 1 flagged, 0 failed") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestController_Run_excludesBuildDir(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{
		"/p/a.cpp":                               "int a;",
		"/p/cmake-build-relwithdebinfo/main.cpp": "\tint b;",
	})
	exe := newExecutor(fs)
	cfg := newConfig()
	cfg.Tidy.BuildDir = "cmake-build-relwithdebinfo"
	ctrl := format.New(fs, exe, cfg, &format.Param{Root: "/p", Stdout: &bytes.Buffer{}})
	if err := ctrl.Run(context.Background(), logrus.NewEntry(logrus.New())); err != nil {
		t.Fatalf("the build directory must not be checked: %v", err)
	}
	calls := exe.Calls()
	if len(calls) != 1 || calls[0].Args[len(calls[0].Args)-1] != "/p/a.cpp" {
		t.Fatalf("only a.cpp must be checked, got %d calls", len(calls))
	}
}

func TestController_Run_fixThenCheck(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{
		"/p/a.cpp":     "\tint a;",
		"/p/src/b.cpp": "\tint b;",
	})
	exe := newExecutor(fs)
	logE := logrus.NewEntry(logrus.New())

	fix := format.New(fs, exe, newConfig(), &format.Param{Root: "/p", Fix: true, Stdout: &bytes.Buffer{}})
	if err := fix.Run(context.Background(), logE); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []string{"/p/a.cpp", "/p/src/b.cpp"} {
		b, err := afero.ReadFile(fs, p)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(b), "\t") {
			t.Fatalf("%s must be formatted in place", p)
		}
	}

	stdout := &bytes.Buffer{}
	check := format.New(fs, exe, newConfig(), &format.Param{Root: "/p", Check: true, Verbose: true, Stdout: stdout})
	if err := check.Run(context.Background(), logE); err != nil {
		t.Fatalf("files must be clean after the fix: %v", err)
	}
	for _, want := range []string{"/p/a.cpp", "/p/src/b.cpp", "2 clean, 0 flagged, 0 failed"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("verbose output must contain %q:\n%s", want, stdout.String())
		}
	}
}

func TestController_Run_toolNotFound(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{"/p/a.cpp": "\tint a;"})
	exe := newExecutor(fs)
	ctrl := format.New(fs, exe, newConfig(), &format.Param{
		Root:     "/p",
		ToolPath: "/opt/llvm/bin/clang-format",
		Stdout:   &bytes.Buffer{},
	})
	err := ctrl.Run(context.Background(), logrus.NewEntry(logrus.New()))
	if !errors.Is(err, pipeline.ErrToolNotFound) {
		t.Fatalf("wanted ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "/opt/llvm/bin/clang-format") {
		t.Errorf("the error must contain the path: %v", err)
	}
	if n := len(exe.Calls()); n != 0 {
		t.Fatalf("nothing must be executed, got %d calls", n)
	}
}

func TestController_Run_style(t *testing.T) {
	t.Parallel()
	data := []struct {
		name      string
		files     map[string]string
		cfgStyle  string
		style     string
		expArg    string
		isErr     bool
		expCalled bool
	}{
		{
			name: "valid style file",
			files: map[string]string{
				"/p/a.cpp":         "int a;",
				"/p/.clang-format": "---\nLanguage: Cpp\nBasedOnStyle: Google\n---\nLanguage: Proto\nBasedOnStyle: LLVM\n",
			},
			expArg:    "--style=file",
			expCalled: true,
		},
		{
			name: "broken style file",
			files: map[string]string{
				"/p/a.cpp":         "int a;",
				"/p/.clang-format": "BasedOnStyle: [Google\n",
			},
			isErr: true,
		},
		{
			name: "broken style file is ignored with another style",
			files: map[string]string{
				"/p/a.cpp":         "int a;",
				"/p/.clang-format": "BasedOnStyle: [Google\n",
			},
			style:     "LLVM",
			expArg:    "--style=LLVM",
			expCalled: true,
		},
		{
			name:      "style from the configuration",
			files:     map[string]string{"/p/a.cpp": "int a;"},
			cfgStyle:  "Chromium",
			expArg:    "--style=Chromium",
			expCalled: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := newFs(t, d.files)
			exe := newExecutor(fs)
			cfg := newConfig()
			if d.cfgStyle != "" {
				cfg.Format.Style = d.cfgStyle
			}
			ctrl := format.New(fs, exe, cfg, &format.Param{Root: "/p", Style: d.style, Stdout: &bytes.Buffer{}})
			err := ctrl.Run(context.Background(), logrus.NewEntry(logrus.New()))
			if d.isErr {
				cfgErr := &pipeline.ConfigError{}
				if !errors.As(err, &cfgErr) {
					t.Fatalf("wanted ConfigError, got %v", err)
				}
			} else if err != nil {
				t.Fatal(err)
			}
			calls := exe.Calls()
			if !d.expCalled {
				if len(calls) != 0 {
					t.Fatalf("nothing must be executed, got %d calls", len(calls))
				}
				return
			}
			if len(calls) != 1 {
				t.Fatalf("wanted 1 call, got %d", len(calls))
			}
			if got := calls[0].Args[0]; got != d.expArg {
				t.Fatalf("wanted %s, got %s", d.expArg, got)
			}
		})
	}
}
