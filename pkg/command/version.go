package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var versionPattern = regexp.MustCompile(`version (\d+(?:\.\d+)*)`)

var ErrVersionNotFound = errors.New("version isn't found in the output")

// ParseVersion extracts a version from `--version` output of LLVM tools.
//
//	clang-format version 17.0.6
//	LLVM version 17.0.6
func ParseVersion(output string) (*version.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, ErrVersionNotFound
	}
	v, err := version.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parse a version: %w", err)
	}
	return v, nil
}

// ToolVersion runs `<path> --version` and parses the output.
func ToolVersion(ctx context.Context, exe Executor, path string) (*version.Version, error) {
	out, err := exe.Run(ctx, &Command{
		Path: path,
		Args: []string{"--version"},
	})
	if err != nil {
		return nil, fmt.Errorf("get the version: %w", err)
	}
	v, err := ParseVersion(out.Combined)
	if err != nil {
		return nil, logerr.WithFields(err, logrus.Fields{ //nolint:wrapcheck
			"output": out.Combined,
		})
	}
	return v, nil
}

// CheckMinVersion returns an error if the tool is older than minVersion.
// An empty minVersion disables the check.
func CheckMinVersion(ctx context.Context, exe Executor, path, minVersion string) (*version.Version, error) {
	if minVersion == "" {
		return nil, nil //nolint:nilnil
	}
	minV, err := version.NewVersion(minVersion)
	if err != nil {
		return nil, fmt.Errorf("parse the minimum version: %w", err)
	}
	v, err := ToolVersion(ctx, exe, path)
	if err != nil {
		return nil, err
	}
	if v.LessThan(minV) {
		return v, logerr.WithFields(errors.New("the tool is older than the minimum version"), logrus.Fields{ //nolint:wrapcheck
			"tool":        path,
			"version":     v.String(),
			"min_version": minV.String(),
		})
	}
	return v, nil
}
