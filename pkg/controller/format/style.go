package format

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/clangrun/clangrun/pkg/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const styleFile = "file"

// StyleFileNames are the files clang-format reads with --style=file.
var StyleFileNames = []string{".clang-format", "_clang-format"}

// StyleOptions is the part of .clang-format clangrun looks at.
// A file may contain one document per language.
type StyleOptions struct {
	Language     string `yaml:"Language"`
	BasedOnStyle string `yaml:"BasedOnStyle"`
}

// findStyleFile returns the style file in root, or an empty string.
func (c *Controller) findStyleFile(root string) (string, error) {
	for _, name := range StyleFileNames {
		p := filepath.Join(root, name)
		ok, err := afero.Exists(c.fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if ok {
			return p, nil
		}
	}
	return "", nil
}

// validateStyleFile parses the style file in root so a broken file is reported once
// instead of failing every file. A missing file isn't an error because clang-format
// also searches parent directories and falls back to its default style.
func (c *Controller) validateStyleFile(logE *logrus.Entry, root string) error {
	p, err := c.findStyleFile(root)
	if err != nil {
		return err
	}
	if p == "" {
		logE.Debug("no style file is found in the root directory")
		return nil
	}
	f, err := c.fs.Open(p)
	if err != nil {
		return fmt.Errorf("open a style file: %w", err)
	}
	defer f.Close()
	docs, err := ParseStyle(f)
	if err != nil {
		return &pipeline.ConfigError{
			Err:         fmt.Errorf("parse %s: %w", p, err),
			Remediation: "fix the YAML syntax of " + p,
		}
	}
	for _, doc := range docs {
		logE.WithFields(logrus.Fields{
			"style_file":     p,
			"language":       doc.Language,
			"based_on_style": doc.BasedOnStyle,
		}).Debug("read the style file")
	}
	return nil
}

// ParseStyle decodes every YAML document of a style file.
func ParseStyle(r io.Reader) ([]*StyleOptions, error) {
	decoder := yaml.NewDecoder(r)
	docs := []*StyleOptions{}
	for {
		doc := &StyleOptions{}
		if err := decoder.Decode(doc); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("decode a style file as YAML: %w", err)
		}
		docs = append(docs, doc)
	}
}
