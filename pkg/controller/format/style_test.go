package format_test

import (
	"strings"
	"testing"

	"github.com/clangrun/clangrun/pkg/controller/format"
	"github.com/google/go-cmp/cmp"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		content string
		exp     []*format.StyleOptions
		isErr   bool
	}{
		{
			name:    "single document",
			content: "BasedOnStyle: LLVM\nIndentWidth: 4\n",
			exp:     []*format.StyleOptions{{BasedOnStyle: "LLVM"}},
		},
		{
			name:    "per language",
			content: "---\nLanguage: Cpp\nBasedOnStyle: Google\n---\nLanguage: JavaScript\nBasedOnStyle: Mozilla\n...\n",
			exp: []*format.StyleOptions{
				{Language: "Cpp", BasedOnStyle: "Google"},
				{Language: "JavaScript", BasedOnStyle: "Mozilla"},
			},
		},
		{
			name: "empty",
			exp:  []*format.StyleOptions{},
		},
		{
			name:    "invalid",
			content: "BasedOnStyle: [LLVM\n",
			isErr:   true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			docs, err := format.ParseStyle(strings.NewReader(d.content))
			if err != nil {
				if d.isErr {
					return
				}
				t.Fatal(err)
			}
			if d.isErr {
				t.Fatal("error must be returned")
			}
			if diff := cmp.Diff(d.exp, docs); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
