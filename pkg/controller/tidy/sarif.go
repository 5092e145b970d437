package tidy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/clangrun/clangrun/pkg/sarif"
)

const (
	ruleAnalysisFailure = "analysis-failure"
	ruleUnknownCheck    = "clang-tidy"
)

// outputSARIF outputs diagnostics in SARIF format to stdout.
func (c *Controller) outputSARIF(summary *aggregate.Summary) error {
	results, rules := buildSARIFResults(summary)
	log := sarif.Log{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           ToolName,
						InformationURI: "https://clang.llvm.org/extra/clang-tidy/",
						Rules:          rules,
					},
				},
				Invocations: []sarif.Invocation{
					{ExecutionSuccessful: len(summary.Failed) == 0},
				},
				Results: results,
			},
		},
	}

	encoder := json.NewEncoder(c.param.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func buildSARIFResults(summary *aggregate.Summary) ([]sarif.Result, []sarif.Rule) {
	diags := summary.Diagnostics()
	results := make([]sarif.Result, 0, len(diags)+len(summary.Failed))
	rules := []sarif.Rule{}
	seen := map[string]struct{}{}
	addRule := func(id, description, uri string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		rules = append(rules, sarif.Rule{
			ID:               id,
			ShortDescription: sarif.Message{Text: description},
			HelpURI:          uri,
		})
	}

	for _, d := range diags {
		ruleID := d.Check
		uri := helpURI(d.Check)
		if ruleID == "" {
			ruleID = ruleUnknownCheck
		}
		addRule(ruleID, ruleID, uri)
		level := "warning"
		if d.Severity != "warning" {
			level = "error"
		}
		results = append(results, sarif.Result{
			RuleID:  ruleID,
			Level:   level,
			Message: sarif.Message{Text: d.Message},
			Locations: []sarif.Location{
				{
					PhysicalLocation: sarif.PhysicalLocation{
						ArtifactLocation: sarif.ArtifactLocation{
							URI: d.File,
						},
						Region: sarif.Region{
							StartLine:   d.Line,
							StartColumn: d.Column,
						},
					},
				},
			},
		})
	}

	for _, r := range summary.Failed {
		addRule(ruleAnalysisFailure, "clang-tidy couldn't analyze the file", "")
		msg := "clang-tidy couldn't analyze the file"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		results = append(results, sarif.Result{
			RuleID:  ruleAnalysisFailure,
			Level:   "error",
			Message: sarif.Message{Text: msg},
			Locations: []sarif.Location{
				{
					PhysicalLocation: sarif.PhysicalLocation{
						ArtifactLocation: sarif.ArtifactLocation{
							URI: r.Path,
						},
					},
				},
			},
		})
	}
	return results, rules
}

// helpURI returns the documentation of a clang-tidy check.
// Compiler diagnostics and pseudo rules have no documentation.
func helpURI(check string) string {
	if check == "" || strings.HasPrefix(check, "clang-diagnostic-") {
		return ""
	}
	group, name, ok := strings.Cut(check, "-")
	if !ok || name == "" {
		return ""
	}
	return "https://clang.llvm.org/extra/clang-tidy/checks/" + group + "/" + name + ".html"
}
