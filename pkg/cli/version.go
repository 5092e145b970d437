package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

func newVersionCommand(ldFlags *urfave.LDFlags) *cli.Command {
	info := &versionInfo{
		Version: ldFlags.Version,
		Commit:  ldFlags.Commit,
		Date:    ldFlags.Date,
	}
	if info.Version == "" {
		info.Version = "(devel)"
	}
	return &cli.Command{
		Name:  "version",
		Usage: "Show version",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output version information as JSON",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return printVersion(c, info)
		},
	}
}

func printVersion(c *cli.Command, info *versionInfo) error {
	w := c.Root().Writer
	if c.Bool("json") {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(info); err != nil {
			return fmt.Errorf("encode version information as JSON: %w", err)
		}
		return nil
	}
	s := "clangrun " + info.Version
	if info.Commit != "" {
		s += " (" + info.Commit + ")"
	}
	if info.Date != "" {
		s += " built at " + info.Date
	}
	fmt.Fprintln(w, s)
	return nil
}
