package cli

import (
	"fmt"

	"urikit/internal/constraint"

	"github.com/urfave/cli/v2"
)

func newSeeCmd() *cli.Command {
	return &cli.Command{
		Name:      "see",
		Usage:     "Check that page text contains an expected string",
		ArgsUsage: "<expected> [file]",
		Description: `Compare case-insensitively after collapsing whitespace. Content is read
from file, or from stdin when file is omitted or "-".

Exits with code 2 when the text is not found.

Examples:
  curl -s https://example.com | urikit see "example domain" --uri https://example.com`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "uri", Usage: "URI of the page, shown on failure"},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			expected, err := requireArg(c, 0, "expected")
			if err != nil {
				return err
			}
			content, err := readFileOrStdin(c, c.Args().Get(1))
			if err != nil {
				return err
			}

			page := constraint.NewPage(expected, c.String("uri"))
			page.OutputDir = e.cfg.OutputDir
			if err := page.Evaluate(content); err != nil {
				e.log.WithField("expected", expected).Debug("page text not found")
				return err
			}
			_, _ = fmt.Fprintf(c.App.Writer, "ok: page %s\n", page)
			return nil
		},
	}
}
