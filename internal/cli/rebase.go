package cli

import (
	"fmt"
	"strings"

	"urikit/internal/history"
	"urikit/internal/store"

	"github.com/urfave/cli/v2"
)

func newRebaseCmd() *cli.Command {
	return &cli.Command{
		Name:      "rebase",
		Usage:     "Resolve recorded references against another base",
		ArgsUsage: "[id]",
		Description: `Reload history entries and run their operation again with a new base.
The new results are recorded unless --dry-run is set.

Examples:
  urikit rebase abc123 --to https://example.com/v2/
  urikit rebase --last 10 --to https://staging.example.com/ --dry-run --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Usage: "New base URI (default: base from config)"},
			&cli.IntFlag{Name: "last", Usage: "Rebase the last N entries (newest first)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print results without recording them"},
			&cli.BoolFlag{Name: "json", Usage: "Output results as JSON"},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			target := strings.TrimSpace(c.String("to"))
			if target == "" {
				target = e.cfg.Base
			}
			if target == "" {
				return fmt.Errorf("%w: no base to rebase onto: set --to or config base", errUsage)
			}

			s, err := e.openStore(c)
			if err != nil {
				return err
			}
			engine := history.NewEngine(s, e.log)
			engine.DryRun = c.Bool("dry-run")

			var ids []string
			if n := c.Int("last"); n > 0 {
				rows, err := s.List(c.Context, store.ListFilter{Limit: n})
				if err != nil {
					return err
				}
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
			} else {
				id, err := requireArg(c, 0, "id")
				if err != nil {
					return err
				}
				ids = append(ids, strings.TrimSpace(id))
			}

			var (
				results  []history.Result
				firstErr error
			)
			for _, id := range ids {
				res, err := engine.RebaseByID(c.Context, id, target)
				if err != nil {
					e.log.WithField("id", id).Warnf("rebase failed: %v", err)
					if firstErr == nil {
						firstErr = err
					}
					if res.SourceID == "" {
						continue
					}
				}
				results = append(results, res)
			}

			if c.Bool("json") {
				if results == nil {
					results = []history.Result{}
				}
				if err := writeJSON(c.App.Writer, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					_, _ = fmt.Fprintf(c.App.Writer, "%s  %s -> %s\n", r.SourceID,
						defaultString(r.Previous, "(failed)"), defaultString(r.Result, "(failed)"))
				}
			}
			return firstErr
		},
	}
}
