package cli

import (
	"fmt"
	"strings"
	"time"

	"urikit/internal/store"

	"github.com/urfave/cli/v2"
)

func newHistoryCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded resolutions",
		Description: `List or search the resolution history, newest first.

Examples:
  urikit history --limit 5
  urikit history --op merge --from 7d
  urikit history --search example.org --json   # --search takes no other filter
  urikit history --failed --from 2024-01-01 --to 2024-01-31`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: store.DefaultLimit, Usage: "Max rows to return"},
			&cli.StringFlag{Name: "op", Usage: "Filter by operation (merge, append, edit)"},
			&cli.BoolFlag{Name: "failed", Usage: "Only resolutions that failed"},
			&cli.StringFlag{Name: "search", Usage: "Full-text search over base, reference and result"},
			&cli.StringFlag{Name: "from", Usage: "Start date (2024-01-15, RFC 3339, or relative like 7d)"},
			&cli.StringFlag{Name: "to", Usage: "End date (2024-01-15, RFC 3339, or relative like 1h)"},
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: func(c *cli.Context) error {
			search := strings.TrimSpace(c.String("search"))
			if search != "" && (c.IsSet("op") || c.IsSet("failed") || c.IsSet("from") || c.IsSet("to")) {
				return fmt.Errorf("%w: --search cannot be combined with --op, --failed, --from or --to", errUsage)
			}

			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()
			s, err := e.openStore(c)
			if err != nil {
				return err
			}

			f := store.ListFilter{
				Limit:      c.Int("limit"),
				Op:         strings.TrimSpace(c.String("op")),
				FailedOnly: c.Bool("failed"),
			}
			now := time.Now()
			if c.IsSet("from") {
				from, err := parseTimeWithReference(c.String("from"), true, now)
				if err != nil {
					return fmt.Errorf("%w: invalid --from: %v", errUsage, err)
				}
				f.From = &from
			}
			if c.IsSet("to") {
				to, err := parseTimeWithReference(c.String("to"), false, now)
				if err != nil {
					return fmt.Errorf("%w: invalid --to: %v", errUsage, err)
				}
				f.To = &to
			}

			var rows []store.Resolution
			if search != "" {
				rows, err = s.Search(c.Context, search, f.Limit)
			} else {
				rows, err = s.List(c.Context, f)
			}
			if err != nil {
				return err
			}

			if c.Bool("json") {
				if rows == nil {
					rows = []store.Resolution{}
				}
				return writeJSON(c.App.Writer, rows)
			}
			for _, r := range rows {
				_, _ = fmt.Fprintln(c.App.Writer, formatRow(r))
			}
			return nil
		},
	}
}

func formatRow(r store.Resolution) string {
	ts := time.UnixMilli(r.CreatedAt).Local().Format("2006-01-02 15:04:05")
	out := r.Result
	if r.Error != "" {
		out = "error: " + r.Error
	}
	return fmt.Sprintf("%s  %s  %-6s  %s + %s -> %s", r.ID, ts, r.Op, r.Base, r.Ref, out)
}

// parseTimeWithReference parses an RFC 3339 timestamp, a date, or a
// duration relative to now. A bare date is the start of the day for a
// lower bound and its last instant for an upper bound.
func parseTimeWithReference(s string, isFrom bool, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if isFrom {
			return t, nil
		}
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	if d, err := parseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
