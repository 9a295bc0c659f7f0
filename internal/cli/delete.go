package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"urikit/internal/logger"
	"urikit/internal/store"

	"github.com/urfave/cli/v2"
)

func newDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete recorded resolutions",
		ArgsUsage: "[id]",
		Description: `Delete history entries by ID or by filter criteria.

Examples:
  urikit delete abc123                # Delete one entry
  urikit delete --older-than 7d       # Delete entries older than 7 days
  urikit delete --op edit --yes       # Delete all edits without asking`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "older-than",
				Usage: "Delete entries older than duration (e.g., 1h, 1d, 7d, 30d)",
			},
			&cli.StringFlag{
				Name:  "op",
				Usage: "Delete entries by operation (merge, append, edit)",
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip confirmation prompt",
			},
		},
		Action: func(c *cli.Context) error {
			id := strings.TrimSpace(c.Args().First())
			hasFilter := c.IsSet("older-than") || c.IsSet("op")

			if id == "" && !hasFilter {
				return fmt.Errorf("%w: specify either an ID or at least one filter (--older-than, --op)", errUsage)
			}
			if id != "" && hasFilter {
				return fmt.Errorf("%w: cannot specify both ID and filters", errUsage)
			}

			filter := store.DeleteFilter{Op: strings.TrimSpace(c.String("op"))}
			if c.IsSet("older-than") {
				d, err := parseDuration(c.String("older-than"))
				if err != nil {
					return fmt.Errorf("%w: invalid --older-than: %v", errUsage, err)
				}
				filter.OlderThan = d
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

			if id != "" {
				if !c.Bool("yes") && !confirm(c, fmt.Sprintf("Delete entry %s?", id)) {
					return fmt.Errorf("cancelled")
				}
				if err := s.Delete(c.Context, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(c.App.Writer, "Deleted: %s\n", id)
				return nil
			}

			if !c.Bool("yes") {
				var desc []string
				if filter.OlderThan > 0 {
					desc = append(desc, fmt.Sprintf("older than %s", filter.OlderThan))
				}
				if filter.Op != "" {
					desc = append(desc, fmt.Sprintf("op=%s", filter.Op))
				}
				if !confirm(c, "Delete all entries matching: "+strings.Join(desc, ", ")+"?") {
					return fmt.Errorf("cancelled")
				}
			}

			n, err := s.DeleteByFilter(c.Context, filter)
			if err != nil {
				return err
			}
			e.log.WithFields(logger.Fields{"deleted": n, "op": filter.Op}).Info("history pruned")
			_, _ = fmt.Fprintf(c.App.Writer, "Deleted %d entr%s\n", n, plural(n, "y", "ies"))
			return nil
		},
	}
}

func confirm(c *cli.Context, question string) bool {
	_, _ = fmt.Fprintf(c.App.Writer, "%s [y/N] ", question)
	var resp string
	if _, err := fmt.Fscanln(c.App.Reader, &resp); err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(resp)) == "y"
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// parseDuration extends time.ParseDuration with support for 'd' (days) suffix.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid days: %s", daysStr)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
