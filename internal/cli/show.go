package cli

import (
	"fmt"
	"strings"
	"time"

	"urikit/internal/store"

	"github.com/urfave/cli/v2"
)

func newShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a recorded resolution",
		ArgsUsage: "<id>",
		Description: `Display one history entry.

Examples:
  urikit show abc123             # JSON output (default)
  urikit show abc123 --format text`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "json", Usage: "Output format: json|text"},
		},
		Action: runShow,
	}
}

func runShow(c *cli.Context) error {
	id, err := requireArg(c, 0, "id")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)

	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()
	s, err := e.openStore(c)
	if err != nil {
		return err
	}

	r, err := s.Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(c.String("format")) {
	case "text":
		return showText(c, r)
	case "json":
		return writeJSON(c.App.Writer, r)
	default:
		return fmt.Errorf("%w: unknown format: %s (use json or text)", errUsage, c.String("format"))
	}
}

func showText(c *cli.Context, r store.Resolution) error {
	w := c.App.Writer
	_, _ = fmt.Fprintf(w, "ID: %s\n", r.ID)
	_, _ = fmt.Fprintf(w, "Time: %s\n", time.UnixMilli(r.CreatedAt).UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Op: %s\n", r.Op)
	_, _ = fmt.Fprintf(w, "Base: %s\n", r.Base)
	_, _ = fmt.Fprintf(w, "Ref: %s\n", r.Ref)
	if r.Error != "" {
		_, _ = fmt.Fprintf(w, "Error: %s\n", r.Error)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Result: %s\n", defaultString(r.Result, `""`))
	return nil
}
