package cli

import (
	"fmt"

	"urikit/internal/history"
	"urikit/internal/store"
	"urikit/internal/uri"

	"github.com/urfave/cli/v2"
)

func newMergeCmd() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Resolve a reference against a base URI",
		ArgsUsage: "[base] <ref>",
		Description: `Resolve ref against base. Dot segments are kept as they are.

Examples:
  urikit merge http://example.com/a/b c        # http://example.com/a/c
  urikit merge http://example.com/a/b '?x=1'   # http://example.com/a/b?x=1
  urikit merge c                               # against the configured base`,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: func(c *cli.Context) error {
			return runResolve(c, store.OpMerge, "ref")
		},
	}
}

func newAppendCmd() *cli.Command {
	return &cli.Command{
		Name:      "append",
		Usage:     "Append a path to a URI, dropping its query and fragment",
		ArgsUsage: "[uri] <path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: func(c *cli.Context) error {
			return runResolve(c, store.OpAppend, "path")
		},
	}
}

func newEditCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a URI with a JSON merge patch over its components",
		ArgsUsage: "[uri] <patch|->",
		Description: `Apply an RFC 7396 merge patch to the components of uri.
null removes a component. "-" reads the patch from stdin.

Examples:
  urikit edit http://example.com/a?x=1 '{"host":"example.org","query":null}'
  echo '{"port":8080}' | urikit edit http://example.com/ -`,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: func(c *cli.Context) error {
			return runResolve(c, store.OpEdit, "patch")
		},
	}
}

func runResolve(c *cli.Context, op, argName string) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	base, ref, err := baseAndArg(c, e, argName)
	if err != nil {
		return err
	}
	if op == store.OpEdit {
		b, err := readInput(c, ref)
		if err != nil {
			return err
		}
		ref = string(b)
	}

	engine, err := e.engine(c)
	if err != nil {
		return err
	}
	res, err := engine.Resolve(c.Context, op, base, ref)
	if err != nil {
		return err
	}
	return printResult(c, res)
}

func printResult(c *cli.Context, res history.Result) error {
	if c.Bool("json") {
		return writeJSON(c.App.Writer, res)
	}
	_, _ = fmt.Fprintln(c.App.Writer, res.Result)
	return nil
}

func newHostCmd() *cli.Command {
	return &cli.Command{
		Name:      "host",
		Usage:     "Print scheme://host[:port] of a URI",
		ArgsUsage: "<uri>",
		Action: func(c *cli.Context) error {
			s, err := requireArg(c, 0, "uri")
			if err != nil {
				return err
			}
			host, err := uri.RetrieveHost(s)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.App.Writer, host)
			return nil
		},
	}
}

func newPathCmd() *cli.Command {
	return &cli.Command{
		Name:      "path",
		Usage:     "Print the path, query and fragment of a URI",
		ArgsUsage: "<uri>",
		Action: func(c *cli.Context) error {
			s, err := requireArg(c, 0, "uri")
			if err != nil {
				return err
			}
			p, err := uri.RetrieveURI(s)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.App.Writer, p)
			return nil
		},
	}
}

func newParseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the components of a URI as JSON",
		ArgsUsage: "<uri>",
		Action: func(c *cli.Context) error {
			s, err := requireArg(c, 0, "uri")
			if err != nil {
				return err
			}
			comp, err := uri.Parse(s)
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, comp)
		},
	}
}

func newFormatCmd() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "Build a URI from components JSON",
		ArgsUsage: "<json|->",
		Description: `Examples:
  urikit format '{"scheme":"https","host":"example.com","path":"/a"}'
  urikit parse http://example.com/a | urikit format -`,
		Action: func(c *cli.Context) error {
			arg, err := requireArg(c, 0, "json")
			if err != nil {
				return err
			}
			data, err := readInput(c, arg)
			if err != nil {
				return err
			}
			comp, err := uri.DecodeComponents(data)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.App.Writer, uri.Format(comp))
			return nil
		},
	}
}
