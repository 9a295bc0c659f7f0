package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// NewApp creates the CLI application with all commands.
func NewApp() *cli.App {
	app := &cli.App{
		Name:    "urikit",
		Usage:   "Resolve, inspect and rebuild URIs",
		Version: "0.3.0",
		Commands: []*cli.Command{
			newMergeCmd(),
			newHostCmd(),
			newPathCmd(),
			newAppendCmd(),
			newParseCmd(),
			newFormatCmd(),
			newEditCmd(),
			newSeeCmd(),
			newHistoryCmd(),
			newShowCmd(),
			newDeleteCmd(),
			newRebaseCmd(),
			newUICmd(),
		},
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Usage:   "History database file path",
			EnvVars: []string{"URIKIT_DB"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Config file path",
			EnvVars: []string{"URIKIT_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "history",
			Usage:   "Record merge, append and edit results",
			EnvVars: []string{"URIKIT_HISTORY"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug|info|warn|error",
			EnvVars: []string{"URIKIT_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format: text|json",
			EnvVars: []string{"URIKIT_LOG_FORMAT"},
		},
	}

	app.CommandNotFound = func(c *cli.Context, command string) {
		_, _ = fmt.Fprintf(c.App.ErrWriter, "Unknown command: %s\n", command)
	}
	// Errors are reported by the caller, which maps them with ExitCode.
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app
}
