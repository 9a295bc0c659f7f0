package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"urikit/internal/config"
	"urikit/internal/constraint"
	"urikit/internal/history"
	"urikit/internal/logger"
	"urikit/internal/store"
	"urikit/internal/uri"

	"github.com/urfave/cli/v2"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitInvalidInput = 1
	ExitAssertion    = 2
	ExitOther        = 3
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var assertErr *constraint.AssertionError
	switch {
	case errors.As(err, &assertErr):
		return ExitAssertion
	case errors.Is(err, uri.ErrInvalidURI), errors.Is(err, uri.ErrMissingAuthority), errors.Is(err, errUsage):
		return ExitInvalidInput
	default:
		return ExitOther
	}
}

var errUsage = errors.New("usage")

// env is what a command action needs besides its arguments.
type env struct {
	cfg   *config.Config
	log   logger.Logger
	store *store.Store
}

// loadEnv reads the config file and applies global flag overrides.
func loadEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("history") {
		cfg.History = c.Bool("history")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: cfg.Logger(c.App.ErrWriter)}, nil
}

// openStore opens the history database, once.
func (e *env) openStore(c *cli.Context) (*store.Store, error) {
	if e.store != nil {
		return e.store, nil
	}
	dbPath := e.cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	s, err := store.OpenContext(c.Context, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", dbPath, err)
	}
	e.log.WithField("db", dbPath).Debug("history opened")
	e.store = s
	return s, nil
}

// engine returns a history engine that records only when history is on.
func (e *env) engine(c *cli.Context) (*history.Engine, error) {
	if !e.cfg.History {
		return history.NewEngine(nil, e.log), nil
	}
	s, err := e.openStore(c)
	if err != nil {
		return nil, err
	}
	return history.NewEngine(s, e.log), nil
}

func (e *env) Close() {
	if e.store != nil {
		_ = e.store.Close()
	}
}

func defaultDBPath() string {
	dir := config.DefaultDir()
	if dir == "" {
		return "history.db"
	}
	return filepath.Join(dir, "history.db")
}

func requireArg(c *cli.Context, idx int, name string) (string, error) {
	if c.Args().Len() <= idx {
		return "", fmt.Errorf("%w: missing required argument: %s", errUsage, name)
	}
	return c.Args().Get(idx), nil
}

// baseAndArg reads "<base> <name>" arguments. With a single argument the
// configured base is used.
func baseAndArg(c *cli.Context, e *env, name string) (string, string, error) {
	switch {
	case c.Args().Len() >= 2:
		return c.Args().Get(0), c.Args().Get(1), nil
	case c.Args().Len() == 1 && e.cfg.Base != "":
		return e.cfg.Base, c.Args().Get(0), nil
	case c.Args().Len() == 1:
		return "", "", fmt.Errorf("%w: missing required argument: %s (or set base in config)", errUsage, name)
	default:
		return "", "", fmt.Errorf("%w: missing required arguments: base %s", errUsage, name)
	}
}

// readInput returns arg, or the content of c.App.Reader when arg is "-".
func readInput(c *cli.Context, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	return io.ReadAll(c.App.Reader)
}

func readFileOrStdin(c *cli.Context, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(c.App.Reader)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func defaultString(s, defaultVal string) string {
	if strings.TrimSpace(s) == "" {
		return defaultVal
	}
	return s
}
