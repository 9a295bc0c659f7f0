package cli

import "strings"

// NormalizeArgs makes the CLI more forgiving by allowing flags to appear after
// positional arguments (e.g. `urikit rebase abc123 --to https://example.com/`).
//
// urfave/cli uses Go's standard flag parsing which stops at the first non-flag
// token, so we normalize to `urikit rebase --to ... abc123` for known commands.
// Global flags before the command are kept in place.
func NormalizeArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	cmdIdx := commandIndex(argv)
	if cmdIdx < 0 {
		return argv
	}
	flags, ok := commandFlags[argv[cmdIdx]]
	if !ok {
		return argv
	}
	return normalizeCommand(argv, cmdIdx, flags)
}

type cmdFlags struct {
	valueFlags map[string]bool
	boolFlags  map[string]bool
}

var jsonOnly = cmdFlags{boolFlags: map[string]bool{"--json": true}}

var commandFlags = map[string]cmdFlags{
	"merge":  jsonOnly,
	"append": jsonOnly,
	"edit":   jsonOnly,
	"see": {
		valueFlags: map[string]bool{"--uri": true},
	},
	"show": {
		valueFlags: map[string]bool{"--format": true},
	},
	"history": {
		valueFlags: map[string]bool{
			"--limit":  true,
			"--op":     true,
			"--search": true,
			"--from":   true,
			"--to":     true,
		},
		boolFlags: map[string]bool{
			"--failed": true,
			"--json":   true,
		},
	},
	"delete": {
		valueFlags: map[string]bool{
			"--older-than": true,
			"--op":         true,
		},
		boolFlags: map[string]bool{"--yes": true},
	},
	"rebase": {
		valueFlags: map[string]bool{
			"--to":   true,
			"--last": true,
		},
		boolFlags: map[string]bool{
			"--dry-run": true,
			"--json":    true,
		},
	},
}

var globalValueFlags = map[string]bool{
	"--db":         true,
	"--config":     true,
	"--log-level":  true,
	"--log-format": true,
}

// commandIndex returns the index of the command name, skipping global flags.
func commandIndex(argv []string) int {
	for i := 1; i < len(argv); i++ {
		tok := argv[i]
		if !strings.HasPrefix(tok, "-") {
			return i
		}
		if globalValueFlags[tok] {
			i++
		}
	}
	return -1
}

func normalizeCommand(argv []string, cmdIdx int, flags cmdFlags) []string {
	var (
		flagOut []string
		argsOut []string
	)
	out := append([]string{}, argv[:cmdIdx+1]...)

	rest := argv[cmdIdx+1:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		// Everything after "--" is positional.
		if tok == "--" {
			argsOut = append(argsOut, rest[i:]...)
			break
		}
		// --flag=value form
		if strings.HasPrefix(tok, "--") && strings.Contains(tok, "=") {
			name := tok[:strings.Index(tok, "=")]
			if flags.valueFlags[name] || flags.boolFlags[name] {
				flagOut = append(flagOut, tok)
				continue
			}
		}

		if flags.boolFlags[tok] {
			flagOut = append(flagOut, tok)
			continue
		}
		if flags.valueFlags[tok] {
			// take next token as value if present
			flagOut = append(flagOut, tok)
			if i+1 < len(rest) {
				flagOut = append(flagOut, rest[i+1])
				i++
			}
			continue
		}

		// Not a recognized flag: treat as positional argument.
		argsOut = append(argsOut, tok)
	}

	out = append(out, flagOut...)
	out = append(out, argsOut...)
	return out
}
