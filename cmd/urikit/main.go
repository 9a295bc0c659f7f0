package main

import (
	"fmt"
	"os"
	"time"

	"urikit/internal/cli"
)

func main() {
	app := cli.NewApp()
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Compiled = time.Now()

	args := cli.NormalizeArgs(os.Args)
	if err := app.Run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
