package cli

import (
	"urikit/internal/history"
	"urikit/internal/tui"

	"github.com/urfave/cli/v2"
)

func newUICmd() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Interactive resolver",
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.openStore(c)
			if err != nil {
				return err
			}
			return tui.Run(c.Context, history.NewEngine(s, e.log), s, e.cfg.Base)
		},
	}
}
