package script_purge_fetch_cache

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
)

type CommandDeps struct {
	fx.In

	Config *appconfig.Config
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "purge_fetch_cache",
		Description: "drop every entry of the on-disk remote fetch cache",
		Action: func(ctx *cli.Context) error {
			return run(depsFn())
		},
	}
}
