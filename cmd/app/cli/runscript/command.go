package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/tataru-works/xivmill/cmd/app/cli"
	script_purge_fetch_cache "github.com/tataru-works/xivmill/cmd/app/cli/runscript/scripts/purge_fetch_cache"
	"github.com/tataru-works/xivmill/internal/app/appcontext"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(appcontext.EnvCLI, fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_purge_fetch_cache.Command(depsFn[script_purge_fetch_cache.CommandDeps]()),
		},
	}
}
