package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/tataru-works/xivmill/cmd/app/build"
	cliapp "github.com/tataru-works/xivmill/cmd/app/cli"
	"github.com/tataru-works/xivmill/cmd/app/cli/runscript"
	"github.com/tataru-works/xivmill/internal/app/appcontext"
	"github.com/tataru-works/xivmill/internal/pkg/bininfo"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(appcontext.EnvBuild, fx.Populate(&deps))
		return deps
	}
}

func Run() {
	app := &cli.App{
		Name:        "xivmill",
		Description: "Compiles the extracted game data sheets and the community datasets into the item database artifacts the frontend ships with.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			build.Command(depsFn[build.CommandDeps]()),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
