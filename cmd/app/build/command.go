package build

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/tataru-works/xivmill/internal/service"
)

type CommandDeps struct {
	fx.In

	PipelineService *service.Pipeline
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "run one full build of the game data artifacts",
		Action: func(ctx *cli.Context) error {
			if err := depsFn().PipelineService.Run(ctx.Context); err != nil {
				return errors.Wrap(err, "build failed")
			}
			return nil
		},
	}
}
