package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/app/appcontext"
	"github.com/tataru-works/xivmill/internal/infra"
	"github.com/tataru-works/xivmill/internal/pkg/logger"
	"github.com/tataru-works/xivmill/internal/repo"
	"github.com/tataru-works/xivmill/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits
		fx.Invoke(infra.SentryInit),

		// fx Extra Options. Providers only wire constructors; all the real
		// work happens inside the command action after the graph is up.
		fx.StartTimeout(1 * time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
