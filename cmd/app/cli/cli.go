package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/tataru-works/xivmill/internal/app"
	"github.com/tataru-works/xivmill/internal/app/appcontext"
)

func Start(env appcontext.Env, module fx.Option) {
	app.New(appcontext.Declare(env), module).Start(context.Background())
}
