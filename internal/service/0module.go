package service

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewRefData,
		NewItem,
		NewRecipe,
		NewGathering,
		NewSource,
		NewTrade,
		NewZoneMap,
		NewSearch,
		NewExport,
		NewPipeline,
	))
}
