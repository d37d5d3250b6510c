package main

import (
	"github.com/tataru-works/xivmill/cmd/app"
)

func main() {
	app.Run()
}
