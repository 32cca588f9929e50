//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"grx-data/internal/app"
)

// InitializeApp builds app.App (Config + FrameSaver) via Wire.
func InitializeApp() (*app.App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideFrameSaver,
		wire.Struct(new(app.App), "Config", "Saver"),
	)
	return nil, nil
}
