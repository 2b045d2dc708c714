package settings

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the settings package
var Module = fx.Options(
	fx.Provide(NewProvider),
)
