package limiter

import "go.uber.org/fx"

// Module provides the request limiter
var Module = fx.Options(
	fx.Provide(NewLimiter),
)
