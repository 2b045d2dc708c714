package app

import (
	"go.uber.org/fx"

	"blogd/internal/app/limiter"
	"blogd/internal/app/posts"
	"blogd/internal/app/server"
	"blogd/internal/app/settings"
	"blogd/internal/config/logger"
)

var Module = fx.Options(
	logger.Module,
	settings.Module,
	limiter.Module,
	posts.Module,
	server.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
