package app

import (
	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/middleware"
)

type Middleware struct {
	Identity *middleware.IdentityMiddleware
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Identity: middleware.NewIdentityMiddleware(log),
	}
}
