package cli

import (
	"context"

	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/app"
	"github.com/bnema/layerkit/internal/boundaries/in"
)

// services is what one-shot commands need from the app layer.
type services interface {
	Layers() in.LayerService
	History() in.HistoryService
	Logger() zerowrap.Logger
	Close()
}

// openServices wires the app kernel; replaced in tests.
var openServices = func(ctx context.Context, configPath string) (services, error) {
	return app.NewKernel(ctx, configPath, Version)
}

// serviceContext attaches the configured logger to ctx.
func serviceContext(ctx context.Context, svc services) context.Context {
	return zerowrap.WithCtx(ctx, svc.Logger())
}
