package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/bnema/zerowrap"

	// Adapters - Input
	layershttp "github.com/bnema/layerkit/internal/adapters/in/http/layers"
	"github.com/bnema/layerkit/internal/adapters/in/http/middleware"
	lambdain "github.com/bnema/layerkit/internal/adapters/in/lambda"
)

// shutdownTimeout bounds graceful HTTP shutdown. Builds in flight past this
// are abandoned with their workspaces.
const shutdownTimeout = 30 * time.Second

// Run starts the HTTP transport and blocks until ctx is cancelled or a
// termination signal arrives.
func Run(ctx context.Context, configPath, version string) error {
	k, err := NewKernel(ctx, configPath, version)
	if err != nil {
		return err
	}
	defer k.Close()

	log := k.Logger()
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", k.Config().Server.Port),
		Handler:           NewHTTPHandler(k),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: a build holds the connection until it finishes.
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str(zerowrap.FieldLayer, "app").
			Int("port", k.Config().Server.Port).
			Msg("layer API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		log.Info().Str(zerowrap.FieldLayer, "app").Msg("context cancelled, shutting down")
	case sig := <-quit:
		log.Info().Str(zerowrap.FieldLayer, "app").Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return log.WrapErr(err, "layer API server failed")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("layer API server shutdown error")
	}

	return nil
}

// NewHTTPHandler builds the HTTP transport for a kernel.
func NewHTTPHandler(k *Kernel) http.Handler {
	mux := http.NewServeMux()
	layershttp.NewHandler(k.Layers(), k.History(), k.Logger()).RegisterRoutes(mux)

	return middleware.Chain(
		middleware.PanicRecovery(k.Logger()),
		middleware.RequestLogger(k.Logger()),
	)(mux)
}

// RunLambda serves Lambda invocations. It only returns if the runtime API
// is unreachable.
func RunLambda(ctx context.Context, configPath, version string) error {
	k, err := NewKernel(ctx, configPath, version)
	if err != nil {
		return err
	}

	handler := lambdain.NewHandler(k.Layers(), k.Logger())
	awslambda.StartWithOptions(handler.Handle,
		awslambda.WithContext(ctx),
		awslambda.WithEnableSIGTERM(k.Close),
	)

	return nil
}
