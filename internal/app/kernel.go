package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/bnema/zerowrap"

	// Adapters - Output
	"github.com/bnema/layerkit/internal/adapters/out/archive"
	"github.com/bnema/layerkit/internal/adapters/out/buildlog"
	"github.com/bnema/layerkit/internal/adapters/out/lambdaregistry"
	"github.com/bnema/layerkit/internal/adapters/out/npm"
	"github.com/bnema/layerkit/internal/adapters/out/s3store"
	"github.com/bnema/layerkit/internal/adapters/out/telemetry"
	"github.com/bnema/layerkit/internal/adapters/out/workspace"

	// Boundaries
	"github.com/bnema/layerkit/internal/boundaries/in"
	"github.com/bnema/layerkit/internal/boundaries/out"

	// Use cases
	"github.com/bnema/layerkit/internal/usecase/history"
	"github.com/bnema/layerkit/internal/usecase/layers"
)

// Kernel holds the wired services shared by every transport.
type Kernel struct {
	cfg        Config
	log        zerowrap.Logger
	layerSvc   *layers.Service
	historySvc *history.Service
	cleanups   []func()
}

// NewKernel loads configuration and wires all services. It does not start
// any listener. Close must be called to release resources.
func NewKernel(ctx context.Context, configPath, version string) (*Kernel, error) {
	_, cfg, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, logCleanup, err := initLogger(cfg)
	if err != nil {
		return nil, err
	}

	k := &Kernel{cfg: cfg, log: log, cleanups: []func(){logCleanup}}
	ctx = zerowrap.WithCtx(ctx, log)

	if err := k.wire(ctx, version); err != nil {
		k.Close()
		return nil, err
	}

	return k, nil
}

func (k *Kernel) wire(ctx context.Context, version string) error {
	cfg := k.cfg
	log := k.log

	_, shutdownTelemetry, err := telemetry.NewProvider(ctx, cfg.Telemetry, AppName, version)
	if err != nil {
		return log.WrapErr(err, "failed to initialize telemetry")
	}
	k.cleanups = append(k.cleanups, func() { shutdownTelemetry(context.Background()) })

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return log.WrapErr(err, "failed to load AWS configuration")
	}

	workspaces, err := workspace.NewManager(cfg.Workspace.Dir, log)
	if err != nil {
		return err
	}

	maxSize, _ := cfg.MaxUnzippedSize()
	timeout, _ := cfg.InstallTimeout()

	installer := npm.NewInstaller(npm.Config{
		Command: cfg.Installer.Command,
		Timeout: timeout,
	})
	archiver := archive.NewBuilder(archive.Config{
		RootPrefix:          cfg.Layer.ArchiveRoot,
		MaxUncompressedSize: maxSize,
	})
	blobs := s3store.NewStore(s3store.NewClient(awsCfg, cfg.AWS.Endpoint))
	registry := lambdaregistry.NewRegistry(lambdaregistry.NewClient(awsCfg, cfg.AWS.Endpoint))

	var recorder out.BuildRecorder
	if cfg.History.Enabled {
		rec, err := buildlog.Open(ctx, cfg.History.Path)
		if err != nil {
			return err
		}
		recorder = rec
		k.cleanups = append(k.cleanups, func() {
			if err := rec.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close build history")
			}
		})
	}

	k.layerSvc = layers.NewService(layers.Config{
		Bucket:                  cfg.AWS.Bucket,
		CompatibleRuntimes:      cfg.Layer.CompatibleRuntimes,
		CompatibleArchitectures: cfg.Layer.CompatibleArchitectures,
		KeepWorkspace:           cfg.Workspace.Keep,
	}, workspaces, installer, archiver, blobs, registry, recorder)

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return log.WrapErr(err, "failed to create metrics")
	}
	k.layerSvc.SetMetrics(metrics)

	k.historySvc = history.NewService(recorder)

	log.Info().
		Str(zerowrap.FieldLayer, "app").
		Str("region", awsCfg.Region).
		Str("bucket", cfg.AWS.Bucket).
		Strs("runtimes", cfg.Layer.CompatibleRuntimes).
		Bool("history", cfg.History.Enabled).
		Msg("services initialized")

	return nil
}

// loadAWSConfig resolves region and credentials. Static credentials are only
// used when both keys are configured; otherwise the default chain applies.
func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load default config: %w", err)
	}
	return awsCfg, nil
}

// Config returns the loaded configuration.
func (k *Kernel) Config() Config {
	return k.cfg
}

// Logger returns the application logger.
func (k *Kernel) Logger() zerowrap.Logger {
	return k.log
}

// Layers returns the layer build service.
func (k *Kernel) Layers() in.LayerService {
	return k.layerSvc
}

// History returns the build history service.
func (k *Kernel) History() in.HistoryService {
	return k.historySvc
}

// Close releases resources in reverse acquisition order.
func (k *Kernel) Close() {
	for i := len(k.cleanups) - 1; i >= 0; i-- {
		k.cleanups[i]()
	}
	k.cleanups = nil
}
