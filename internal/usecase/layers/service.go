// Package layers implements the layer build pipeline use case:
// install → archive → persist → register.
package layers

import (
	"context"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/bnema/layerkit/internal/adapters/out/telemetry"
	"github.com/bnema/layerkit/internal/boundaries/out"
	"github.com/bnema/layerkit/internal/domain"
	"github.com/bnema/layerkit/pkg/bytesize"
)

// Config holds the publishing constants of the pipeline.
type Config struct {
	Bucket                  string
	CompatibleRuntimes      []string
	CompatibleArchitectures []string
	KeepWorkspace           bool
}

// Service implements the LayerService interface.
type Service struct {
	config     Config
	workspaces out.WorkspaceManager
	installer  out.PackageInstaller
	archiver   out.ArchiveBuilder
	blobs      out.BlobStore
	registry   out.LayerRegistry
	recorder   out.BuildRecorder
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	now        func() time.Time
}

// NewService creates a new layer build service. recorder may be nil.
func NewService(
	config Config,
	workspaces out.WorkspaceManager,
	installer out.PackageInstaller,
	archiver out.ArchiveBuilder,
	blobs out.BlobStore,
	registry out.LayerRegistry,
	recorder out.BuildRecorder,
) *Service {
	return &Service{
		config:     config,
		workspaces: workspaces,
		installer:  installer,
		archiver:   archiver,
		blobs:      blobs,
		registry:   registry,
		recorder:   recorder,
		tracer:     otel.Tracer("layerkit/usecase/layers"),
		now:        time.Now,
	}
}

// SetMetrics sets the telemetry metrics for the service.
func (s *Service) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// Build runs the pipeline for one request. Stages run strictly in order and
// the first failure stops the run; completed stages are not compensated.
func (s *Service) Build(ctx context.Context, packages, layerName string) *domain.BuildResult {
	result := &domain.BuildResult{
		ID:        uuid.NewString(),
		LayerName: layerName,
		StartedAt: s.now(),
	}

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "BuildLayer",
		"build_id":            result.ID,
		"layer_name":          layerName,
	})
	log := zerowrap.FromCtx(ctx)

	ctx, span := s.tracer.Start(ctx, "layers.Build", trace.WithAttributes(
		attribute.String("layer.name", layerName),
	))
	defer span.End()
	defer s.finish(ctx, span, result)

	log.Info().Str("packages", packages).Msg("received layer build request")

	req, err := domain.ParseLayerRequest(packages, layerName)
	if err != nil {
		result.Failure = domain.NewBuildError(domain.FailureInvalidRequest, domain.StageValidate, err)
		return result
	}
	result.LayerName = req.LayerName
	result.Packages = req.Packages

	ws, failure := s.prepare(ctx, req)
	if failure != nil {
		result.Failure = failure
		return result
	}
	defer s.teardown(ctx, ws)

	if failure := s.install(ctx, req, ws); failure != nil {
		result.Failure = failure
		return result
	}

	s.cleanupCache(ctx, ws)

	stats, failure := s.archive(ctx, ws)
	if failure != nil {
		result.Failure = failure
		return result
	}
	result.Archive = stats

	ref := domain.StorageReference{
		Bucket: s.config.Bucket,
		Key:    domain.ObjectKey(req.LayerName),
	}

	if failure := s.upload(ctx, ws, ref); failure != nil {
		result.Failure = failure
		return result
	}
	result.Uploaded = true

	version, failure := s.register(ctx, req, ref)
	if failure != nil {
		result.Failure = failure
		return result
	}
	result.Version = version

	return result
}

func (s *Service) prepare(ctx context.Context, req domain.LayerRequest) (*domain.Workspace, *domain.BuildError) {
	ctx, span := s.tracer.Start(ctx, "layers.prepare")
	defer span.End()

	ws, err := s.workspaces.Prepare(ctx, req.LayerName)
	if err != nil {
		return nil, s.fail(ctx, span, domain.NewBuildError(domain.FailureWorkspace, domain.StagePrepare, err))
	}

	log := zerowrap.FromCtx(ctx)
	log.Debug().Str("workspace", ws.Dir).Msg("workspace prepared")
	return ws, nil
}

// install runs the installer once per spec in request order. Packages that
// were installed before a failure stay on disk; the run still fails.
func (s *Service) install(ctx context.Context, req domain.LayerRequest, ws *domain.Workspace) *domain.BuildError {
	ctx, span := s.tracer.Start(ctx, "layers.install", trace.WithAttributes(
		attribute.Int("packages.count", len(req.Packages)),
	))
	defer span.End()
	log := zerowrap.FromCtx(ctx)

	for i, spec := range req.Packages {
		log.Info().
			Str("spec", spec).
			Int("index", i+1).
			Int("total", len(req.Packages)).
			Msg("installing package")

		if err := s.installer.Install(ctx, spec, ws); err != nil {
			failure := domain.NewBuildError(domain.FailureInstallation, domain.StageInstall, err)
			failure.Spec = spec
			return s.fail(ctx, span, failure)
		}

		if s.metrics != nil {
			s.metrics.PackagesInstalled.Add(ctx, 1)
		}
	}

	return nil
}

func (s *Service) cleanupCache(ctx context.Context, ws *domain.Workspace) {
	log := zerowrap.FromCtx(ctx)

	if err := s.workspaces.CleanupCache(ctx, ws); err != nil {
		log.Warn().Err(err).Msg("failed to clean installer cache")
		return
	}

	log.Info().Msg("installer cache cleaned")
}

func (s *Service) archive(ctx context.Context, ws *domain.Workspace) (*domain.ArchiveStats, *domain.BuildError) {
	ctx, span := s.tracer.Start(ctx, "layers.archive")
	defer span.End()

	stats, err := s.archiver.Build(ctx, ws.Dir, ws.ArchivePath)
	if err != nil {
		return nil, s.fail(ctx, span, domain.NewBuildError(domain.FailureArchive, domain.StageArchive, err))
	}

	span.SetAttributes(
		attribute.Int("archive.files", stats.Files),
		attribute.Int64("archive.compressed_bytes", stats.CompressedSize),
	)

	if s.metrics != nil {
		s.metrics.ArchiveSize.Record(ctx, stats.CompressedSize)
	}

	log := zerowrap.FromCtx(ctx)
	log.Info().
		Str("path", stats.Path).
		Int("files", stats.Files).
		Str("uncompressed", bytesize.Format(stats.UncompressedSize)).
		Str("compressed", bytesize.Format(stats.CompressedSize)).
		Msg("archive created")

	return stats, nil
}

func (s *Service) upload(ctx context.Context, ws *domain.Workspace, ref domain.StorageReference) *domain.BuildError {
	ctx, span := s.tracer.Start(ctx, "layers.upload", trace.WithAttributes(
		attribute.String("storage.bucket", ref.Bucket),
		attribute.String("storage.key", ref.Key),
	))
	defer span.End()

	size, err := s.blobs.Upload(ctx, ws.ArchivePath, ref)
	if err != nil {
		return s.fail(ctx, span, domain.NewBuildError(domain.FailureUpload, domain.StageUpload, err))
	}

	log := zerowrap.FromCtx(ctx)
	log.Info().
		Str("bucket", ref.Bucket).
		Str("key", ref.Key).
		Int64(zerowrap.FieldSize, size).
		Msg("upload complete")

	return nil
}

func (s *Service) register(ctx context.Context, req domain.LayerRequest, ref domain.StorageReference) (*domain.LayerVersion, *domain.BuildError) {
	ctx, span := s.tracer.Start(ctx, "layers.register")
	defer span.End()

	version, err := s.registry.Publish(ctx, domain.PublishRequest{
		LayerName:               req.LayerName,
		Description:             domain.Description(req.Packages),
		Content:                 ref,
		CompatibleRuntimes:      s.config.CompatibleRuntimes,
		CompatibleArchitectures: s.config.CompatibleArchitectures,
	})
	if err != nil {
		// The uploaded object is left in place for out-of-band reconciliation.
		return nil, s.fail(ctx, span, domain.NewBuildError(domain.FailureRegistration, domain.StageRegister, err))
	}

	span.SetAttributes(attribute.Int64("layer.version", version.Version))

	log := zerowrap.FromCtx(ctx)
	log.Info().
		Str("layer_version_arn", version.LayerVersionArn).
		Int64("version", version.Version).
		Msg("layer published")

	return version, nil
}

// teardown removes the workspace. Errors are logged and never reported.
func (s *Service) teardown(ctx context.Context, ws *domain.Workspace) {
	log := zerowrap.FromCtx(ctx)

	if s.config.KeepWorkspace {
		log.Debug().Str("workspace", ws.Dir).Msg("keeping workspace")
		return
	}

	if err := s.workspaces.Teardown(ctx, ws); err != nil {
		log.Warn().Err(err).Str("workspace", ws.Dir).Msg("failed to remove workspace")
	}
}

func (s *Service) fail(ctx context.Context, span trace.Span, failure *domain.BuildError) *domain.BuildError {
	span.RecordError(failure)
	span.SetStatus(codes.Error, string(failure.Kind))

	log := zerowrap.FromCtx(ctx)
	log.Error().
		Err(failure.Err).
		Str("stage", string(failure.Stage)).
		Str("kind", string(failure.Kind)).
		Msg("layer build stage failed")

	return failure
}

// finish stamps the result, emits metrics and records the outcome.
func (s *Service) finish(ctx context.Context, span trace.Span, result *domain.BuildResult) {
	result.FinishedAt = s.now()
	log := zerowrap.FromCtx(ctx)

	outcome := domain.BuildStatusSucceeded
	if result.Failure != nil {
		outcome = domain.BuildStatusFailed
		span.SetStatus(codes.Error, string(result.Failure.Kind))
	}

	if s.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("outcome", outcome),
			attribute.String("failure_kind", failureKind(result)),
		)
		s.metrics.BuildTotal.Add(ctx, 1, attrs)
		s.metrics.BuildDuration.Record(ctx, result.Duration().Seconds(), attrs)
	}

	if result.Orphaned() {
		log.Warn().
			Str("bucket", s.config.Bucket).
			Str("key", domain.ObjectKey(result.LayerName)).
			Msg("uploaded archive is not referenced by any layer version")
	}

	log.Info().
		Str("outcome", outcome).
		Dur(zerowrap.FieldDuration, result.Duration()).
		Msg("layer build finished")

	if s.recorder == nil {
		return
	}

	if err := s.recorder.Record(ctx, s.toRecord(result)); err != nil {
		log.Warn().Err(err).Msg("failed to record build outcome")
	}
}

func (s *Service) toRecord(result *domain.BuildResult) domain.BuildRecord {
	rec := domain.BuildRecord{
		ID:         result.ID,
		LayerName:  result.LayerName,
		Packages:   result.Packages,
		Status:     domain.BuildStatusSucceeded,
		Bucket:     s.config.Bucket,
		Orphaned:   result.Orphaned(),
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}

	if result.Uploaded {
		rec.Key = domain.ObjectKey(result.LayerName)
	}
	if result.Archive != nil {
		rec.ArchiveSize = result.Archive.CompressedSize
	}
	if result.Version != nil {
		rec.LayerVersionArn = result.Version.LayerVersionArn
		rec.Version = result.Version.Version
	}
	if result.Failure != nil {
		rec.Status = domain.BuildStatusFailed
		rec.FailureKind = result.Failure.Kind
		rec.FailedStage = result.Failure.Stage
		rec.Error = result.Failure.Error()
	}

	return rec
}

func failureKind(result *domain.BuildResult) string {
	if result.Failure == nil {
		return ""
	}
	return string(result.Failure.Kind)
}
