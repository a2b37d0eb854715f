package layers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/layerkit/internal/adapters/out/telemetry"
	"github.com/bnema/layerkit/internal/boundaries/out/mocks"
	"github.com/bnema/layerkit/internal/domain"
)

func testContext() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

type testDeps struct {
	workspaces *mocks.MockWorkspaceManager
	installer  *mocks.MockPackageInstaller
	archiver   *mocks.MockArchiveBuilder
	blobs      *mocks.MockBlobStore
	registry   *mocks.MockLayerRegistry
	recorder   *mocks.MockBuildRecorder
}

func bufferContext(buf *bytes.Buffer) context.Context {
	log := zerowrap.New(zerowrap.Config{Level: "debug", Format: "json", Output: buf})
	return zerowrap.WithCtx(context.Background(), log)
}

func testConfig() Config {
	return Config{
		Bucket:                  "test-bucket",
		CompatibleRuntimes:      []string{"nodejs18.x", "nodejs20.x"},
		CompatibleArchitectures: []string{"x86_64"},
	}
}

func newTestService(t *testing.T, cfg Config, withRecorder bool) (*Service, testDeps) {
	t.Helper()
	deps := testDeps{
		workspaces: mocks.NewMockWorkspaceManager(t),
		installer:  mocks.NewMockPackageInstaller(t),
		archiver:   mocks.NewMockArchiveBuilder(t),
		blobs:      mocks.NewMockBlobStore(t),
		registry:   mocks.NewMockLayerRegistry(t),
	}

	var svc *Service
	if withRecorder {
		deps.recorder = mocks.NewMockBuildRecorder(t)
		svc = NewService(cfg, deps.workspaces, deps.installer, deps.archiver, deps.blobs, deps.registry, deps.recorder)
	} else {
		svc = NewService(cfg, deps.workspaces, deps.installer, deps.archiver, deps.blobs, deps.registry, nil)
	}
	return svc, deps
}

func testWorkspace(layerName string) *domain.Workspace {
	root := "/tmp/layerkit/" + layerName + "-0001"
	return &domain.Workspace{
		ID:          "0001",
		LayerName:   layerName,
		Root:        root,
		Dir:         root + "/layer",
		CacheDir:    root + "/.installer/cache",
		HomeDir:     root + "/.installer/home",
		ArchivePath: root + "/" + layerName + ".zip",
	}
}

func testStats(ws *domain.Workspace) *domain.ArchiveStats {
	return &domain.ArchiveStats{Path: ws.ArchivePath, Files: 12, UncompressedSize: 70000, CompressedSize: 25000}
}

func testVersion(layerName string, version int64) *domain.LayerVersion {
	arn := "arn:aws:lambda:us-east-1:123456789012:layer:" + layerName
	return &domain.LayerVersion{
		LayerName:       layerName,
		LayerArn:        arn,
		LayerVersionArn: fmt.Sprintf("%s:%d", arn, version),
		Version:         version,
	}
}

func TestService_Build_Success(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	ctx := testContext()
	ws := testWorkspace("test-layer")
	ref := domain.StorageReference{Bucket: "test-bucket", Key: "layers/test-layer.zip"}

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, ref).Return(int64(25000), nil)
	deps.registry.EXPECT().Publish(mock.Anything, domain.PublishRequest{
		LayerName:               "test-layer",
		Description:             "Packages: lodash",
		Content:                 ref,
		CompatibleRuntimes:      []string{"nodejs18.x", "nodejs20.x"},
		CompatibleArchitectures: []string{"x86_64"},
	}).Return(testVersion("test-layer", 1), nil)
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(ctx, "lodash", "test-layer")

	require.Nil(t, result.Failure)
	assert.True(t, result.Succeeded())
	assert.Equal(t, http.StatusOK, result.StatusCode())
	assert.Equal(t, []string{"lodash"}, result.Packages)
	assert.GreaterOrEqual(t, result.Version.Version, int64(1))
	assert.Equal(t, "arn:aws:lambda:us-east-1:123456789012:layer:test-layer:1", result.Version.LayerVersionArn)
	assert.True(t, result.Uploaded)
	assert.False(t, result.Orphaned())
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))
}

func TestService_Build_InstallsEachSpecInOrder(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	ctx := testContext()
	ws := testWorkspace("multi")

	var installed []string
	deps.workspaces.EXPECT().Prepare(mock.Anything, "multi").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, mock.AnythingOfType("string"), ws).
		Run(func(_ context.Context, spec string, _ *domain.Workspace) {
			installed = append(installed, spec)
		}).
		Return(nil).
		Times(3)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, mock.Anything).Return(int64(25000), nil)
	deps.registry.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(req domain.PublishRequest) bool {
		return req.Description == "Packages: lodash axios@1.6.0 uuid"
	})).Return(testVersion("multi", 4), nil)
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(ctx, "  lodash   axios@1.6.0\tuuid ", "multi")

	require.True(t, result.Succeeded())
	assert.Equal(t, []string{"lodash", "axios@1.6.0", "uuid"}, installed)
}

func TestService_Build_InvalidRequest(t *testing.T) {
	tests := []struct {
		name      string
		packages  string
		layerName string
		wantErr   error
	}{
		{name: "empty packages", packages: "", layerName: "x", wantErr: domain.ErrMissingPackages},
		{name: "blank packages", packages: "   ", layerName: "x", wantErr: domain.ErrMissingPackages},
		{name: "empty layer name", packages: "lodash", layerName: "", wantErr: domain.ErrMissingLayerName},
		{name: "illegal layer name", packages: "lodash", layerName: "my/layer", wantErr: domain.ErrInvalidLayerName},
		{name: "flag as spec", packages: "lodash --global", layerName: "x", wantErr: domain.ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: any port call fails the test.
			svc, _ := newTestService(t, testConfig(), false)

			result := svc.Build(testContext(), tt.packages, tt.layerName)

			require.NotNil(t, result.Failure)
			assert.Equal(t, domain.FailureInvalidRequest, result.Failure.Kind)
			assert.Equal(t, domain.StageValidate, result.Failure.Stage)
			assert.ErrorIs(t, result.Failure, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, result.StatusCode())
			assert.False(t, result.Uploaded)
		})
	}
}

func TestService_Build_InstallFailureStopsPipeline(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	ctx := testContext()
	ws := testWorkspace("test-layer")
	installErr := fmt.Errorf("%w: left-pad@99.0.0: npm exited with code 1: 404 Not Found", domain.ErrInstallFailed)

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(nil).Once()
	deps.installer.EXPECT().Install(mock.Anything, "left-pad@99.0.0", ws).Return(installErr).Once()
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(ctx, "lodash left-pad@99.0.0", "test-layer")

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureInstallation, result.Failure.Kind)
	assert.Equal(t, domain.StageInstall, result.Failure.Stage)
	assert.Equal(t, "left-pad@99.0.0", result.Failure.Spec)
	assert.Contains(t, result.Failure.Error(), "left-pad@99.0.0")
	assert.ErrorIs(t, result.Failure, domain.ErrInstallFailed)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode())
	assert.Nil(t, result.Archive)
	assert.False(t, result.Uploaded)
}

func TestService_Build_WorkspaceFailure(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").
		Return(nil, fmt.Errorf("%w: permission denied", domain.ErrWorkspaceCreate))

	result := svc.Build(testContext(), "lodash", "test-layer")

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureWorkspace, result.Failure.Kind)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode())
}

func TestService_Build_ArchiveFailure(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	ws := testWorkspace("big")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "big").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "aws-sdk", ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).
		Return(nil, fmt.Errorf("%w: %w", domain.ErrArchiveFailed, domain.ErrLayerTooLarge))
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(testContext(), "aws-sdk", "big")

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureArchive, result.Failure.Kind)
	assert.ErrorIs(t, result.Failure, domain.ErrLayerTooLarge)
	assert.False(t, result.Uploaded)
}

func TestService_Build_UploadFailure(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, mock.Anything).
		Return(int64(0), fmt.Errorf("%w: AccessDenied", domain.ErrUploadFailed))
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(testContext(), "lodash", "test-layer")

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureUpload, result.Failure.Kind)
	assert.False(t, result.Uploaded)
	assert.False(t, result.Orphaned())
}

func TestService_Build_RegistrationFailureLeavesOrphan(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), true)
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, mock.Anything).Return(int64(25000), nil)
	deps.registry.EXPECT().Publish(mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: InvalidParameterValueException", domain.ErrRegistrationFailed))
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	var recorded domain.BuildRecord
	deps.recorder.EXPECT().Record(mock.Anything, mock.Anything).
		Run(func(_ context.Context, rec domain.BuildRecord) { recorded = rec }).
		Return(nil)

	result := svc.Build(testContext(), "lodash", "test-layer")

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureRegistration, result.Failure.Kind)
	assert.True(t, result.Uploaded)
	assert.True(t, result.Orphaned())

	assert.Equal(t, domain.BuildStatusFailed, recorded.Status)
	assert.True(t, recorded.Orphaned)
	assert.Equal(t, "layers/test-layer.zip", recorded.Key)
	assert.Equal(t, "test-bucket", recorded.Bucket)
	assert.Equal(t, domain.StageRegister, recorded.FailedStage)
	assert.Equal(t, int64(25000), recorded.ArchiveSize)
}

func TestService_Build_CleanupErrorsAreIgnored(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(errors.New("device busy"))
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, mock.Anything).Return(int64(25000), nil)
	deps.registry.EXPECT().Publish(mock.Anything, mock.Anything).Return(testVersion("test-layer", 2), nil)
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(errors.New("directory not empty"))

	result := svc.Build(testContext(), "lodash", "test-layer")

	assert.True(t, result.Succeeded())
	assert.Equal(t, http.StatusOK, result.StatusCode())
}

func TestService_Build_KeepWorkspace(t *testing.T) {
	cfg := testConfig()
	cfg.KeepWorkspace = true
	svc, deps := newTestService(t, cfg, false)
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(errors.New("boom"))

	result := svc.Build(testContext(), "lodash", "test-layer")

	assert.False(t, result.Succeeded())
	deps.workspaces.AssertNotCalled(t, "Teardown", mock.Anything, mock.Anything)
}

func TestService_Build_RecordsSuccess(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), true)
	svc.SetMetrics(mustMetrics(t))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, mock.Anything).Return(int64(25000), nil)
	deps.registry.EXPECT().Publish(mock.Anything, mock.Anything).Return(testVersion("test-layer", 7), nil)
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)
	deps.recorder.EXPECT().Record(mock.Anything, mock.MatchedBy(func(rec domain.BuildRecord) bool {
		return rec.Status == domain.BuildStatusSucceeded &&
			rec.Version == 7 &&
			!rec.Orphaned &&
			rec.StartedAt.Equal(fixed) &&
			rec.FailureKind == ""
	})).Return(errors.New("disk full"))

	result := svc.Build(testContext(), "lodash", "test-layer")

	assert.True(t, result.Succeeded())
}

func mustMetrics(t *testing.T) *telemetry.Metrics {
	t.Helper()
	m, err := telemetry.NewMetrics()
	require.NoError(t, err)
	return m
}

func TestService_Build_LogsMilestones(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	var buf bytes.Buffer
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, mock.Anything, ws).Return(nil)
	deps.workspaces.EXPECT().CleanupCache(mock.Anything, ws).Return(nil)
	deps.archiver.EXPECT().Build(mock.Anything, ws.Dir, ws.ArchivePath).Return(testStats(ws), nil)
	deps.blobs.EXPECT().Upload(mock.Anything, ws.ArchivePath, mock.Anything).Return(int64(25000), nil)
	deps.registry.EXPECT().Publish(mock.Anything, mock.Anything).Return(testVersion("test-layer", 2), nil)
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(bufferContext(&buf), "lodash axios", "test-layer")
	require.True(t, result.Succeeded())

	out := buf.String()
	for _, msg := range []string{
		"received layer build request",
		"workspace prepared",
		"installing package",
		"installer cache cleaned",
		"archive created",
		"upload complete",
		"layer published",
		"layer build finished",
	} {
		assert.Contains(t, out, msg)
	}
}

func TestService_Build_LogsFailedStage(t *testing.T) {
	svc, deps := newTestService(t, testConfig(), false)
	var buf bytes.Buffer
	ws := testWorkspace("test-layer")

	deps.workspaces.EXPECT().Prepare(mock.Anything, "test-layer").Return(ws, nil)
	deps.installer.EXPECT().Install(mock.Anything, "lodash", ws).Return(errors.New("exit 1"))
	deps.workspaces.EXPECT().Teardown(mock.Anything, ws).Return(nil)

	result := svc.Build(bufferContext(&buf), "lodash", "test-layer")
	require.NotNil(t, result.Failure)

	assert.Contains(t, buf.String(), "layer build stage failed")
	assert.Contains(t, buf.String(), string(domain.FailureInstallation))
}
