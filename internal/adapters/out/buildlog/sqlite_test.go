package buildlog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/layerkit/internal/domain"
)

func testCtx() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func openTest(t *testing.T) *Recorder {
	t.Helper()
	rec, err := Open(testCtx(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })
	return rec
}

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func succeeded(id, layer string, offset time.Duration) domain.BuildRecord {
	return domain.BuildRecord{
		ID:              id,
		LayerName:       layer,
		Packages:        []string{"lodash", "axios@1.6.0"},
		Status:          domain.BuildStatusSucceeded,
		Bucket:          "test-bucket",
		Key:             domain.ObjectKey(layer),
		ArchiveSize:     2048,
		LayerVersionArn: "arn:aws:lambda:us-east-1:123456789012:layer:" + layer + ":1",
		Version:         1,
		StartedAt:       base.Add(offset),
		FinishedAt:      base.Add(offset + 3*time.Second),
	}
}

func orphaned(id, layer string, offset time.Duration) domain.BuildRecord {
	rec := succeeded(id, layer, offset)
	rec.Status = domain.BuildStatusFailed
	rec.FailureKind = domain.FailureRegistration
	rec.FailedStage = domain.StageRegister
	rec.Error = "RegistrationFailure: layer registration failed"
	rec.LayerVersionArn = ""
	rec.Version = 0
	rec.Orphaned = true
	return rec
}

func TestRecorder_RecordAndList(t *testing.T) {
	rec := openTest(t)
	ctx := testCtx()

	want := succeeded("b1", "test-layer", 0)
	require.NoError(t, rec.Record(ctx, want))

	got, err := rec.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, want.Packages, got[0].Packages)
	assert.Equal(t, want.Key, got[0].Key)
	assert.Equal(t, want.ArchiveSize, got[0].ArchiveSize)
	assert.Equal(t, want.LayerVersionArn, got[0].LayerVersionArn)
	assert.Equal(t, want.Version, got[0].Version)
	assert.False(t, got[0].Orphaned)
	assert.True(t, want.StartedAt.Equal(got[0].StartedAt))
	assert.True(t, want.FinishedAt.Equal(got[0].FinishedAt))
}

func TestRecorder_List_NewestFirstAndLimit(t *testing.T) {
	rec := openTest(t)
	ctx := testCtx()

	for i := 0; i < 5; i++ {
		r := succeeded(fmt.Sprintf("b%d", i), "test-layer", time.Duration(i)*time.Minute+time.Duration(i)*time.Millisecond)
		require.NoError(t, rec.Record(ctx, r))
	}

	got, err := rec.List(ctx, domain.HistoryFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b4", got[0].ID)
	assert.Equal(t, "b3", got[1].ID)
	assert.Equal(t, "b2", got[2].ID)
}

func TestRecorder_List_Filters(t *testing.T) {
	rec := openTest(t)
	ctx := testCtx()

	require.NoError(t, rec.Record(ctx, succeeded("b1", "alpha", 0)))
	require.NoError(t, rec.Record(ctx, orphaned("b2", "alpha", time.Minute)))
	require.NoError(t, rec.Record(ctx, orphaned("b3", "beta", 2*time.Minute)))

	byLayer, err := rec.List(ctx, domain.HistoryFilter{LayerName: "alpha"})
	require.NoError(t, err)
	assert.Len(t, byLayer, 2)

	orphans, err := rec.List(ctx, domain.HistoryFilter{OrphanedOnly: true})
	require.NoError(t, err)
	require.Len(t, orphans, 2)
	assert.Equal(t, "b3", orphans[0].ID)
	assert.Equal(t, domain.FailureRegistration, orphans[0].FailureKind)
	assert.Equal(t, domain.StageRegister, orphans[0].FailedStage)
	assert.True(t, orphans[0].Orphaned)

	both, err := rec.List(ctx, domain.HistoryFilter{LayerName: "alpha", OrphanedOnly: true})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "b2", both[0].ID)
}

func TestRecorder_Record_ReplacesSameID(t *testing.T) {
	rec := openTest(t)
	ctx := testCtx()

	require.NoError(t, rec.Record(ctx, orphaned("b1", "alpha", 0)))
	require.NoError(t, rec.Record(ctx, succeeded("b1", "alpha", 0)))

	got, err := rec.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.BuildStatusSucceeded, got[0].Status)
}

func TestRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := testCtx()

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, succeeded("b1", "alpha", 0)))
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
