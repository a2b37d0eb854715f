package history

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bnema/layerkit/internal/boundaries/out/mocks"
	"github.com/bnema/layerkit/internal/domain"
)

func testContext() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func TestService_List_Success(t *testing.T) {
	recorder := mocks.NewMockBuildRecorder(t)
	svc := NewService(recorder)

	filter := domain.HistoryFilter{LayerName: "test-layer", Limit: 10}
	records := []domain.BuildRecord{{ID: "b1", LayerName: "test-layer"}}
	recorder.EXPECT().List(mock.Anything, filter).Return(records, nil)

	got, err := svc.List(testContext(), filter)

	assert.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestService_List_Error(t *testing.T) {
	recorder := mocks.NewMockBuildRecorder(t)
	svc := NewService(recorder)

	recorder.EXPECT().List(mock.Anything, domain.HistoryFilter{}).Return(nil, errors.New("database is locked"))

	got, err := svc.List(testContext(), domain.HistoryFilter{})

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "failed to list builds")
}

func TestService_List_Disabled(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.List(testContext(), domain.HistoryFilter{})

	assert.ErrorIs(t, err, domain.ErrHistoryDisabled)
}

func TestService_Orphans(t *testing.T) {
	recorder := mocks.NewMockBuildRecorder(t)
	svc := NewService(recorder)

	recorder.EXPECT().
		List(mock.Anything, domain.HistoryFilter{OrphanedOnly: true, Limit: 5}).
		Return([]domain.BuildRecord{{ID: "b2", Orphaned: true}}, nil)

	got, err := svc.Orphans(testContext(), 5)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.True(t, got[0].Orphaned)
}
