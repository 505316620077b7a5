package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"QuickMemo/internal/app/store"
)

type fakeGate struct {
	restored bool
	eligible bool
}

func (g fakeGate) RestoreComplete() bool { return g.restored }
func (g fakeGate) SyncEligible() bool    { return g.eligible }

func newAutoBackup(t *testing.T, svc *MemoService, st *store.Store, client BackupClient, gate Gate) *AutoBackup {
	t.Helper()
	return NewAutoBackup(svc, client, gate, st, time.Hour, zap.NewNop().Sugar())
}

func TestMaybePush_Success(t *testing.T) {
	st := newTestStore(t)
	svc := NewMemoService(st, "en", zap.NewNop().Sugar())
	svc.AddMemo("a", "", "Work", nil)

	client := new(mockClient)
	client.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	ab := newAutoBackup(t, svc, st, client, fakeGate{restored: true, eligible: true})
	assert.True(t, ab.MaybePush(context.Background()))

	_, ok := st.LastBackupAt()
	assert.True(t, ok, "момент бэкапа зафиксирован")
	client.AssertExpectations(t)
}

func TestMaybePush_Preconditions(t *testing.T) {
	st := newTestStore(t)
	svc := NewMemoService(st, "en", zap.NewNop().Sugar())
	svc.AddMemo("a", "", "Work", nil)
	client := new(mockClient) // любой вызов уронит тест

	t.Run("restore not complete", func(t *testing.T) {
		ab := newAutoBackup(t, svc, st, client, fakeGate{restored: false, eligible: true})
		assert.False(t, ab.MaybePush(context.Background()))
	})

	t.Run("not eligible", func(t *testing.T) {
		ab := newAutoBackup(t, svc, st, client, fakeGate{restored: true, eligible: false})
		assert.False(t, ab.MaybePush(context.Background()))
	})

	t.Run("empty collections", func(t *testing.T) {
		emptySvc := NewMemoService(newTestStore(t), "en", zap.NewNop().Sugar())
		ab := newAutoBackup(t, emptySvc, st, client, fakeGate{restored: true, eligible: true})
		assert.False(t, ab.MaybePush(context.Background()))
	})

	client.AssertExpectations(t)
}

func TestMaybePush_Cooldown(t *testing.T) {
	st := newTestStore(t)
	svc := NewMemoService(st, "en", zap.NewNop().Sugar())
	svc.AddMemo("a", "", "Work", nil)

	client := new(mockClient)
	client.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	ab := newAutoBackup(t, svc, st, client, fakeGate{restored: true, eligible: true})
	base := time.Now()
	ab.now = func() time.Time { return base }

	require.True(t, ab.MaybePush(context.Background()))
	assert.False(t, ab.MaybePush(context.Background()), "повтор внутри окна охлаждения подавлен")

	ab.now = func() time.Time { return base.Add(2 * time.Hour) }
	assert.True(t, ab.MaybePush(context.Background()))
	client.AssertExpectations(t)
}

func TestMaybePush_PushFailure(t *testing.T) {
	st := newTestStore(t)
	svc := NewMemoService(st, "en", zap.NewNop().Sugar())
	svc.AddMemo("a", "", "Work", nil)

	client := new(mockClient)
	client.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	ab := newAutoBackup(t, svc, st, client, fakeGate{restored: true, eligible: true})
	assert.False(t, ab.MaybePush(context.Background()))

	_, ok := st.LastBackupAt()
	assert.False(t, ok, "неудачный push не двигает окно охлаждения")
}
