package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"QuickMemo/internal/app/events"
	"QuickMemo/internal/app/model"
)

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o600)
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, _, err := Open(t.TempDir(), zap.NewNop().Sugar(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_EmptyDir(t *testing.T) {
	_, _, err := Open("", zap.NewNop().Sugar(), nil)
	assert.Error(t, err)
}

func TestOpenShared_FallsBackToLocal(t *testing.T) {
	local := t.TempDir()
	// общий контейнер недоступен: путь внутрь обычного файла
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, writeFile(blocked, []byte("x")))

	s, path, err := OpenShared(filepath.Join(blocked, "nested"), local, zap.NewNop().Sugar(), nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, filepath.Join(local, dbFileName), path)
}

func TestPutGetRaw(t *testing.T) {
	s := newTestStore(t)

	b, err := s.GetRaw("nope")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, s.PutRaw("k", []byte("v1")))
	require.NoError(t, s.PutRaw("k", []byte("v2"))) // полная замена

	b, err = s.GetRaw("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), b)

	ok, err := s.Has("k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemos_PersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop().Sugar()

	s, _, err := Open(dir, log, nil)
	require.NoError(t, err)
	memos := []model.Memo{model.NewMemo("a", "b", "Work", []string{"t"})}
	require.NoError(t, s.SaveMemos(memos))
	require.NoError(t, s.Close())

	s2, _, err := Open(dir, log, nil)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, memos, s2.LoadMemos())
}

func TestLoadMemos_CorruptIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutRaw(KeyMemos, []byte("{not json")))
	assert.Nil(t, s.LoadMemos())
}

func TestCategories_ShadowKey(t *testing.T) {
	s := newTestStore(t)
	cats := []model.Category{{ID: newUUID(t), Name: "Work", DefaultTags: []string{}, HiddenTags: []string{}}}
	require.NoError(t, s.SaveCategories(cats))

	// запись ушла под оба ключа
	primary, err := s.GetRaw(KeyCategories)
	require.NoError(t, err)
	shadow, err := s.GetRaw(KeyCategoriesBackup)
	require.NoError(t, err)
	assert.Equal(t, primary, shadow)
}

func TestCategories_SelfHeal(t *testing.T) {
	s := newTestStore(t)
	cats := []model.Category{{ID: newUUID(t), Name: "Work", DefaultTags: []string{}, HiddenTags: []string{}}}
	require.NoError(t, s.SaveCategories(cats))

	// портим основной ключ
	require.NoError(t, s.PutRaw(KeyCategories, []byte("corrupt")))

	got := s.LoadCategories()
	assert.Equal(t, cats, got, "чтение уходит в теневую копию")

	// основной ключ восстановлен
	primary, err := s.GetRaw(KeyCategories)
	require.NoError(t, err)
	shadow, _ := s.GetRaw(KeyCategoriesBackup)
	assert.Equal(t, shadow, primary)
}

func TestCategories_BothCorrupt(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutRaw(KeyCategories, []byte("bad")))
	require.NoError(t, s.PutRaw(KeyCategoriesBackup, []byte("bad too")))
	assert.Nil(t, s.LoadCategories())
}

func TestArchived_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	items := []model.ArchivedMemo{{Memo: model.NewMemo("x", "", "Work", nil), DeletedAt: model.Now()}}
	require.NoError(t, s.SaveArchived(items))
	assert.Equal(t, items, s.LoadArchived())
}

func TestMigrationFlag(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.MigrationComplete())
	require.NoError(t, s.SetMigrationComplete())
	assert.True(t, s.MigrationComplete())
}

func TestLastBackupAt(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.LastBackupAt()
	assert.False(t, ok)

	ts := model.FromUnix(1712345678)
	require.NoError(t, s.SetLastBackupAt(ts))
	got, ok := s.LastBackupAt()
	require.True(t, ok)
	assert.Equal(t, ts, got)
}

func TestIsPurchased(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.IsPurchased())
	require.NoError(t, s.SetIsPurchased(true))
	assert.True(t, s.IsPurchased())
	require.NoError(t, s.SetIsPurchased(false))
	assert.False(t, s.IsPurchased())
}

func TestWidgetCategory(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "", s.WidgetCategory())
	require.NoError(t, s.SetWidgetCategory("Work"))
	assert.Equal(t, "Work", s.WidgetCategory())
}

func TestSave_PublishesStorageChanged(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(events.StorageChanged)

	s, _, err := Open(t.TempDir(), zap.NewNop().Sugar(), bus)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveMemos(nil))
	select {
	case <-ch:
	default:
		t.Fatal("expected StorageChanged event")
	}
}
