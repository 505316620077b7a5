package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"QuickMemo/internal/app/categories"
	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, _, err := store.Open(t.TempDir(), zap.NewNop().Sugar(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestService(t *testing.T) *MemoService {
	t.Helper()
	svc := NewMemoService(newTestStore(t), categories.LangEN, zap.NewNop().Sugar())
	svc.LoadLocal()
	return svc
}

func seededService(t *testing.T) *MemoService {
	t.Helper()
	svc := newTestService(t)
	svc.SetCategories(categories.DefaultSet(categories.LangEN))
	return svc
}

func categoryByName(t *testing.T, svc *MemoService, name string) model.Category {
	t.Helper()
	for _, c := range svc.Categories() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not found", name)
	return model.Category{}
}

func TestAddUpdateMemo(t *testing.T) {
	svc := seededService(t)

	m := svc.AddMemo("題", "本文", "Work", []string{"x"})
	assert.NotEqual(t, uuid.Nil, m.ID)

	m.Title = "updated"
	assert.True(t, svc.UpdateMemo(m))

	memos := svc.Memos()
	require.Len(t, memos, 1)
	assert.Equal(t, "updated", memos[0].Title)
	assert.Equal(t, m.CreatedAt, memos[0].CreatedAt, "createdAt не меняется при обновлении")

	missing := model.NewMemo("x", "", "Work", nil)
	assert.False(t, svc.UpdateMemo(missing))
}

func TestDeleteRestorePurge(t *testing.T) {
	svc := seededService(t)
	m := svc.AddMemo("будет удалено", "", "Work", nil)

	require.True(t, svc.DeleteMemo(m.ID))
	assert.Empty(t, svc.Memos())
	require.Len(t, svc.Archived(), 1)
	assert.False(t, svc.Archived()[0].DeletedAt.IsZero())

	require.True(t, svc.RestoreArchived(m.ID))
	assert.Len(t, svc.Memos(), 1)
	assert.Empty(t, svc.Archived())

	require.True(t, svc.DeleteMemo(m.ID))
	require.True(t, svc.PurgeArchived(m.ID))
	assert.Empty(t, svc.Archived())
	assert.False(t, svc.RestoreArchived(m.ID))
}

func TestDelete_PersistsBothCollections(t *testing.T) {
	st := newTestStore(t)
	svc := NewMemoService(st, categories.LangEN, zap.NewNop().Sugar())
	svc.LoadLocal()
	m := svc.AddMemo("x", "", "Work", nil)
	require.True(t, svc.DeleteMemo(m.ID))

	// состояние переживает перезапуск сервиса
	svc2 := NewMemoService(st, categories.LangEN, zap.NewNop().Sugar())
	svc2.LoadLocal()
	assert.Empty(t, svc2.Memos())
	assert.Len(t, svc2.Archived(), 1)
}

func TestAddCategory_NameCollision(t *testing.T) {
	svc := seededService(t)
	c := model.Category{ID: uuid.New(), Name: "Recipes", DefaultTags: []string{}, HiddenTags: []string{}}
	assert.True(t, svc.AddCategory(c))
	assert.False(t, svc.AddCategory(c), "имя уже занято")
}

func TestRenameCategory(t *testing.T) {
	svc := seededService(t)
	svc.AddMemo("a", "", "Work", nil)
	work := categoryByName(t, svc, "Work")

	require.True(t, svc.RenameCategory(work.ID, "Job"))
	assert.Equal(t, "Job", svc.Memos()[0].PrimaryCategory, "ссылки мемо следуют за переименованием")

	// коллизия имён
	personal := categoryByName(t, svc, "Personal")
	assert.False(t, svc.RenameCategory(personal.ID, "Job"))

	// «Прочее» не переименовывается
	other := categoryByName(t, svc, "Other")
	assert.False(t, svc.RenameCategory(other.ID, "Misc"))
}

func TestRenameCategory_SameNameNoOp(t *testing.T) {
	svc := seededService(t)
	work := categoryByName(t, svc, "Work")

	assert.True(t, svc.RenameCategory(work.ID, "Work"), "собственное имя — не коллизия")
	assert.Equal(t, "Work", categoryByName(t, svc, "Work").Name)
	assert.Len(t, svc.Categories(), 5)
}

func TestDeleteCategory_MovesMemosToOther(t *testing.T) {
	svc := seededService(t)
	svc.AddMemo("a", "", "Work", nil)
	work := categoryByName(t, svc, "Work")
	other := categoryByName(t, svc, "Other")

	require.True(t, svc.DeleteCategory(work.ID))
	assert.Equal(t, other.Name, svc.Memos()[0].PrimaryCategory)
	assert.Len(t, svc.Categories(), 4)

	// «Прочее» удалить нельзя
	assert.False(t, svc.DeleteCategory(other.ID))
}

func TestHideTag(t *testing.T) {
	svc := seededService(t)
	work := categoryByName(t, svc, "Work")

	require.True(t, svc.HideTag(work.ID, "Meeting"))
	require.True(t, svc.HideTag(work.ID, "Meeting"), "повторное скрытие — no-op")

	got := categoryByName(t, svc, "Work")
	assert.Equal(t, []string{"Meeting"}, got.HiddenTags)
	assert.False(t, svc.HideTag(uuid.New(), "x"))
}

func TestAdopt_Persists(t *testing.T) {
	st := newTestStore(t)
	svc := NewMemoService(st, categories.LangEN, zap.NewNop().Sugar())

	memos := []model.Memo{model.NewMemo("restored", "", "Work", nil)}
	cats := categories.DefaultSet(categories.LangEN)
	svc.Adopt(memos, cats)

	svc2 := NewMemoService(st, categories.LangEN, zap.NewNop().Sugar())
	svc2.LoadLocal()
	assert.Equal(t, memos, svc2.Memos())
	assert.Equal(t, cats, svc2.Categories())
}

func TestRepairCategories(t *testing.T) {
	svc := newTestService(t)
	svc.AddMemo("a", "", "Рецепты", nil)
	svc.SetCategories(nil)

	cats := svc.RepairCategories()
	require.Len(t, cats, 6)
	_, ok := categories.Resolve(cats, "Рецепты")
	assert.True(t, ok)
}

func TestAllTags(t *testing.T) {
	svc := seededService(t)
	svc.AddMemo("a", "", "Work", []string{"zeta", "alpha"})
	svc.AddMemo("b", "", "Work", []string{"alpha", "mid"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, svc.AllTags())
}
