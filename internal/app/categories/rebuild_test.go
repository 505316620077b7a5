package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuickMemo/internal/app/model"
)

func TestDefaultSet(t *testing.T) {
	for _, lang := range []string{LangJA, LangEN, LangZH} {
		cats := DefaultSet(lang)
		require.Len(t, cats, 5)
		for i, c := range cats {
			assert.True(t, c.IsDefault)
			assert.NotNil(t, c.BaseKey)
			assert.Equal(t, i, c.Order)
			assert.NotEmpty(t, c.Name)
			assert.NotEmpty(t, c.DefaultTags)
		}
		assert.True(t, cats[len(cats)-1].IsOther(), "защищённая категория всегда последняя")
	}
}

func TestDefaultSet_FreshIDs(t *testing.T) {
	a := DefaultSet(LangEN)
	b := DefaultSet(LangEN)
	assert.NotEqual(t, a[0].ID, b[0].ID, "идентичность несёт baseKey, а не UUID")
	assert.Equal(t, *a[0].BaseKey, *b[0].BaseKey)
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, LangJA, NormalizeLang("ja_JP.UTF-8"))
	assert.Equal(t, LangZH, NormalizeLang("zh-Hans"))
	assert.Equal(t, LangEN, NormalizeLang("en_US"))
	assert.Equal(t, LangEN, NormalizeLang("fr_FR"))
	assert.Equal(t, LangEN, NormalizeLang(""))
}

func TestResolve_VariantAcrossLocales(t *testing.T) {
	cats := DefaultSet(LangJA)

	// точное имя на текущем языке
	c, ok := Resolve(cats, "仕事")
	require.True(t, ok)
	assert.Equal(t, "work", *c.BaseKey)

	// имя из прежней локали сводится через варианты
	c, ok = Resolve(cats, "Work")
	require.True(t, ok)
	assert.Equal(t, "work", *c.BaseKey)

	c, ok = Resolve(cats, "工作")
	require.True(t, ok)
	assert.Equal(t, "work", *c.BaseKey)

	_, ok = Resolve(cats, "Совещания")
	assert.False(t, ok)
}

func TestRebuild_EmptyMemos(t *testing.T) {
	cats := Rebuild(nil, LangEN)
	assert.Len(t, cats, 5)
}

func TestRebuild_Closure(t *testing.T) {
	memos := []model.Memo{
		model.NewMemo("a", "", "Work", nil),
		model.NewMemo("b", "", "Рецепты", nil),
		model.NewMemo("c", "", "Рецепты", nil), // дубликат строки
		model.NewMemo("d", "", "プライベート", nil),
		model.NewMemo("e", "", "", nil), // пустая строка не синтезирует категорию
	}

	cats := Rebuild(memos, LangEN)

	// 5 предустановленных + одна синтезированная
	require.Len(t, cats, 6)

	custom := cats[5]
	assert.Equal(t, "Рецепты", custom.Name)
	assert.False(t, custom.IsDefault)
	assert.Nil(t, custom.BaseKey)
	assert.Equal(t, 5, custom.Order)

	// замыкание: каждая непустая ссылка разрешается
	for _, m := range memos {
		if m.PrimaryCategory == "" {
			continue
		}
		_, ok := Resolve(cats, m.PrimaryCategory)
		assert.True(t, ok, "ссылка %q должна разрешаться", m.PrimaryCategory)
	}
}

func TestRebuild_DiscoveryOrder(t *testing.T) {
	memos := []model.Memo{
		model.NewMemo("1", "", "Zeta", nil),
		model.NewMemo("2", "", "Alpha", nil),
	}
	cats := Rebuild(memos, LangEN)
	require.Len(t, cats, 7)
	assert.Equal(t, "Zeta", cats[5].Name)
	assert.Equal(t, "Alpha", cats[6].Name)
}

func TestLocalizedName(t *testing.T) {
	name, ok := LocalizedName("other", LangZH)
	require.True(t, ok)
	assert.Equal(t, "其他", name)

	_, ok = LocalizedName("nope", LangEN)
	assert.False(t, ok)
}
