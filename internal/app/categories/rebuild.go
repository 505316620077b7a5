package categories

import (
	"github.com/google/uuid"

	"QuickMemo/internal/app/model"
)

// Rebuild восстанавливает набор категорий из содержимого мемо: набор
// предустановленных категорий плюс синтезированная категория для каждой
// строки, которая не сводится ни к одной предустановленной. После вызова
// каждая ссылка primaryCategory разрешается в существующую категорию.
// Если мемо нет вовсе, возвращается только предустановленный набор.
func Rebuild(memos []model.Memo, lang string) []model.Category {
	cats := DefaultSet(lang)
	if len(memos) == 0 {
		return cats
	}

	seen := make(map[string]struct{})
	for _, m := range memos {
		name := m.PrimaryCategory
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := Resolve(cats, name); ok {
			continue
		}
		// неизвестная строка — синтезируем пользовательскую категорию
		// в порядке обнаружения
		cats = append(cats, model.Category{
			ID:          uuid.New(),
			Name:        name,
			Icon:        "folder",
			Color:       "#8E8E93",
			Order:       len(cats),
			DefaultTags: []string{},
			IsDefault:   false,
			BaseKey:     nil,
			HiddenTags:  []string{},
		})
	}
	return cats
}
