// Package categories — предустановленный набор категорий и восстановление
// набора из содержимого мемо.
package categories

import (
	"github.com/google/uuid"

	"QuickMemo/internal/app/model"
)

// Поддерживаемые языки отображаемых имён.
const (
	LangJA = "ja"
	LangEN = "en"
	LangZH = "zh"
)

type config struct {
	baseKey string
	icon    string
	color   string
	// names — отображаемое имя по языку
	names map[string]string
	// variants — все имена, под которыми категория встречалась в прежних
	// версиях и локалях; по ним строка из мемо сводится к baseKey
	variants []string
	tags     map[string][]string
}

// defaultConfigs — фиксированный список в стабильном порядке. Последним
// всегда идёт защищённый "other".
var defaultConfigs = []config{
	{
		baseKey: "work", icon: "briefcase", color: "#007AFF",
		names:    map[string]string{LangJA: "仕事", LangEN: "Work", LangZH: "工作"},
		variants: []string{"仕事", "Work", "work", "工作"},
		tags: map[string][]string{
			LangJA: {"会議", "タスク", "締切", "アイデア"},
			LangEN: {"Meeting", "Task", "Deadline", "Idea"},
			LangZH: {"会议", "任务", "截止", "灵感"},
		},
	},
	{
		baseKey: "personal", icon: "house", color: "#FF6B35",
		names:    map[string]string{LangJA: "プライベート", LangEN: "Personal", LangZH: "私人"},
		variants: []string{"プライベート", "Private", "Personal", "私人", "个人", "personal"},
		tags: map[string][]string{
			LangJA: {"予定", "思い出", "健康"},
			LangEN: {"Schedule", "Memories", "Health"},
			LangZH: {"日程", "回忆", "健康"},
		},
	},
	{
		baseKey: "idea", icon: "lightbulb", color: "#34C759",
		names:    map[string]string{LangJA: "アイデア", LangEN: "Ideas", LangZH: "想法"},
		variants: []string{"アイデア", "Ideas", "Idea", "ideas", "idea", "想法"},
		tags: map[string][]string{
			LangJA: {"ビジネス", "創作", "改善", "メモ"},
			LangEN: {"Business", "Creation", "Improvements", "Memo"},
			LangZH: {"商务", "创意", "改进", "备忘"},
		},
	},
	{
		baseKey: "people", icon: "person", color: "#AF52DE",
		names:    map[string]string{LangJA: "人物", LangEN: "People", LangZH: "人物"},
		variants: []string{"人物", "People", "people"},
		tags: map[string][]string{
			LangJA: {"連絡先", "会話", "約束", "関係"},
			LangEN: {"Contacts", "Conversation", "Appointment", "Relationship"},
			LangZH: {"联系人", "交流", "约定", "关系"},
		},
	},
	{
		baseKey: model.BaseKeyOther, icon: "folder", color: "#8E8E93",
		names:    map[string]string{LangJA: "その他", LangEN: "Other", LangZH: "其他"},
		variants: []string{"その他", "Other", "other", "其他"},
		tags: map[string][]string{
			LangJA: {"雑記", "一時", "分類待ち", "保留"},
			LangEN: {"Misc", "Temporary", "Pending", "On Hold"},
			LangZH: {"杂记", "临时", "待处理", "搁置"},
		},
	},
}

// NormalizeLang сводит идентификатор локали к поддерживаемому языку.
func NormalizeLang(lang string) string {
	switch {
	case len(lang) >= 2 && lang[:2] == "ja":
		return LangJA
	case len(lang) >= 2 && lang[:2] == "zh":
		return LangZH
	default:
		return LangEN
	}
}

// DefaultSet возвращает фиксированный набор предустановленных категорий
// с именами на языке lang. Идентификаторы генерируются заново: идентичность
// предустановленной категории несёт baseKey, а не UUID.
func DefaultSet(lang string) []model.Category {
	lang = NormalizeLang(lang)
	res := make([]model.Category, 0, len(defaultConfigs))
	for i, c := range defaultConfigs {
		key := c.baseKey
		res = append(res, model.Category{
			ID:          uuid.New(),
			Name:        c.names[lang],
			Icon:        c.icon,
			Color:       c.color,
			Order:       i,
			DefaultTags: append([]string(nil), c.tags[lang]...),
			IsDefault:   true,
			BaseKey:     &key,
			HiddenTags:  []string{},
		})
	}
	return res
}

// BaseKeyForName сводит отображаемое имя (в любой поддерживаемой локали)
// к baseKey предустановленной категории.
func BaseKeyForName(name string) (string, bool) {
	for _, c := range defaultConfigs {
		if c.baseKey == name {
			return c.baseKey, true
		}
		for _, v := range c.variants {
			if v == name {
				return c.baseKey, true
			}
		}
	}
	return "", false
}

// LocalizedName возвращает имя предустановленной категории на языке lang.
func LocalizedName(baseKey, lang string) (string, bool) {
	lang = NormalizeLang(lang)
	for _, c := range defaultConfigs {
		if c.baseKey == baseKey {
			return c.names[lang], true
		}
	}
	return "", false
}

// Resolve находит категорию для строки из мемо: сначала точное совпадение
// имени, затем сведение к baseKey через варианты прежних локалей.
func Resolve(cats []model.Category, name string) (model.Category, bool) {
	for _, c := range cats {
		if c.Name == name {
			return c, true
		}
	}
	if key, ok := BaseKeyForName(name); ok {
		for _, c := range cats {
			if c.BaseKey != nil && *c.BaseKey == key {
				return c, true
			}
		}
	}
	return model.Category{}, false
}
