package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// BaseKeyOther — стабильный ключ категории «Прочее». Ровно одна категория
// несёт этот ключ; её имя нельзя менять, её нельзя удалить.
const BaseKeyOther = "other"

// Category — категория мемо. BaseKey задан только у предустановленных
// категорий: это языконезависимый идентификатор, который позволяет
// перелокализовать отображаемое имя, не теряя идентичность.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Order       int       `json:"order"`
	DefaultTags []string  `json:"defaultTags"`
	IsDefault   bool      `json:"isDefault"`
	BaseKey     *string   `json:"baseKey,omitempty"`
	HiddenTags  []string  `json:"hiddenTags"`
}

// IsOther сообщает, что это защищённая категория «Прочее».
func (c Category) IsOther() bool {
	return c.BaseKey != nil && *c.BaseKey == BaseKeyOther
}

// UnmarshalJSON нормализует категорию: байты старых версий не содержали
// isDefault/baseKey/hiddenTags — такие поля получают нулевые значения,
// скрытые теги схлопываются как множество.
func (c *Category) UnmarshalJSON(b []byte) error {
	type alias Category
	if err := json.Unmarshal(b, (*alias)(c)); err != nil {
		return err
	}
	c.HiddenTags = dedupeTags(c.HiddenTags)
	if c.DefaultTags == nil {
		c.DefaultTags = []string{}
	}
	return nil
}

// HidesTag проверяет, скрыт ли тег для этой категории.
func (c Category) HidesTag(tag string) bool {
	for _, t := range c.HiddenTags {
		if t == tag {
			return true
		}
	}
	return false
}

// EncodeCategories сериализует коллекцию категорий.
func EncodeCategories(cats []Category) ([]byte, error) {
	return json.Marshal(cats)
}

// DecodeCategories разбирает коллекцию категорий.
func DecodeCategories(b []byte) ([]Category, error) {
	var cats []Category
	if err := json.Unmarshal(b, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
