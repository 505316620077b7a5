package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DefaultDurationMinutes — длительность по умолчанию при проекции мемо
// в календарное событие.
const DefaultDurationMinutes = 30

// Memo — основная запись пользователя. Идентификатор стабилен между
// устройствами.
type Memo struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	PrimaryCategory string    `json:"primaryCategory"`
	Tags            []string  `json:"tags"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
	CalendarEventID string    `json:"calendarEventId,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
}

// NewMemo создаёт мемо с новым ID и выставленными таймстемпами.
func NewMemo(title, content, primaryCategory string, tags []string) Memo {
	now := Now()
	return Memo{
		ID:              uuid.New(),
		Title:           title,
		Content:         content,
		PrimaryCategory: primaryCategory,
		Tags:            dedupeTags(tags),
		CreatedAt:       now,
		UpdatedAt:       now,
		DurationMinutes: DefaultDurationMinutes,
	}
}

// Touch обновляет updatedAt, сохраняя инвариант updatedAt >= createdAt.
func (m *Memo) Touch() {
	now := Now()
	if now.Before(m.CreatedAt.Time) {
		now = m.CreatedAt
	}
	m.UpdatedAt = now
}

// UnmarshalJSON декодирует мемо, подставляя значения по умолчанию для
// полей, отсутствующих в байтах старых версий: пустой заголовок и
// 30-минутная длительность. Дубликаты тегов схлопываются.
func (m *Memo) UnmarshalJSON(b []byte) error {
	type alias Memo
	aux := struct {
		*alias
		DurationMinutes *int `json:"durationMinutes"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.DurationMinutes != nil {
		m.DurationMinutes = *aux.DurationMinutes
	} else {
		m.DurationMinutes = DefaultDurationMinutes
	}
	m.Tags = dedupeTags(m.Tags)
	if m.UpdatedAt.Before(m.CreatedAt.Time) {
		m.UpdatedAt = m.CreatedAt
	}
	return nil
}

// ArchivedMemo — удалённое мемо с моментом удаления. Создаётся ровно один
// раз при удалении; может быть восстановлено или вычищено.
type ArchivedMemo struct {
	Memo      Memo      `json:"memo"`
	DeletedAt Timestamp `json:"deletedAt"`
}

// dedupeTags убирает дубликаты, сохраняя порядок первого вхождения.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	res := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	return res
}

// EncodeMemos сериализует коллекцию мемо в канонический вид хранилища.
func EncodeMemos(memos []Memo) ([]byte, error) {
	return json.Marshal(memos)
}

// DecodeMemos разбирает коллекцию мемо.
func DecodeMemos(b []byte) ([]Memo, error) {
	var memos []Memo
	if err := json.Unmarshal(b, &memos); err != nil {
		return nil, err
	}
	return memos, nil
}

// EncodeArchived сериализует архив удалённых мемо.
func EncodeArchived(items []ArchivedMemo) ([]byte, error) {
	return json.Marshal(items)
}

// DecodeArchived разбирает архив удалённых мемо.
func DecodeArchived(b []byte) ([]ArchivedMemo, error) {
	var items []ArchivedMemo
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}
