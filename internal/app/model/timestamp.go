package model

import (
	"strconv"
	"time"
)

// Timestamp — момент времени с точностью до секунды.
// Сериализуется как Unix-секунды (основная конвенция хранилища).
// При декодировании стратегии пробуются в фиксированном порядке:
// сначала число (Unix-секунды), затем строка RFC3339 — снапшоты,
// записанные старыми версиями приложения, использовали ISO-8601.
type Timestamp struct {
	time.Time
}

// Now возвращает текущее время, усечённое до секунды, в UTC.
func Now() Timestamp {
	return FromUnix(time.Now().Unix())
}

// FromUnix строит Timestamp из Unix-секунд.
func FromUnix(sec int64) Timestamp {
	return Timestamp{time.Unix(sec, 0).UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	// стратегия 1: число
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = FromUnix(sec)
		return nil
	}
	// стратегия 2: строка RFC3339
	unq, err := strconv.Unquote(s)
	if err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, unq)
	if err != nil {
		return err
	}
	*t = FromUnix(parsed.Unix())
	return nil
}
