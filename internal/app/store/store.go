// Package store — локальное key/value-хранилище коллекций поверх SQLite.
// Записи синхронные и немедленно долговечные; атомарность одного значения
// даёт сама БД. Ошибки декодирования не фатальны: пустой результат
// обрабатывается согласованием уровнем выше, а пробросить ошибку некому.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"QuickMemo/internal/app/events"
	"QuickMemo/internal/app/model"
)

const dbFileName = "quickmemo.sqlite"

// Store — хранилище коллекций текущего пользователя.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
	bus *events.Bus
}

// Open открывает (и при необходимости создаёт) файл БД в каталоге dir.
// Вторым значением возвращается путь к БД.
func Open(dir string, log *zap.SugaredLogger, bus *events.Bus) (*Store, string, error) {
	if dir == "" {
		return nil, "", errors.New("empty data dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	s := &Store{db: db, log: log, bus: bus}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return s, dbPath, nil
}

// OpenShared открывает хранилище в общем контейнере, а при его
// недоступности — в локальном каталоге процесса. Данные, оставшиеся в
// локальном каталоге, позже подберёт сканер старых расположений.
func OpenShared(sharedDir, localDir string, log *zap.SugaredLogger, bus *events.Bus) (*Store, string, error) {
	if sharedDir != "" {
		s, path, err := Open(sharedDir, log, bus)
		if err == nil {
			return s, path, nil
		}
		log.Infow("shared container unavailable, falling back to local dir",
			"shared", sharedDir, "error", err)
	}
	return Open(localDir, log, bus)
}

// Close закрывает соединение с БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`
	_, err := s.db.Exec(ddl)
	return err
}

// GetRaw возвращает байты по ключу; (nil, nil), если ключа нет.
func (s *Store) GetRaw(key string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// PutRaw записывает байты по ключу (полная замена значения).
func (s *Store) PutRaw(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv(key, value) VALUES(?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Has сообщает, есть ли по ключу непустые данные.
func (s *Store) Has(key string) (bool, error) {
	b, err := s.GetRaw(key)
	if err != nil {
		return false, err
	}
	return len(b) > 0, nil
}

func (s *Store) notifyChanged() {
	if s.bus != nil {
		s.bus.Publish(events.StorageChanged)
	}
}

// LoadMemos загружает живые мемо. Отсутствие данных и ошибки
// декодирования дают пустой результат.
func (s *Store) LoadMemos() []model.Memo {
	b, err := s.GetRaw(KeyMemos)
	if err != nil || len(b) == 0 {
		return nil
	}
	memos, err := model.DecodeMemos(b)
	if err != nil {
		s.log.Warnw("memos blob is corrupt, treating as empty", "error", err)
		return nil
	}
	return memos
}

// SaveMemos сохраняет живые мемо и уведомляет подписчиков хранилища.
func (s *Store) SaveMemos(memos []model.Memo) error {
	b, err := model.EncodeMemos(memos)
	if err != nil {
		return err
	}
	if err := s.PutRaw(KeyMemos, b); err != nil {
		return err
	}
	s.notifyChanged()
	return nil
}

// LoadCategories загружает категории. Если основной ключ пуст или не
// декодируется, читается теневая копия; при успехе основной ключ тут же
// восстанавливается из неё.
func (s *Store) LoadCategories() []model.Category {
	if cats, ok := s.decodeCategories(KeyCategories); ok {
		return cats
	}
	b, err := s.GetRaw(KeyCategoriesBackup)
	if err != nil || len(b) == 0 {
		return nil
	}
	cats, err := model.DecodeCategories(b)
	if err != nil {
		s.log.Warnw("categories backup blob is corrupt too", "error", err)
		return nil
	}
	// самовосстановление основного ключа
	if err := s.PutRaw(KeyCategories, b); err != nil {
		s.log.Warnw("failed to heal primary categories key", "error", err)
	}
	s.log.Infow("categories restored from backup key", "count", len(cats))
	return cats
}

func (s *Store) decodeCategories(key string) ([]model.Category, bool) {
	b, err := s.GetRaw(key)
	if err != nil || len(b) == 0 {
		return nil, false
	}
	cats, err := model.DecodeCategories(b)
	if err != nil {
		s.log.Warnw("categories blob is corrupt", "key", key, "error", err)
		return nil, false
	}
	return cats, true
}

// SaveCategories сохраняет категории под основным и теневым ключами.
func (s *Store) SaveCategories(cats []model.Category) error {
	b, err := model.EncodeCategories(cats)
	if err != nil {
		return err
	}
	if err := s.PutRaw(KeyCategories, b); err != nil {
		return err
	}
	if err := s.PutRaw(KeyCategoriesBackup, b); err != nil {
		return err
	}
	s.notifyChanged()
	return nil
}

// LoadArchived загружает архив удалённых мемо.
func (s *Store) LoadArchived() []model.ArchivedMemo {
	b, err := s.GetRaw(KeyArchivedMemos)
	if err != nil || len(b) == 0 {
		return nil
	}
	items, err := model.DecodeArchived(b)
	if err != nil {
		s.log.Warnw("archived memos blob is corrupt, treating as empty", "error", err)
		return nil
	}
	return items
}

// SaveArchived сохраняет архив удалённых мемо.
func (s *Store) SaveArchived(items []model.ArchivedMemo) error {
	b, err := model.EncodeArchived(items)
	if err != nil {
		return err
	}
	if err := s.PutRaw(KeyArchivedMemos, b); err != nil {
		return err
	}
	s.notifyChanged()
	return nil
}

// MigrationComplete — персистентный флаг однократности сканера.
func (s *Store) MigrationComplete() bool {
	b, err := s.GetRaw(KeyMigrationComplete)
	return err == nil && string(b) == "1"
}

// SetMigrationComplete помечает перенос данных завершённым.
func (s *Store) SetMigrationComplete() error {
	return s.PutRaw(KeyMigrationComplete, []byte("1"))
}

// LastBackupAt возвращает момент последнего успешного бэкапа.
func (s *Store) LastBackupAt() (model.Timestamp, bool) {
	b, err := s.GetRaw(KeyLastBackupTimestamp)
	if err != nil || len(b) == 0 {
		return model.Timestamp{}, false
	}
	sec, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return model.Timestamp{}, false
	}
	return model.FromUnix(sec), true
}

// SetLastBackupAt фиксирует момент успешного бэкапа.
func (s *Store) SetLastBackupAt(ts model.Timestamp) error {
	return s.PutRaw(KeyLastBackupTimestamp, []byte(strconv.FormatInt(ts.Unix(), 10)))
}

// WidgetCategory — выбранная для виджета категория (читается расширением).
func (s *Store) WidgetCategory() string {
	b, err := s.GetRaw(KeyWidgetCategory)
	if err != nil {
		return ""
	}
	return string(b)
}

// SetWidgetCategory сохраняет выбор категории для виджета.
func (s *Store) SetWidgetCategory(name string) error {
	if err := s.PutRaw(KeyWidgetCategory, []byte(name)); err != nil {
		return err
	}
	s.notifyChanged()
	return nil
}

// IsPurchased — локально закешированный статус покупки.
func (s *Store) IsPurchased() bool {
	b, err := s.GetRaw(KeyIsPurchased)
	return err == nil && string(b) == "1"
}

// SetIsPurchased кеширует статус покупки.
func (s *Store) SetIsPurchased(v bool) error {
	val := "0"
	if v {
		val = "1"
	}
	return s.PutRaw(KeyIsPurchased, []byte(val))
}
