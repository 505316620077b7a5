// Package migration — однократный перенос данных из прежних расположений.
// Сканер запускается на старте, до загрузки локальных данных, и охраняется
// персистентным флагом: повторные запуски с тем же исходным состоянием не
// выполняют ни одной записи.
package migration

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/store"
)

// Source — одно прежнее расположение данных.
type Source interface {
	// Name — имя расположения для логов.
	Name() string
	// ReadRaw возвращает сырые байты коллекции; (nil, nil), если данных нет.
	ReadRaw(key string) ([]byte, error)
}

// Scanner пробует все известные прежние расположения и переносит
// пригодные данные вперёд ровно один раз.
type Scanner struct {
	dst     *store.Store
	sources []Source
	log     *zap.SugaredLogger
}

func NewScanner(dst *store.Store, sources []Source, log *zap.SugaredLogger) *Scanner {
	return &Scanner{dst: dst, sources: sources, log: log}
}

// Run выполняет сканирование. Возвращает число перенесённых коллекций.
// Нечитаемый или неразбираемый источник пропускается молча и никогда не
// блокирует старт. Флаг выставляется только если хоть что-то перенесено:
// иначе сканирование повторится на следующем запуске — расположение могло
// стать доступным позже (например, после выдачи прав).
func (s *Scanner) Run() int {
	if s.dst.MigrationComplete() {
		return 0
	}

	copied := 0
	for _, key := range store.CollectionKeys() {
		// новое расположение уже содержит данные — не затираем
		if has, err := s.dst.Has(key); err != nil || has {
			continue
		}
		for _, src := range s.sources {
			raw, err := src.ReadRaw(key)
			if err != nil {
				s.log.Debugw("legacy source unreadable, skipping",
					"source", src.Name(), "key", key, "error", err)
				continue
			}
			if len(raw) == 0 {
				continue
			}
			if !decodesNonEmpty(key, raw) {
				s.log.Debugw("legacy bytes do not decode as current schema, skipping",
					"source", src.Name(), "key", key)
				continue
			}
			// байты копируются как есть, без перекодирования: повторная
			// сериализация маскировала бы ошибки декодера
			if err := s.dst.PutRaw(key, raw); err != nil {
				s.log.Warnw("failed to copy legacy data forward",
					"source", src.Name(), "key", key, "error", err)
				continue
			}
			s.log.Infow("migrated legacy data", "source", src.Name(), "key", key)
			copied++
			break
		}
	}

	if copied > 0 {
		if err := s.dst.SetMigrationComplete(); err != nil {
			s.log.Warnw("failed to persist migration flag", "error", err)
		}
	}
	return copied
}

// decodesNonEmpty проверяет, что байты разбираются текущей схемой и
// коллекция не пуста.
func decodesNonEmpty(key string, raw []byte) bool {
	switch key {
	case store.KeyMemos:
		memos, err := model.DecodeMemos(raw)
		return err == nil && len(memos) > 0
	case store.KeyCategories:
		cats, err := model.DecodeCategories(raw)
		return err == nil && len(cats) > 0
	case store.KeyArchivedMemos:
		items, err := model.DecodeArchived(raw)
		return err == nil && len(items) > 0
	}
	return false
}

// FileSource — плоские JSON-файлы дозамены хранилища на SQLite:
// quickmemo_<key>.json в каталоге старой версии.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (f *FileSource) Name() string { return "legacy-files:" + f.dir }

func (f *FileSource) ReadRaw(key string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(f.dir, "quickmemo_"+key+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// StoreSource — kv-база, оставшаяся в локальном каталоге процесса с тех
// запусков, когда общий контейнер был недоступен.
type StoreSource struct {
	dir string
}

func NewStoreSource(dir string) *StoreSource {
	return &StoreSource{dir: dir}
}

func (s *StoreSource) Name() string { return "legacy-store:" + s.dir }

func (s *StoreSource) ReadRaw(key string) ([]byte, error) {
	dbPath := filepath.Join(s.dir, "quickmemo.sqlite")
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	var b []byte
	err = db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
