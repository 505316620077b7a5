// Package service — владелец данных приложения и стартовое согласование.
package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"QuickMemo/internal/app/categories"
	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/store"
)

// MemoService — единственный владелец коллекций в памяти. Все мутации
// проходят через него и не перемешиваются; каждая мутация синхронно
// персистится в локальное хранилище.
type MemoService struct {
	mu    sync.Mutex
	store *store.Store
	log   *zap.SugaredLogger
	lang  string

	memos    []model.Memo
	cats     []model.Category
	archived []model.ArchivedMemo
}

func NewMemoService(st *store.Store, lang string, log *zap.SugaredLogger) *MemoService {
	return &MemoService{store: st, lang: categories.NormalizeLang(lang), log: log}
}

// LoadLocal загружает все три коллекции из локального хранилища.
func (s *MemoService) LoadLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos = s.store.LoadMemos()
	s.cats = s.store.LoadCategories()
	s.archived = s.store.LoadArchived()
}

// Counts возвращает размеры живых коллекций.
func (s *MemoService) Counts() (memos, cats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memos), len(s.cats)
}

// Memos возвращает копию живых мемо.
func (s *MemoService) Memos() []model.Memo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Memo(nil), s.memos...)
}

// Categories возвращает копию категорий.
func (s *MemoService) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Category(nil), s.cats...)
}

// Archived возвращает копию архива удалённых мемо.
func (s *MemoService) Archived() []model.ArchivedMemo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ArchivedMemo(nil), s.archived...)
}

// AddMemo создаёт мемо и сохраняет коллекцию.
func (s *MemoService) AddMemo(title, content, primaryCategory string, tags []string) model.Memo {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model.NewMemo(title, content, primaryCategory, tags)
	s.memos = append(s.memos, m)
	s.persistMemos()
	return m
}

// UpdateMemo заменяет мемо по ID, обновляя updatedAt. false — мемо нет.
func (s *MemoService) UpdateMemo(m model.Memo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.memos {
		if s.memos[i].ID == m.ID {
			m.CreatedAt = s.memos[i].CreatedAt
			m.Touch()
			s.memos[i] = m
			s.persistMemos()
			return true
		}
	}
	return false
}

// DeleteMemo переводит мемо в архив: живое мемо не уничтожается, а
// оборачивается моментом удаления. false — мемо нет.
func (s *MemoService) DeleteMemo(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.memos {
		if s.memos[i].ID == id {
			s.archived = append(s.archived, model.ArchivedMemo{
				Memo:      s.memos[i],
				DeletedAt: model.Now(),
			})
			s.memos = append(s.memos[:i], s.memos[i+1:]...)
			s.persistMemos()
			s.persistArchived()
			return true
		}
	}
	return false
}

// RestoreArchived возвращает мемо из архива в живую коллекцию со свежим
// updatedAt. false — в архиве нет такого мемо.
func (s *MemoService) RestoreArchived(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.archived {
		if s.archived[i].Memo.ID == id {
			m := s.archived[i].Memo
			m.Touch()
			s.memos = append(s.memos, m)
			s.archived = append(s.archived[:i], s.archived[i+1:]...)
			s.persistMemos()
			s.persistArchived()
			return true
		}
	}
	return false
}

// PurgeArchived окончательно удаляет мемо из архива.
func (s *MemoService) PurgeArchived(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.archived {
		if s.archived[i].Memo.ID == id {
			s.archived = append(s.archived[:i], s.archived[i+1:]...)
			s.persistArchived()
			return true
		}
	}
	return false
}

// AddCategory добавляет категорию. false — имя уже занято.
func (s *MemoService) AddCategory(c model.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cats {
		if existing.Name == c.Name {
			return false
		}
	}
	s.cats = append(s.cats, c)
	s.persistCategories()
	return true
}

// RenameCategory меняет имя категории. Отклоняется без ошибки для
// категории «Прочее» и при коллизии имён.
func (s *MemoService) RenameCategory(id uuid.UUID, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cats {
		// переименование в собственное текущее имя — не коллизия
		if existing.Name == newName && existing.ID != id {
			return false
		}
	}
	for i := range s.cats {
		if s.cats[i].ID == id {
			if s.cats[i].IsOther() {
				return false
			}
			oldName := s.cats[i].Name
			s.cats[i].Name = newName
			// ссылки мемо следуют за переименованием
			for j := range s.memos {
				if s.memos[j].PrimaryCategory == oldName {
					s.memos[j].PrimaryCategory = newName
				}
			}
			s.persistCategories()
			s.persistMemos()
			return true
		}
	}
	return false
}

// DeleteCategory удаляет категорию; её мемо переносятся в «Прочее».
// Категорию «Прочее» удалить нельзя.
func (s *MemoService) DeleteCategory(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var otherName string
	for _, c := range s.cats {
		if c.IsOther() {
			otherName = c.Name
		}
	}
	for i := range s.cats {
		if s.cats[i].ID == id {
			if s.cats[i].IsOther() {
				return false
			}
			removedName := s.cats[i].Name
			s.cats = append(s.cats[:i], s.cats[i+1:]...)
			if otherName != "" {
				for j := range s.memos {
					if s.memos[j].PrimaryCategory == removedName {
						s.memos[j].PrimaryCategory = otherName
					}
				}
			}
			s.persistCategories()
			s.persistMemos()
			return true
		}
	}
	return false
}

// HideTag скрывает тег для категории (нет ошибки при повторном скрытии).
func (s *MemoService) HideTag(id uuid.UUID, tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cats {
		if s.cats[i].ID == id {
			if !s.cats[i].HidesTag(tag) {
				s.cats[i].HiddenTags = append(s.cats[i].HiddenTags, tag)
				s.persistCategories()
			}
			return true
		}
	}
	return false
}

// Adopt принимает восстановленные с удалённого хранилища коллекции и
// персистит их как текущее состояние.
func (s *MemoService) Adopt(memos []model.Memo, cats []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos = memos
	s.cats = cats
	s.persistMemos()
	s.persistCategories()
}

// SetCategories заменяет набор категорий (результат восстановления
// набора или посева предустановленных).
func (s *MemoService) SetCategories(cats []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats = cats
	s.persistCategories()
}

// RepairCategories — явное «восстановить категории» по запросу
// пользователя: набор перестраивается из текущих мемо.
func (s *MemoService) RepairCategories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats = categories.Rebuild(s.memos, s.lang)
	s.persistCategories()
	return append([]model.Category(nil), s.cats...)
}

// AllTags возвращает отсортированное множество тегов всех живых мемо.
func (s *MemoService) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var res []string
	for _, m := range s.memos {
		for _, t := range m.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				res = append(res, t)
			}
		}
	}
	sort.Strings(res)
	return res
}

func (s *MemoService) persistMemos() {
	if err := s.store.SaveMemos(s.memos); err != nil {
		s.log.Errorw("failed to persist memos", "error", err)
	}
}

func (s *MemoService) persistCategories() {
	if err := s.store.SaveCategories(s.cats); err != nil {
		s.log.Errorw("failed to persist categories", "error", err)
	}
}

func (s *MemoService) persistArchived() {
	if err := s.store.SaveArchived(s.archived); err != nil {
		s.log.Errorw("failed to persist archived memos", "error", err)
	}
}
