// Package events — типизированная шина событий процесса. Заменяет
// широковещательные нотификации по строковым именам: подписчик получает
// канал конкретного типа события.
package events

import "sync"

// Event — тип внутрипроцессного события.
type Event int

const (
	// StorageChanged — успешная запись в локальное хранилище; виджет и
	// UI перечитывают данные.
	StorageChanged Event = iota
	// RestoreCompleted — согласование на старте завершено (однократно).
	RestoreCompleted
	// EntitlementUpgraded — аккаунт стал Pro (покупка или восстановление).
	EntitlementUpgraded
	// AppBackgrounded — приложение ушло в фон.
	AppBackgrounded
)

// Bus рассылает события подписчикам. Отправка неблокирующая: медленный
// подписчик теряет повторные уведомления, а не стопорит владельца данных.
type Bus struct {
	mu   sync.Mutex
	subs map[Event][]chan struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Event][]chan struct{})}
}

// Subscribe возвращает канал, в который будет приходить сигнал о каждом
// событии ev. Канал буферизован на один элемент.
func (b *Bus) Subscribe(ev Event) <-chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ev] = append(b.subs[ev], ch)
	b.mu.Unlock()
	return ch
}

// Publish уведомляет всех подписчиков события ev.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := b.subs[ev]
	b.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
			// у подписчика уже есть непрочитанный сигнал
		}
	}
}
