// Package entitlement — статус платного аккаунта. Статус загружается
// асинхронно (локальный кеш плюс удалённая запись о покупке); готовность
// публикуется одноразовым сигналом, который согласование ждёт до принятия
// решения о восстановлении.
package entitlement

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"QuickMemo/internal/app/events"
	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/remote"
	"QuickMemo/internal/app/store"
)

// StatusSource — удалённая запись о покупке.
type StatusSource interface {
	AccountAvailable(ctx context.Context) bool
	FetchSubscription(ctx context.Context) (model.SubscriptionStatus, error)
	PushSubscription(ctx context.Context, st model.SubscriptionStatus) error
}

// Manager владеет статусом покупки на время жизни процесса.
type Manager struct {
	store  *store.Store
	remote StatusSource
	bus    *events.Bus
	log    *zap.SugaredLogger

	mu       sync.Mutex
	eligible bool

	ready     chan struct{}
	readyOnce sync.Once
}

func NewManager(st *store.Store, src StatusSource, bus *events.Bus, log *zap.SugaredLogger) *Manager {
	return &Manager{
		store:  st,
		remote: src,
		bus:    bus,
		log:    log,
		ready:  make(chan struct{}),
	}
}

// Load определяет статус: локальный кеш, затем сверка с удалённой
// записью. Вызывается в отдельной горутине на старте; по завершении
// закрывает сигнал готовности ровно один раз. Ошибки удалённой стороны
// не мешают определению: локальное значение остаётся в силе.
func (m *Manager) Load(ctx context.Context) {
	defer m.markReady()

	local := m.store.IsPurchased()
	m.setEligible(local, false)

	if m.remote == nil || !m.remote.AccountAvailable(ctx) {
		m.log.Infow("entitlement loaded from local cache only", "eligible", local)
		return
	}

	st, err := m.remote.FetchSubscription(ctx)
	switch {
	case err == nil && st.IsPro:
		// удалённая запись подтверждает Pro — обновляем локальный кеш
		m.setEligible(true, true)
		if err := m.store.SetIsPurchased(true); err != nil {
			m.log.Warnw("failed to cache purchase status", "error", err)
		}
	case errors.Is(err, remote.ErrNotFound) && local:
		// локально Pro, записи на аккаунте нет — публикуем её
		if err := m.remote.PushSubscription(ctx, model.SubscriptionStatus{
			IsPro:       true,
			LastUpdated: model.Now(),
		}); err != nil {
			m.log.Warnw("failed to publish purchase status", "error", err)
		}
	case err != nil && !errors.Is(err, remote.ErrNotFound):
		m.log.Warnw("failed to fetch purchase status, keeping local", "error", err)
	}
	m.log.Infow("entitlement loaded", "eligible", m.IsEligible())
}

// IsEligible сообщает, имеет ли аккаунт право на облачную синхронизацию.
func (m *Manager) IsEligible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eligible
}

// AwaitLoadComplete блокирует до первого определения статуса или отмены
// контекста.
func (m *Manager) AwaitLoadComplete(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Upgrade фиксирует покупку: персистит статус и уведомляет подписчиков.
func (m *Manager) Upgrade(ctx context.Context) {
	m.setEligible(true, true)
	if err := m.store.SetIsPurchased(true); err != nil {
		m.log.Warnw("failed to cache purchase status", "error", err)
	}
	if m.remote != nil && m.remote.AccountAvailable(ctx) {
		if err := m.remote.PushSubscription(ctx, model.SubscriptionStatus{
			IsPro:       true,
			LastUpdated: model.Now(),
		}); err != nil {
			m.log.Warnw("failed to publish purchase status", "error", err)
		}
	}
	m.markReady()
}

func (m *Manager) setEligible(v, notify bool) {
	m.mu.Lock()
	upgraded := v && !m.eligible
	m.eligible = v
	m.mu.Unlock()
	if notify && upgraded && m.bus != nil {
		m.bus.Publish(events.EntitlementUpgraded)
	}
}

func (m *Manager) markReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}
