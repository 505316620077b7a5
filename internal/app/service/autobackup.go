package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"QuickMemo/internal/app/events"
	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/store"
)

// Gate — условия допуска автобэкапа, которыми владеет согласование.
type Gate interface {
	RestoreComplete() bool
	SyncEligible() bool
}

// AutoBackup периодически отправляет текущее локальное состояние в
// удалённое хранилище. Срабатывает на уходе приложения в фон и на
// апгрейде аккаунта. Нарушенное предусловие — тихий no-op: push до
// завершения восстановления затёр бы хороший снапшот пустым локальным
// состоянием, а пустые коллекции защищать нечем.
type AutoBackup struct {
	svc      *MemoService
	client   BackupClient
	gate     Gate
	store    *store.Store
	cooldown time.Duration
	log      *zap.SugaredLogger

	now func() time.Time // подменяется в тестах
}

func NewAutoBackup(svc *MemoService, client BackupClient, gate Gate, st *store.Store, cooldown time.Duration, log *zap.SugaredLogger) *AutoBackup {
	return &AutoBackup{
		svc:      svc,
		client:   client,
		gate:     gate,
		store:    st,
		cooldown: cooldown,
		log:      log,
		now:      time.Now,
	}
}

// Run слушает события-триггеры до отмены контекста.
func (a *AutoBackup) Run(ctx context.Context, bus *events.Bus) {
	backgrounded := bus.Subscribe(events.AppBackgrounded)
	upgraded := bus.Subscribe(events.EntitlementUpgraded)
	for {
		select {
		case <-ctx.Done():
			return
		case <-backgrounded:
			a.MaybePush(ctx)
		case <-upgraded:
			a.MaybePush(ctx)
		}
	}
}

// MaybePush выполняет push, если выполнены все предусловия. Возвращает
// true, только если push реально состоялся и завершился успешно.
func (a *AutoBackup) MaybePush(ctx context.Context) bool {
	if !a.gate.RestoreComplete() {
		return false
	}
	if !a.gate.SyncEligible() {
		return false
	}
	memoCount, catCount := a.svc.Counts()
	if memoCount == 0 && catCount == 0 {
		return false
	}
	if last, ok := a.store.LastBackupAt(); ok {
		if a.now().Sub(last.Time) < a.cooldown {
			return false
		}
	}

	if err := a.client.Push(ctx, a.svc.Memos(), a.svc.Categories()); err != nil {
		// прерванный push безопасен: upsert идемпотентен, повтор
		// произойдёт на следующем подходящем переходе в фон
		a.log.Warnw("auto backup push failed", "error", err)
		return false
	}
	if err := a.store.SetLastBackupAt(model.Now()); err != nil {
		a.log.Warnw("failed to persist last backup timestamp", "error", err)
	}
	a.log.Infow("auto backup pushed", "memos", memoCount, "categories", catCount)
	return true
}
