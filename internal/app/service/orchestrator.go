package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"QuickMemo/internal/app/categories"
	"QuickMemo/internal/app/events"
	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/remote"
)

// Scanner — перенос данных из прежних расположений (идемпотентный).
type Scanner interface {
	Run() int
}

// BackupClient — операции с удалённым снапшотом.
type BackupClient interface {
	AccountAvailable(ctx context.Context) bool
	Push(ctx context.Context, memos []model.Memo, cats []model.Category) error
	Pull(ctx context.Context) ([]model.Memo, []model.Category, error)
}

// Entitlements — статус платного аккаунта, загружаемый асинхронно.
type Entitlements interface {
	IsEligible() bool
	AwaitLoadComplete(ctx context.Context) error
}

// Orchestrator — стартовая последовательность согласования: перенос,
// загрузка локальных данных, ожидание статуса покупки и затем выбор
// между удалённым восстановлением, локальным восстановлением набора
// категорий и посевом предустановленных. Любой отказ удалённой стороны
// деградирует в путь «бэкапа нет»: приложение обязано дойти до рабочего
// состояния хотя бы с каким-то набором категорий, в том числе офлайн.
type Orchestrator struct {
	scanner Scanner
	svc     *MemoService
	client  BackupClient
	ent     Entitlements
	bus     *events.Bus
	log     *zap.SugaredLogger
	lang    string

	// entWait ограничивает ожидание загрузки статуса покупки; 0 — без
	// ограничения. По истечении согласование продолжается так, как если
	// бы аккаунт был неправомочен.
	entWait time.Duration

	mu            sync.Mutex
	restoredCloud bool

	done     chan struct{}
	doneOnce sync.Once
}

func NewOrchestrator(
	scanner Scanner,
	svc *MemoService,
	client BackupClient,
	ent Entitlements,
	bus *events.Bus,
	lang string,
	entWait time.Duration,
	log *zap.SugaredLogger,
) *Orchestrator {
	return &Orchestrator{
		scanner: scanner,
		svc:     svc,
		client:  client,
		ent:     ent,
		bus:     bus,
		lang:    categories.NormalizeLang(lang),
		entWait: entWait,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Done — одноразовый сигнал завершения согласования. Закрывается ровно
// один раз за время жизни процесса и никогда не «открывается» обратно.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

// RestoreComplete сообщает, завершилось ли согласование.
func (o *Orchestrator) RestoreComplete() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// SyncEligible — можно ли этому процессу отправлять автобэкапы: аккаунт
// правомочен либо данные уже были приняты с удалённого хранилища.
func (o *Orchestrator) SyncEligible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.restoredCloud || o.ent.IsEligible()
}

// Run выполняет стартовое согласование. Возвращает ошибку только при
// отмене контекста: все остальные отказы поглощаются переходами
// состояния.
func (o *Orchestrator) Run(ctx context.Context) error {
	// 1. перенос из прежних расположений
	if n := o.scanner.Run(); n > 0 {
		o.log.Infow("legacy migration copied data", "collections", n)
	}

	// 2. локальные данные
	o.svc.LoadLocal()
	memoCount, catCount := o.svc.Counts()
	o.log.Infow("local data loaded", "memos", memoCount, "categories", catCount)

	// 3. решение о восстановлении зависит от правомочности аккаунта,
	// а она загружается асинхронно — ждём, иначе правомочный аккаунт
	// можно принять за неправомочный и пропустить легитимный restore
	eligible := o.awaitEntitlement(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// 4. ветвление по текущему локальному состоянию
	switch {
	case memoCount == 0 && catCount == 0:
		o.restoreOrSeed(ctx, eligible)
	case catCount == 0 && memoCount > 0:
		// локальный ремонт, не restore: удалённый вызов не делается
		o.log.Infow("categories missing with live memos, rebuilding locally")
		o.svc.SetCategories(categories.Rebuild(o.svc.Memos(), o.lang))
	default:
		o.log.Infow("local data intact, no reconciliation needed",
			"memos", memoCount, "categories", catCount)
	}

	// 5. одноразовый сигнал завершения
	o.doneOnce.Do(func() {
		close(o.done)
		if o.bus != nil {
			o.bus.Publish(events.RestoreCompleted)
		}
	})
	return nil
}

func (o *Orchestrator) awaitEntitlement(ctx context.Context) bool {
	waitCtx := ctx
	if o.entWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, o.entWait)
		defer cancel()
	}
	if err := o.ent.AwaitLoadComplete(waitCtx); err != nil {
		o.log.Warnw("entitlement load did not complete, proceeding as ineligible", "error", err)
		return false
	}
	return o.ent.IsEligible()
}

// restoreOrSeed — путь пустого локального хранилища: попытка забрать
// снапшот, при любом отказе — посев предустановленных категорий.
func (o *Orchestrator) restoreOrSeed(ctx context.Context, eligible bool) {
	if eligible && o.client.AccountAvailable(ctx) {
		memos, cats, err := o.client.Pull(ctx)
		switch {
		case err == nil && (len(memos) > 0 || len(cats) > 0):
			if len(cats) == 0 {
				// снапшот без категорий — восстанавливаем набор из мемо
				cats = categories.Rebuild(memos, o.lang)
			}
			o.svc.Adopt(memos, cats)
			o.mu.Lock()
			o.restoredCloud = true
			o.mu.Unlock()
			o.log.Infow("restored from cloud backup",
				"memos", len(memos), "categories", len(cats))
			return
		case errors.Is(err, remote.ErrNotFound):
			o.log.Infow("no cloud backup for this account")
		case err != nil:
			o.log.Warnw("cloud restore failed, falling back to defaults", "error", err)
		default:
			o.log.Infow("cloud backup is empty")
		}
	} else {
		o.log.Infow("cloud restore skipped",
			"eligible", eligible)
	}
	o.svc.SetCategories(categories.DefaultSet(o.lang))
	o.log.Infow("seeded default categories")
}
