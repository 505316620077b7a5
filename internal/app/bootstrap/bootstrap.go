package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"QuickMemo/internal/app/entitlement"
	"QuickMemo/internal/app/events"
	"QuickMemo/internal/app/migration"
	"QuickMemo/internal/app/remote"
	"QuickMemo/internal/app/service"
	"QuickMemo/internal/app/store"
	"QuickMemo/internal/config"
)

// Env — собранное клиентское окружение: хранилище, сервисы и удалённый
// клиент, связанные общей шиной событий.
type Env struct {
	Cfg     *config.Config
	Log     *zap.SugaredLogger
	Bus     *events.Bus
	Store   *store.Store
	Service *service.MemoService
	Client  *remote.Client
	Ent     *entitlement.Manager
	Orch    *service.Orchestrator
	Backup  *service.AutoBackup
}

// OpenEnv открывает хранилище и связывает все клиентские компоненты.
// cleanup необходимо вызвать после окончания работы, чтобы закрыть БД.
func OpenEnv(cfg *config.Config, log *zap.SugaredLogger) (*Env, func() error, error) {
	bus := events.NewBus()

	st, dbPath, err := store.OpenShared(cfg.SharedDataDir, cfg.LocalDataDir, log, bus)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	log.Infow("store opened", "path", dbPath)

	deviceID, err := remote.DeviceID(cfg.TokenFile + ".device")
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("device identity: %w", err)
	}

	client := remote.NewClient(cfg.ServerURL, remote.TokenFile{Path: cfg.TokenFile}, deviceID, cfg.AppVersion, log)

	svc := service.NewMemoService(st, cfg.Lang, log)
	ent := entitlement.NewManager(st, client, bus, log)

	scanner := migration.NewScanner(st, []migration.Source{
		migration.NewFileSource(cfg.LegacyDataDir),
		migration.NewStoreSource(cfg.LocalDataDir),
	}, log)

	orch := service.NewOrchestrator(
		scanner, svc, client, ent, bus, cfg.Lang,
		time.Duration(cfg.EntitlementWaitSec)*time.Second, log,
	)

	backup := service.NewAutoBackup(
		svc, client, orch, st,
		time.Duration(cfg.BackupCooldownSec)*time.Second, log,
	)

	env := &Env{
		Cfg:     cfg,
		Log:     log,
		Bus:     bus,
		Store:   st,
		Service: svc,
		Client:  client,
		Ent:     ent,
		Orch:    orch,
		Backup:  backup,
	}
	cleanup := func() error { return st.Close() }
	return env, cleanup, nil
}

// Start выполняет стартовую последовательность приложения: загрузка
// статуса покупки в фоне и согласование данных до готовности.
func (e *Env) Start(ctx context.Context) error {
	go e.Ent.Load(ctx)
	go e.Backup.Run(ctx, e.Bus)
	return e.Orch.Run(ctx)
}

// Shutdown — уход приложения «в фон»: одна попытка автобэкапа.
func (e *Env) Shutdown(ctx context.Context) {
	if e.Backup.MaybePush(ctx) {
		e.Log.Infow("auto backup pushed on shutdown")
	}
}
