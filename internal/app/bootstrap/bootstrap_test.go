package bootstrap

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"QuickMemo/internal/app/remote"
	"QuickMemo/internal/config"
	"QuickMemo/internal/handlers"
	"QuickMemo/internal/repo"
	"QuickMemo/internal/service"
)

func newBackupServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret", BackupMaxSizeMB: 10}
	logger := zap.NewNop().Sugar()

	db, err := repo.InitDB(filepath.Join(t.TempDir(), "server.sqlite"))
	require.NoError(t, err)

	h := handlers.NewHandler(
		service.NewUserService(repo.NewUserRepository(db)),
		service.NewBackupService(repo.NewBackupRepository(db), logger),
		logger, cfg,
	)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return srv
}

func deviceConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerURL:          serverURL,
		LocalDataDir:       filepath.Join(dir, "local"),
		LegacyDataDir:      filepath.Join(dir, "legacy"),
		TokenFile:          filepath.Join(dir, "auth_token"),
		AppVersion:         "1.0",
		Lang:               "en",
		EntitlementWaitSec: 1,
		BackupCooldownSec:  3600,
	}
}

func login(t *testing.T, cfg *config.Config, register bool, loginName string) {
	t.Helper()
	deviceID, err := remote.DeviceID(cfg.TokenFile + ".device")
	require.NoError(t, err)
	c := remote.NewClient(cfg.ServerURL, remote.TokenFile{Path: cfg.TokenFile}, deviceID, cfg.AppVersion, zap.NewNop().Sugar())
	if register {
		require.NoError(t, c.Register(context.Background(), loginName, "secret"))
	} else {
		require.NoError(t, c.Login(context.Background(), loginName, "secret"))
	}
}

// Полный цикл переустановки: устройство A набирает данные, становится Pro
// и уходит в фон; свежее устройство B входит в тот же аккаунт и получает
// всё обратно.
func TestReinstallRoundTrip(t *testing.T) {
	srv := newBackupServer(t)
	ctx := context.Background()
	log := zap.NewNop().Sugar()

	// устройство A
	cfgA := deviceConfig(t, srv.URL)
	login(t, cfgA, true, "alice")

	envA, cleanupA, err := OpenEnv(cfgA, log)
	require.NoError(t, err)
	require.NoError(t, envA.Start(ctx))

	envA.Service.AddMemo("買い物", "牛乳", "Work", []string{"errand"})
	envA.Ent.Upgrade(ctx) // покупка Pro публикуется на аккаунт

	// Push могла уже выполнить фоновая реакция на апгрейд; тогда явный
	// вызов при уходе в фон тихо гасится кулдауном. Ожидаем не результат
	// конкретного вызова, а сам факт состоявшегося бэкапа.
	envA.Shutdown(ctx)
	_, pushed := envA.Store.LastBackupAt()
	assert.True(t, pushed, "после ухода в фон бэкап состоялся")
	require.NoError(t, cleanupA())

	// устройство B: чистая установка, тот же аккаунт
	cfgB := deviceConfig(t, srv.URL)
	login(t, cfgB, false, "alice")

	envB, cleanupB, err := OpenEnv(cfgB, log)
	require.NoError(t, err)
	defer cleanupB()
	require.NoError(t, envB.Start(ctx))

	memos := envB.Service.Memos()
	require.Len(t, memos, 1)
	assert.Equal(t, "買い物", memos[0].Title)
	assert.NotEmpty(t, envB.Service.Categories())
	assert.True(t, envB.Orch.SyncEligible())
}

// Свежая установка без аккаунта: приложение доходит до рабочего состояния
// с предустановленными категориями.
func TestFreshInstallOffline(t *testing.T) {
	cfg := deviceConfig(t, "http://127.0.0.1:1") // сервера нет

	env, cleanup, err := OpenEnv(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer cleanup()
	require.NoError(t, env.Start(context.Background()))

	cats := env.Service.Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, "Work", cats[0].Name)
	assert.False(t, env.Orch.SyncEligible())
	assert.False(t, env.Backup.MaybePush(context.Background()), "без права на синхронизацию нет и бэкапа")
}
