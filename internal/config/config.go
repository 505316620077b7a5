package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`
	// BackupMaxSizeMB — потолок размера снапшота; превышение отдаёт
	// клиенту 507 (квота исчерпана).
	BackupMaxSizeMB int `env:"BACKUP_MAX_SIZE_MB"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	// SharedDataDir — общий контейнер, доступный приложению и расширениям
	// (виджет, watch-мост). Если каталог недоступен, хранилище открывается
	// в локальном каталоге, а сканер старых расположений подбирает данные
	// позже, когда контейнер станет доступен.
	SharedDataDir string `env:"SHARED_DATA_DIR"`
	LocalDataDir  string `env:"LOCAL_DATA_DIR"`
	LegacyDataDir string `env:"LEGACY_DATA_DIR"`
	TokenFile     string `env:"TOKEN_FILE"`
	AppVersion    string `env:"APP_VERSION"`
	// Lang — язык имён предустановленных категорий (ja/en/zh).
	Lang string `env:"APP_LANG"`

	// EntitlementWaitSec ограничивает ожидание загрузки статуса покупки на
	// старте. 0 — ждать без ограничения.
	EntitlementWaitSec int `env:"ENTITLEMENT_WAIT_SEC"`

	// BackupCooldownSec — минимальный интервал между автобэкапами.
	BackupCooldownSec int `env:"BACKUP_COOLDOWN_SEC"`

	Version bool `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the backup server (may be host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.SharedDataDir, "shared-dir", cfg.SharedDataDir, "путь к общему контейнеру данных")
	flag.StringVar(&cfg.LocalDataDir, "local-dir", cfg.LocalDataDir, "путь к локальному каталогу данных")
	flag.StringVar(&cfg.LegacyDataDir, "legacy-dir", cfg.LegacyDataDir, "путь к каталогу данных старых версий")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.StringVar(&cfg.Lang, "lang", cfg.Lang, "язык предустановленных категорий (ja/en/zh)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	home, _ := os.UserHomeDir()
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = home
	}
	if cfg.LocalDataDir == "" {
		cfg.LocalDataDir = filepath.Join(cfgDir, "QuickMemo", "local")
	}
	if cfg.LegacyDataDir == "" {
		cfg.LegacyDataDir = filepath.Join(cfgDir, "QuickMemo", "legacy")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(cfgDir, "QuickMemo", "auth_token")
	}
	if cfg.AppVersion == "" {
		cfg.AppVersion = "1.0"
	}
	if cfg.Lang == "" {
		cfg.Lang = os.Getenv("LANG") // "ja_JP.UTF-8" и т.п.; нормализуется на месте использования
	}
	if cfg.EntitlementWaitSec == 0 {
		cfg.EntitlementWaitSec = 30
	}
	if cfg.BackupCooldownSec == 0 {
		cfg.BackupCooldownSec = 3600
	}
	if cfg.BackupMaxSizeMB == 0 {
		cfg.BackupMaxSizeMB = 10
	}

	return cfg
}
