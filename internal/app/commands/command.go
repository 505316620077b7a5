package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"QuickMemo/internal/app/bootstrap"
	"QuickMemo/internal/app/remote"
	"QuickMemo/internal/config"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <login> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands.
func FormatGlobalUsage() string {
	lines := []string{
		"QuickMemo CLI",
		"",
		"Usage:",
		"  qmemo [--base-url <host:port>] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-32s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}

// cliLogger — zap для фоновых компонентов CLI: в консоль попадают только
// предупреждения, остальное не мешает выводу команд.
func cliLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// newClient — лёгкий путь для команд, которым не нужно локальное
// хранилище (регистрация и вход обращаются только к серверу).
func newClient(cfg *config.Config) (*remote.Client, error) {
	deviceID, err := remote.DeviceID(cfg.TokenFile + ".device")
	if err != nil {
		return nil, fmt.Errorf("device identity: %w", err)
	}
	return remote.NewClient(cfg.ServerURL, remote.TokenFile{Path: cfg.TokenFile}, deviceID, cfg.AppVersion, cliLogger()), nil
}

// openStarted собирает окружение и прогоняет стартовое согласование
// (перенос старых данных, восстановление, категории). Команды, работающие
// с данными, всегда начинают отсюда.
func openStarted(ctx context.Context, cfg *config.Config) (*bootstrap.Env, func(), error) {
	env, cleanup, err := bootstrap.OpenEnv(cfg, cliLogger())
	if err != nil {
		return nil, nil, err
	}
	if err := env.Start(ctx); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	done := func() {
		env.Shutdown(ctx)
		_ = cleanup()
	}
	return env, done, nil
}
