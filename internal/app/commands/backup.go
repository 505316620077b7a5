package commands

import (
	"context"
	"errors"
	"fmt"

	"QuickMemo/internal/app/model"
	"QuickMemo/internal/app/remote"
	"QuickMemo/internal/config"
)

type backupCmd struct{}

func (backupCmd) Name() string        { return "backup" }
func (backupCmd) Description() string { return "Отправить снапшот на сервер сейчас" }
func (backupCmd) Usage() string       { return "backup" }

func (backupCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	memos, cats := env.Service.Counts()
	if memos == 0 && cats == 0 {
		fmt.Fprintln(Out, "• Nothing to back up")
		return nil
	}

	if err := env.Client.Push(ctx, env.Service.Memos(), env.Service.Categories()); err != nil {
		var f *remote.Failure
		if errors.As(err, &f) {
			return fmt.Errorf("%s", f.Message)
		}
		return err
	}
	_ = env.Store.SetLastBackupAt(model.Now())
	fmt.Fprintf(Out, "✓ Backup pushed: %d memos, %d categories\n", memos, cats)
	return nil
}

type upgradeCmd struct{}

func (upgradeCmd) Name() string        { return "upgrade" }
func (upgradeCmd) Description() string { return "Отметить покупку Pro на этом устройстве" }
func (upgradeCmd) Usage() string       { return "upgrade" }

func (upgradeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	env.Ent.Upgrade(ctx)
	fmt.Fprintln(Out, "✓ Pro status saved")
	return nil
}

func init() {
	RegisterCmd(backupCmd{})
	RegisterCmd(upgradeCmd{})
}
