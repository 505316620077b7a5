package commands

import (
	"context"
	"fmt"
	"time"

	"QuickMemo/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать состояние данных, аккаунта и бэкапа" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	memos, cats := env.Service.Counts()
	fmt.Fprintf(Out, "Memos: %d\nCategories: %d\nArchived: %d\n", memos, cats, len(env.Service.Archived()))

	if env.Client.AccountAvailable(ctx) {
		fmt.Fprintln(Out, "Account: available")
	} else {
		fmt.Fprintln(Out, "Account: unavailable (login/register to enable backups)")
	}

	if env.Orch.SyncEligible() {
		fmt.Fprintln(Out, "Auto backup: eligible")
	} else {
		fmt.Fprintln(Out, "Auto backup: not eligible")
	}

	if ts, ok := env.Store.LastBackupAt(); ok {
		fmt.Fprintf(Out, "Last backup: %s\n", ts.Format(time.RFC3339))
	} else {
		fmt.Fprintln(Out, "Last backup: never")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
