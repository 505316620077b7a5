package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"QuickMemo/internal/config"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Переместить заметку в архив" }
func (deleteCmd) Usage() string       { return "delete <memo-id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("bad memo id: %w", err)
	}

	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	if !env.Service.DeleteMemo(id) {
		return fmt.Errorf("memo %s not found", id)
	}
	fmt.Fprintln(Out, "✓ Moved to archive")
	return nil
}

type restoreCmd struct{}

func (restoreCmd) Name() string        { return "restore" }
func (restoreCmd) Description() string { return "Вернуть заметку из архива" }
func (restoreCmd) Usage() string       { return "restore <memo-id>" }

func (restoreCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("bad memo id: %w", err)
	}

	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	if !env.Service.RestoreArchived(id) {
		return fmt.Errorf("memo %s not found in archive", id)
	}
	fmt.Fprintln(Out, "✓ Restored from archive")
	return nil
}

func init() {
	RegisterCmd(deleteCmd{})
	RegisterCmd(restoreCmd{})
}
