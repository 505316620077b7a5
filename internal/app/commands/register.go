package commands

import (
	"context"
	"fmt"

	"QuickMemo/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Создать аккаунт и сохранить auth cookie" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := client.Register(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Registered successfully")
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
