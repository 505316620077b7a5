package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"QuickMemo/internal/config"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "Показать категории; --repair пересобирает список" }
func (categoriesCmd) Usage() string       { return "categories [--repair]" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	repair := fs.Bool("repair", false, "пересобрать категории из заметок")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	cats := env.Service.Categories()
	if *repair {
		cats = env.Service.RepairCategories()
		fmt.Fprintln(Out, "✓ Categories rebuilt")
	}

	for _, c := range cats {
		kind := "custom"
		if c.IsDefault {
			kind = "default"
		}
		fmt.Fprintf(Out, "%-2d %-20s %s %s (%s)\n", c.Order, c.Name, c.Icon, c.Color, kind)
	}
	return nil
}

func init() { RegisterCmd(categoriesCmd{}) }
