package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"QuickMemo/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Показать заметки (или архив)" }
func (listCmd) Usage() string       { return "list [--archived] [--category <name>]" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	archived := fs.Bool("archived", false, "показать архив вместо живых заметок")
	category := fs.String("category", "", "фильтр по имени категории")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	if *archived {
		items := env.Service.Archived()
		if len(items) == 0 {
			fmt.Fprintln(Out, "Archive is empty")
			return nil
		}
		for _, it := range items {
			fmt.Fprintf(Out, "%s  %-24q deleted %s\n",
				it.Memo.ID, it.Memo.Title, it.DeletedAt.Format(time.RFC3339))
		}
		return nil
	}

	memos := env.Service.Memos()
	shown := 0
	for _, m := range memos {
		if *category != "" && !strings.EqualFold(m.PrimaryCategory, *category) {
			continue
		}
		line := fmt.Sprintf("%s  %-24q [%s]", m.ID, m.Title, m.PrimaryCategory)
		if len(m.Tags) > 0 {
			line += " #" + strings.Join(m.Tags, " #")
		}
		fmt.Fprintln(Out, line)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(Out, "No memos")
	}
	return nil
}

func init() { RegisterCmd(listCmd{}) }
