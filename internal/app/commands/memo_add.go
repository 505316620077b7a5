package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"QuickMemo/internal/config"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Добавить заметку" }
func (addCmd) Usage() string {
	return "add <title> [--content <text>] [--category <name>] [--tags a,b]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return ErrUsage
	}
	title := args[0]

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	content := fs.String("content", "", "текст заметки")
	category := fs.String("category", "", "имя категории")
	tags := fs.String("tags", "", "теги через запятую")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	env, done, err := openStarted(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	var tagList []string
	for _, t := range strings.Split(*tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tagList = append(tagList, t)
		}
	}

	m := env.Service.AddMemo(title, *content, *category, tagList)
	fmt.Fprintf(Out, "✓ Added memo %s (%q)\n", m.ID, m.Title)
	return nil
}

func init() { RegisterCmd(addCmd{}) }
