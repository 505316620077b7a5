package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"QuickMemo/internal/config"
)

// Dispatch resolves the first argument to a registered command, runs it and
// maps the result to a process exit code: 0 on success, 2 on usage problems,
// 1 on everything else.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])

	// qmemo help / qmemo help <command>
	if name == "help" || name == "--help" || name == "-h" {
		if len(args) < 2 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		c, ok := Get(args[1])
		if !ok {
			fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
			fmt.Fprint(Out, FormatGlobalUsage())
			return 2
		}
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 0
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	if err := c.Run(ctx, cfg, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 2
		}
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return 1
	}
	return 0
}
