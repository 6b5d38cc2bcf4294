package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/example/cardalign/internal/editor"
	"github.com/example/cardalign/internal/export"
	"github.com/example/cardalign/internal/theme"
)

var runWindowFn = func(ed *editor.Editor, th *theme.Theme) {
	editor.NewWindow(ed, th).Run()
}

type editCmd struct {
	*root
	fs *flag.FlagSet
	sessionFlags
}

func (c *editCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *editCmd) Program() string { return c.root.subprogram("edit") }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.sessionFlags.register(fs, r)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) Run() error {
	results := make(chan export.Result, 1)
	ed, err := c.root.newEditor(&c.sessionFlags, editor.WithOnConfirm(func(res export.Result) { results <- res }))
	if err != nil {
		return err
	}
	if err := ed.Load(context.Background(), c.file); err != nil {
		return fmt.Errorf("edit %s: %w", c.file, err)
	}

	runWindowFn(ed, c.root.activeTheme)

	if ed.Outcome() != editor.Confirmed {
		fmt.Fprintln(os.Stderr, "cancelled")
		return nil
	}
	return c.root.deliver(&c.sessionFlags, <-results, os.Stdout)
}
