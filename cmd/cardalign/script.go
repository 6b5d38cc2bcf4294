package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/cardalign/internal/editor"
	"github.com/example/cardalign/internal/gesture"
	"github.com/example/cardalign/internal/layout"
)

// errScriptCancelled stops a script after a cancel command.
var errScriptCancelled = errors.New("cancelled")

type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

type scriptCmd struct {
	*root
	fs *flag.FlagSet
	sessionFlags
	commands   commandList
	scriptFile string
	stdout     io.Writer
}

func (c *scriptCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *scriptCmd) Program() string { return c.root.subprogram("script") }

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ContinueOnError)
	c := &scriptCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	c.sessionFlags.register(fs, r)
	fs.Var(&c.commands, "e", "command to run, may be repeated")
	fs.StringVar(&c.scriptFile, "script", "", "file of commands, one per line, - for stdin")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *scriptCmd) Run() error {
	lines := append([]string(nil), c.commands...)
	if c.scriptFile != "" {
		more, err := readScript(c.scriptFile)
		if err != nil {
			return err
		}
		lines = append(lines, more...)
	}

	ed, err := c.root.newEditor(&c.sessionFlags)
	if err != nil {
		return err
	}
	if err := ed.Load(context.Background(), c.file); err != nil {
		return fmt.Errorf("script %s: %w", c.file, err)
	}

	for i, line := range lines {
		err := c.executeLine(ed, line)
		switch {
		case errors.Is(err, errScriptCancelled):
			fmt.Fprintln(os.Stderr, "cancelled")
			return nil
		case err != nil:
			return fmt.Errorf("line %d %q: %w", i+1, line, err)
		}
		if ed.Phase() == editor.Closed {
			return nil
		}
	}
	// Falling off the end confirms whatever the commands built.
	return c.confirm(ed)
}

func readScript(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

func (c *scriptCmd) confirm(ed *editor.Editor) error {
	res, err := ed.Confirm(context.Background())
	if err != nil {
		return err
	}
	return c.root.deliver(&c.sessionFlags, res, c.stdout)
}

func (c *scriptCmd) executeLine(ed *editor.Editor, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	nums, err := parseNumbers(args)
	if err != nil && cmd != "frame" {
		return err
	}

	switch cmd {
	case "rotate":
		if len(nums) != 1 {
			return fmt.Errorf("usage: rotate DEGREES")
		}
		ed.Rotate(nums[0])
	case "zoom":
		if len(nums) != 1 {
			return fmt.Errorf("usage: zoom DELTA")
		}
		ed.Zoom(nums[0])
	case "pan":
		if len(nums) != 2 {
			return fmt.Errorf("usage: pan DX DY")
		}
		cx, cy := ed.Viewport().Center()
		ed.TouchStart([]gesture.Point{{X: cx, Y: cy}})
		ed.TouchMove([]gesture.Point{{X: cx + nums[0], Y: cy + nums[1]}})
		ed.TouchEnd()
	case "pinch":
		if len(nums) < 2 {
			return fmt.Errorf("usage: pinch DISTANCE DISTANCE...")
		}
		cx, cy := ed.Viewport().Center()
		contacts := func(d float64) []gesture.Point {
			return []gesture.Point{{X: cx - d/2, Y: cy}, {X: cx + d/2, Y: cy}}
		}
		ed.TouchStart(contacts(nums[0]))
		for _, d := range nums[1:] {
			ed.TouchMove(contacts(d))
		}
		ed.TouchEnd()
	case "brightness":
		if len(nums) != 1 {
			return fmt.Errorf("usage: brightness PERCENT")
		}
		ed.SetBrightness(nums[0])
	case "contrast":
		if len(nums) != 1 {
			return fmt.Errorf("usage: contrast PERCENT")
		}
		ed.SetContrast(nums[0])
	case "crop":
		ed.ToggleCropMode()
	case "reset":
		ed.Reset()
	case "resize":
		if len(nums) != 2 {
			return fmt.Errorf("usage: resize WIDTH HEIGHT")
		}
		ed.Resize(layout.Size{W: nums[0], H: nums[1]})
	case "frame":
		if len(args) != 1 {
			return fmt.Errorf("usage: frame PATH")
		}
		img, err := ed.Frame()
		if err != nil {
			return err
		}
		if err := imaging.Save(img, args[0]); err != nil {
			return fmt.Errorf("save frame: %w", err)
		}
	case "confirm":
		return c.confirm(ed)
	case "cancel":
		if err := ed.Cancel(); err != nil {
			return err
		}
		return errScriptCancelled
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func parseNumbers(args []string) ([]float64, error) {
	nums := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		nums = append(nums, v)
	}
	return nums, nil
}
