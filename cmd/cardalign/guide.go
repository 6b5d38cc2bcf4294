package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/cardalign/internal/export"
	"github.com/example/cardalign/internal/layout"
)

type guideCmd struct {
	*root
	fs      *flag.FlagSet
	width   float64
	height  float64
	padding float64
	stdout  io.Writer
}

func (c *guideCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *guideCmd) Program() string { return c.root.subprogram("guide") }

func parseGuideCmd(args []string, r *root) (*guideCmd, error) {
	fs := flag.NewFlagSet("guide", flag.ContinueOnError)
	c := &guideCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.Float64Var(&c.width, "width", float64(r.config.Window.Width), "viewport width in pixels")
	fs.Float64Var(&c.height, "height", float64(r.config.Window.Height), "viewport height in pixels")
	fs.Float64Var(&c.padding, "padding", r.config.Padding, "bleed margin used to size the export")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *guideCmd) Run() error {
	vp := layout.Size{W: c.width, H: c.height}
	if vp.Empty() {
		return fmt.Errorf("guide: viewport %gx%g must be positive", c.width, c.height)
	}
	g := layout.Guide(vp)
	out := export.OutputSize(g, c.padding)
	fmt.Fprintf(c.stdout, "guide x=%.2f y=%.2f w=%.2f h=%.2f\n", g.X, g.Y, g.W, g.H)
	fmt.Fprintf(c.stdout, "export %dx%d\n", out.X, out.Y)
	return nil
}
