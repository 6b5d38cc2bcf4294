package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/example/cardalign/internal/editor"
	"github.com/example/cardalign/internal/export"
	"github.com/example/cardalign/internal/gesture"
	"github.com/example/cardalign/internal/theme"
)

// ramp maps luminance to characters, darkest first.
const ramp = " .:-=+*#%@"

// panelLines is the height of the status panel including its border.
const panelLines = 4

var runProgramFn = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
}

type tuiCmd struct {
	*root
	fs *flag.FlagSet
	sessionFlags
}

func (c *tuiCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *tuiCmd) Program() string { return c.root.subprogram("tui") }

func parseTUICmd(args []string, r *root) (*tuiCmd, error) {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	c := &tuiCmd{root: r, fs: fs}
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

func (c *tuiCmd) Run() error {
	ed, err := c.root.newEditor(&c.sessionFlags)
	if err != nil {
		return err
	}
	if err := ed.Load(context.Background(), c.file); err != nil {
		return fmt.Errorf("tui %s: %w", c.file, err)
	}
	final, err := runProgramFn(newTUIModel(ed, c.root.activeTheme))
	if err != nil {
		return err
	}
	m, ok := final.(tuiModel)
	if !ok || m.result == nil {
		fmt.Fprintln(os.Stderr, "cancelled")
		return nil
	}
	return c.root.deliver(&c.sessionFlags, *m.result, os.Stdout)
}

// confirmedMsg carries the outcome of an export started from the terminal.
type confirmedMsg struct {
	res export.Result
	err error
}

type tuiModel struct {
	ed     *editor.Editor
	styles tuiStyles

	width, height int

	dragging bool
	result   *export.Result
	message  string
}

type tuiStyles struct {
	panel  lipgloss.Style
	status lipgloss.Style
	errMsg lipgloss.Style
}

func lipColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func newTUIModel(ed *editor.Editor, th *theme.Theme) tuiModel {
	if th == nil {
		th = theme.Default()
	}
	return tuiModel{
		ed: ed,
		styles: tuiStyles{
			panel: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipColor(th.Guide)).
				Padding(0, 1),
			status: lipgloss.NewStyle().Foreground(lipColor(th.Foreground)),
			errMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
		},
		width:  80,
		height: 24,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case confirmedMsg:
		if msg.err != nil {
			m.message = "export failed: " + msg.err.Error()
			return m, nil
		}
		res := msg.res
		m.result = &res
		return m, tea.Quit
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		if err := m.ed.Cancel(); err != nil {
			m.message = err.Error()
			return m, nil
		}
		return m, tea.Quit
	case "enter":
		if m.ed.Phase() != editor.Ready {
			return m, nil
		}
		ed := m.ed
		return m, func() tea.Msg {
			res, err := ed.Confirm(context.Background())
			return confirmedMsg{res: res, err: err}
		}
	case "r":
		m.ed.Rotate(90)
	case "R":
		m.ed.Rotate(-90)
	case "+", "=":
		m.ed.Zoom(0.1)
	case "-", "_":
		m.ed.Zoom(-0.1)
	case "0":
		m.ed.Reset()
	case "c", "C":
		m.ed.ToggleCropMode()
	case "[":
		m.ed.AdjustBrightness(-5)
	case "]":
		m.ed.AdjustBrightness(5)
	case "{":
		m.ed.AdjustContrast(-5)
	case "}":
		m.ed.AdjustContrast(5)
	case "up", "down", "left", "right":
		dx, dy := arrowDelta(msg.String())
		m.ed.Pan(dx, dy)
	}
	return m, nil
}

func arrowDelta(k string) (float64, float64) {
	const step = 10
	switch k {
	case "up":
		return 0, -step
	case "down":
		return 0, step
	case "left":
		return -step, 0
	case "right":
		return step, 0
	}
	return 0, 0
}

// handleMouse turns a left drag into a one-contact pan and the wheel into
// zoom. Cells are converted to viewport pixels.
func (m *tuiModel) handleMouse(msg tea.MouseMsg) {
	pt := m.cellToPixel(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		if !m.dragging {
			m.dragging = m.ed.TouchStart([]gesture.Point{pt})
			return
		}
		m.ed.TouchMove([]gesture.Point{pt})
	case tea.MouseMotion:
		if m.dragging {
			m.ed.TouchMove([]gesture.Point{pt})
		}
	case tea.MouseRelease:
		if m.dragging {
			m.dragging = false
			m.ed.TouchEnd()
		}
	case tea.MouseWheelUp:
		m.ed.Zoom(0.1)
	case tea.MouseWheelDown:
		m.ed.Zoom(-0.1)
	}
}

// previewSize fits the viewport into the terminal. Cells are about twice as
// tall as they are wide.
func (m tuiModel) previewSize() (int, int) {
	vp := m.ed.Viewport()
	availW, availH := m.width, m.height-panelLines
	if availW < 1 || availH < 1 || vp.Empty() {
		return 0, 0
	}
	cols := availW
	rows := int(math.Round(float64(cols) * vp.H / vp.W / 2))
	if rows > availH {
		rows = availH
		cols = int(math.Round(float64(rows) * 2 * vp.W / vp.H))
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (m tuiModel) cellToPixel(x, y int) gesture.Point {
	cols, rows := m.previewSize()
	vp := m.ed.Viewport()
	if cols == 0 || rows == 0 {
		return gesture.Point{}
	}
	return gesture.Point{
		X: (float64(x) + 0.5) * vp.W / float64(cols),
		Y: (float64(y) + 0.5) * vp.H / float64(rows),
	}
}

func (m tuiModel) View() string {
	var b strings.Builder
	cols, rows := m.previewSize()
	if frame, err := m.ed.Frame(); err == nil && cols > 0 {
		b.WriteString(asciiPreview(frame, cols, rows))
	}
	b.WriteString(m.panel())
	return b.String()
}

func (m tuiModel) panel() string {
	t := m.ed.Transform()
	line := fmt.Sprintf("%s  zoom %.2f  rotate %.0f°  pan %.0f,%.0f  brightness %.0f%%  contrast %.0f%%",
		m.ed.Phase(), t.Scale, t.RotationDeg, t.X, t.Y, t.BrightnessPct, t.ContrastPct)
	if m.ed.CropMode() {
		line += "  crop"
	}
	help := "r/R rotate  +/- zoom  drag pan  c crop  [ ] brightness  { } contrast  0 reset  enter confirm  esc cancel"
	body := m.styles.status.Render(line) + "\n" + help
	if m.message != "" {
		body = m.styles.errMsg.Render(m.message) + "\n" + help
	}
	return m.styles.panel.Render(body)
}

// asciiPreview renders img as rows of characters picked by luminance.
func asciiPreview(img image.Image, cols, rows int) string {
	small := imaging.Resize(img, cols, rows, imaging.Box)
	var b strings.Builder
	b.Grow((cols + 1) * rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := small.NRGBAAt(x, y)
			l := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			b.WriteByte(ramp[l*(len(ramp)-1)/255])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
