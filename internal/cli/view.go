package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/layout"
	"github.com/matzehuels/seqview/pkg/pipeline"
	"github.com/matzehuels/seqview/pkg/record"
)

const (
	defaultViewCols = 80
	minViewSpan     = 10
)

// viewCommand creates the view command, an interactive terminal track viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var f recordFlags

	cmd := &cobra.Command{
		Use:   "view [record]",
		Short: "Browse a record's features in the terminal",
		Long: `Browse a record's features in the terminal.

The viewer shows a window of the record with overlapping features stacked
on levels. --window sets the initial window.

Keys: ←/→ or h/l scroll, +/- zoom, g/G jump to start/end, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, args[0])
			if err != nil {
				return err
			}
			window := opts.Window
			opts.Window = nil
			opts.SetDefaults()

			rec, err := pipeline.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}
			rec, err = pipeline.Prepare(rec, opts)
			if err != nil {
				return err
			}

			m := newTrackModel(rec, args[0])
			if window != nil {
				m.offset, m.span = window.Start, window.End-window.Start
				m.clamp()
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	f.bindPrepare(cmd)
	return cmd
}

// =============================================================================
// trackModel - Scrollable feature track
// =============================================================================

var (
	trackAxisStyle  = lipgloss.NewStyle().Foreground(colorDim)
	trackErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// trackModel is the bubbletea model for the track viewer. offset and span
// select the visible window in sequence positions.
type trackModel struct {
	rec    *record.Record
	title  string
	offset int
	span   int
	cols   int
}

func newTrackModel(rec *record.Record, title string) trackModel {
	m := trackModel{rec: rec, title: title, span: rec.SequenceLength, cols: defaultViewCols}
	m.clamp()
	return m
}

func (m trackModel) Init() tea.Cmd {
	return nil
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.offset -= max(1, m.span/4)
		case "right", "l":
			m.offset += max(1, m.span/4)
		case "+", "=":
			m.offset += m.span / 4
			m.span /= 2
		case "-", "_":
			m.offset -= m.span / 2
			m.span *= 2
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = m.rec.SequenceLength
		}
		m.clamp()
	case tea.WindowSizeMsg:
		m.cols = max(20, msg.Width-2)
	}
	return m, nil
}

// clamp keeps the window inside the record.
func (m *trackModel) clamp() {
	n := m.rec.SequenceLength
	m.span = min(max(m.span, min(minViewSpan, n)), n)
	m.offset = min(max(m.offset, 0), n-m.span)
}

// visible returns the record cropped to the window. Crop excludes the last
// position, so a window reaching the end stops one short of it.
func (m trackModel) visible() (*record.Record, error) {
	n := m.rec.SequenceLength
	if m.offset == 0 && m.span >= n {
		return m.rec, nil
	}
	end := min(m.offset+m.span, n-1)
	return m.rec.Crop(feature.Window{Start: m.offset, End: end})
}

func (m trackModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")

	v, err := m.visible()
	if err != nil {
		b.WriteString(trackErrorStyle.Render(err.Error()))
		return b.String()
	}
	levels, err := layout.AssignLevels(v)
	if err != nil {
		b.WriteString(trackErrorStyle.Render(err.Error()))
		return b.String()
	}

	lo, hi := v.Span()
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d..%d · %d feature(s) · %d level(s)",
		v.DisplayIndex(0), v.DisplayIndex(v.SequenceLength), len(v.Features), levels.Count())))
	b.WriteString("\n\n")

	for level := levels.Max; level >= 0; level-- {
		row := newTrackRow(m.cols)
		for _, i := range levels.At(level) {
			f := v.Features[i]
			if v.Circular && f.SpansOrigin() {
				row.draw(f, f.Start, hi, lo, hi)
				row.draw(f, lo, f.End, lo, hi)
				continue
			}
			row.draw(f, f.Start, f.End, lo, hi)
		}
		b.WriteString(row.render())
		b.WriteString("\n")
	}

	b.WriteString(trackAxisStyle.Render(strings.Repeat("─", m.cols)))
	b.WriteString("\n")
	left := fmt.Sprint(v.DisplayIndex(0))
	right := fmt.Sprint(v.DisplayIndex(v.SequenceLength))
	gap := max(1, m.cols-len(left)-len(right))
	b.WriteString(StyleDim.Render(left + strings.Repeat(" ", gap) + right))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("←/→ scroll  +/- zoom  g/G start/end  q quit"))

	return b.String()
}

// =============================================================================
// trackRow - One level drawn as terminal cells
// =============================================================================

type trackCell struct {
	r     rune
	color string
}

type trackRow []trackCell

func newTrackRow(cols int) trackRow {
	row := make(trackRow, cols)
	for i := range row {
		row[i].r = ' '
	}
	return row
}

// draw paints the interval [start, end] of f, scaled from [lo, hi) to the
// row width, with a strand arrowhead and the label when it fits.
func (row trackRow) draw(f feature.Feature, start, end, lo, hi int) {
	cols := len(row)
	col := func(x int) int { return (x - lo) * cols / max(1, hi-lo) }
	c0 := min(max(col(start), 0), cols-1)
	c1 := min(max(col(end), c0+1), cols)

	for c := c0; c < c1; c++ {
		row[c] = trackCell{r: '━', color: f.Style.Color}
	}
	switch f.Strand {
	case feature.StrandForward:
		if !f.OpenRight {
			row[c1-1].r = '▶'
		}
	case feature.StrandReverse:
		if !f.OpenLeft {
			row[c0].r = '◀'
		}
	}

	label := []rune(f.Label)
	if width := c1 - c0 - 2; len(label) > 0 && len(label) <= width {
		at := c0 + 1 + (width-len(label))/2
		for i, r := range label {
			row[at+i].r = r
		}
	}
}

// render joins the cells, styling runs of the same color together.
func (row trackRow) render() string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].color == row[i].color {
			run.WriteRune(row[j].r)
			j++
		}
		if row[i].color == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row[i].color)).Render(run.String()))
		}
		i = j
	}
	return strings.TrimRight(b.String(), " ")
}
