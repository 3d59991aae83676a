package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// Column widths of a candidate row.
const (
	markerWidth  = 3
	nameWidth    = 40
	workdirWidth = 60
)

// candidateItem wraps a candidate for display in a list.
type candidateItem struct {
	item model.PromptItem
}

// FilterValue returns the value to filter on.
func (i candidateItem) FilterValue() string {
	return i.item.Name
}

// candidateDelegate renders one candidate per line.
type candidateDelegate struct {
	styles *styles
}

func (d candidateDelegate) Height() int                             { return 1 }
func (d candidateDelegate) Spacing() int                            { return 0 }
func (d candidateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single candidate row.
func (d candidateDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	ci, ok := li.(candidateItem)
	if !ok {
		return
	}
	c := columns(ci.item)
	isSelected := index == m.Index()

	nameStyle, dirStyle := d.styles.text, d.styles.dim
	indicator := "  "
	if isSelected {
		nameStyle = d.styles.selected
		indicator = d.styles.cursor.Render("▸ ")
	}

	var b strings.Builder
	b.WriteString(indicator)
	b.WriteString(d.styles.attached.Render(c.marker))
	b.WriteString(" ")
	b.WriteString(nameStyle.Render(c.name))
	b.WriteString(" ")
	b.WriteString(dirStyle.Render(c.workdir))
	b.WriteString(" ")
	b.WriteString(d.styles.running.Render(c.windows))

	_, _ = fmt.Fprint(w, ansi.Truncate(b.String(), m.Width(), "…"))
}

// row holds the padded columns of a candidate.
type row struct {
	marker, name, workdir, windows string
}

func columns(item model.PromptItem) row {
	marker := ""
	if item.Attached() {
		marker = "(*)"
	}
	windows := ""
	if item.Stats != nil {
		windows = fmt.Sprintf("%d window(s)", item.Stats.WindowCount)
	}
	return row{
		marker:  fit(marker, markerWidth),
		name:    fit(item.Name, nameWidth),
		workdir: fit(item.WorkDir.String(), workdirWidth),
		windows: windows,
	}
}

// headerRow labels the columns, aligned with rendered rows under the cursor gutter.
func headerRow() string {
	return "  " + strings.Join([]string{
		center("*", markerWidth),
		center("Name", nameWidth),
		center("Working Directory", workdirWidth),
		"Window Count",
	}, " ")
}

// fit truncates or pads s to exactly width terminal cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
