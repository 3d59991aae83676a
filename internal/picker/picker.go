// Package picker is the interactive candidate selector: a filterable list of
// candidates with a preview pane, built on bubbletea.
package picker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/model"
	"github.com/timvw/tmux-sessionizer/internal/mux"
	telem "github.com/timvw/tmux-sessionizer/internal/otel"
	"github.com/timvw/tmux-sessionizer/internal/sessionizer"
)

// PreviewFunc runs a rendered preview command and returns what to show.
type PreviewFunc func(ctx context.Context, command string) (string, error)

// ShellPreview runs preview commands with sh -c through exec. A non-zero
// exit returns the combined output together with an error.
func ShellPreview(exec mux.Executor) PreviewFunc {
	return func(ctx context.Context, command string) (string, error) {
		out, err := exec.Execute(ctx, "sh", []string{"-c", command}, false)
		if err != nil {
			return "", err
		}
		text := string(out.Stdout)
		if !out.Success() {
			return text + string(out.Stderr), fmt.Errorf("preview exited with status %d", out.ExitCode)
		}
		return text, nil
	}
}

// Picker runs the interactive selection.
type Picker struct {
	Items        []model.PromptItem
	Theme        Theme
	HideBanner   bool
	PreviewWidth int         // percent of the terminal width; 0 means 30
	Preview      PreviewFunc // nil hides the preview pane
	Cache        *PreviewCache
	Metrics      *telem.Metrics // nil-safe
	Logger       *zap.Logger
}

// Run shows the picker and blocks until the user chooses or cancels.
// Cancelling returns nil and no error.
func (p *Picker) Run(ctx context.Context) (*model.PromptItem, error) {
	m := newPickerModel(ctx, p)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}
	fm, ok := final.(*pickerModel)
	if !ok {
		fm = m
	}
	return fm.finish(), nil
}

// finish records the outcome and returns the chosen candidate, nil if cancelled.
func (m *pickerModel) finish() *model.PromptItem {
	stats := m.cache.Stats()
	fields := []zap.Field{
		zap.Int("preview_cache_entries", stats.Entries),
		zap.Int64("preview_cache_hits", stats.Hits),
		zap.Int64("preview_cache_misses", stats.Misses),
	}
	if m.chosen == nil {
		m.metrics.RecordSelection(m.ctx, "cancelled")
		m.logger.Debug("selection cancelled", fields...)
		return nil
	}
	m.metrics.RecordSelection(m.ctx, "selected")
	m.logger.Debug("selected", append(fields, zap.String("name", m.chosen.Name))...)
	return m.chosen
}

type previewMsg struct {
	command string
	output  string
	err     error
}

// pickerModel implements tea.Model
type pickerModel struct {
	ctx     context.Context
	list    list.Model
	preview viewport.Model
	styles  styles

	hideBanner   bool
	previewWidth int
	runPreview   PreviewFunc
	cache        *PreviewCache
	metrics      *telem.Metrics
	logger       *zap.Logger

	// dimensions
	width  int
	height int

	// preview state
	previewCmd    string // rendered command the pane is showing
	previewLoaded bool
	previewText   string
	previewFailed bool

	chosen   *model.PromptItem
	quitting bool
}

func newPickerModel(ctx context.Context, p *Picker) *pickerModel {
	st := newStyles(p.Theme)

	items := make([]list.Item, len(p.Items))
	for i, it := range p.Items {
		items[i] = candidateItem{item: it}
	}

	l := list.New(items, candidateDelegate{styles: &st}, 0, 0)
	l.DisableQuitKeybindings()
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "> "
	l.FilterInput.PromptStyle = st.prompt
	l.FilterInput.TextStyle = st.text

	width := p.PreviewWidth
	if width <= 0 || width > 100 {
		width = 30
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &pickerModel{
		ctx:          ctx,
		list:         l,
		preview:      viewport.New(0, 0),
		styles:       st,
		hideBanner:   p.HideBanner,
		previewWidth: width,
		runPreview:   p.Preview,
		cache:        p.Cache,
		metrics:      p.Metrics,
		logger:       logger,
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return m.refreshPreview()
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case previewMsg:
		failed := msg.err != nil
		if failed {
			m.logger.Debug("preview failed", zap.String("cmd", msg.command), zap.Error(msg.err))
		}
		m.cache.Store(msg.command, msg.output, failed)
		if msg.command == m.previewCmd {
			m.setPreview(msg.output, failed)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, tea.Batch(cmd, m.refreshPreview())
}

func (m *pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		if m.list.FilterState() == list.Unfiltered {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.KeyEnter:
		if sel, ok := m.list.SelectedItem().(candidateItem); ok {
			item := sel.item
			m.chosen = &item
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyRunes:
		// Typing filters straight away, without pressing '/' first.
		if m.list.FilterState() != list.Filtering {
			m.list, _ = m.list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, tea.Batch(cmd, m.refreshPreview())
}

// refreshPreview points the preview pane at the selected candidate, running
// its preview command unless the cache has it.
func (m *pickerModel) refreshPreview() tea.Cmd {
	if m.runPreview == nil {
		return nil
	}

	command := ""
	if sel, ok := m.list.SelectedItem().(candidateItem); ok {
		command = sessionizer.RenderPreview(sel.item)
	}
	if m.previewLoaded && command == m.previewCmd {
		return nil
	}
	m.previewCmd = command
	m.previewLoaded = true

	if command == "" {
		m.setPreview("", false)
		return nil
	}
	if out, failed, ok := m.cache.Lookup(command); ok {
		m.metrics.RecordPreviewCacheHit(m.ctx)
		m.setPreview(out, failed)
		return nil
	}
	m.metrics.RecordPreviewCacheMiss(m.ctx)
	m.setPreview("", false)

	run, ctx := m.runPreview, m.ctx
	return func() tea.Msg {
		out, err := run(ctx, command)
		return previewMsg{command: command, output: out, err: err}
	}
}

func (m *pickerModel) setPreview(text string, failed bool) {
	m.previewText = text
	m.previewFailed = failed
	m.renderPreview()
}

// renderPreview clips preview lines to the pane width; wrapping would push
// the output of commands like ls or capture-pane out of alignment.
func (m *pickerModel) renderPreview() {
	lines := strings.Split(strings.ReplaceAll(m.previewText, "\t", "    "), "\n")
	for i, line := range lines {
		if m.preview.Width > 0 {
			line = ansi.Truncate(line, m.preview.Width, "")
		}
		if m.previewFailed {
			line = m.styles.err.Render(line)
		}
		lines[i] = line
	}
	m.preview.SetContent(strings.Join(lines, "\n"))
	m.preview.GotoTop()
}

// headerLines returns the lines drawn above the list.
func (m *pickerModel) headerLines() []string {
	var lines []string
	if !m.hideBanner {
		lines = append(lines, strings.Split(banner, "\n")...)
	}
	return append(lines, headerRow())
}

// layout sizes the list and the preview pane from the window size.
func (m *pickerModel) layout() {
	listWidth := m.width
	bodyHeight := m.height - len(m.headerLines()) - 1 // hint line
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if m.runPreview != nil {
		paneWidth := m.width * m.previewWidth / 100
		listWidth = m.width - paneWidth
		frameW, frameH := m.styles.preview.GetFrameSize()
		m.preview.Width = max(paneWidth-frameW, 0)
		m.preview.Height = max(bodyHeight-frameH, 0)
		m.renderPreview()
	}
	m.list.SetSize(listWidth, bodyHeight)
}

func (m *pickerModel) View() string {
	if m.quitting || m.chosen != nil {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	header := m.headerLines()
	for i, line := range header {
		style := m.styles.banner
		if i == len(header)-1 {
			style = m.styles.dim
		}
		b.WriteString(style.Render(ansi.Truncate(line, m.width, "")))
		b.WriteString("\n")
	}

	body := m.list.View()
	if m.runPreview != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.styles.preview.Render(m.preview.View()))
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.viewHints())
	return b.String()
}

func (m *pickerModel) viewHints() string {
	hints := []struct{ key, desc string }{
		{"enter", "open"},
		{"↑/↓", "move"},
		{"type", "filter"},
		{"esc", "clear/cancel"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.styles.hintKey.Render(h.key) + " " + m.styles.hintDesc.Render(h.desc)
	}
	return strings.Join(parts, "  ")
}
