package ui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/jivebars/internal/cli"
	"github.com/linuxmatters/jivebars/internal/palette"
)

// ProgressMsg reports the fraction of bars generated so far.
type ProgressMsg struct {
	Fraction float64
}

// WarningMsg is a non-fatal problem, such as a corrected colour pattern.
type WarningMsg string

// ErrorMsg is a problem that aborts generation.
type ErrorMsg string

// Summary describes a finished generation run.
type Summary struct {
	Title   string
	Bars    int
	Removed int
	Pattern string
	Preview bool
	Elapsed time.Duration

	// Heights and Colors describe each bar for the spectrum strip.
	Heights []float64
	Colors  []palette.Color

	// Outputs lists the files written.
	Outputs []string
	// Image is the rendered preview, shown downsampled.
	Image image.Image
}

// CompleteMsg signals a successful run.
type CompleteMsg struct {
	Summary Summary
}

// FailedMsg signals a run that ended with an error.
type FailedMsg struct {
	Err error
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model is the Bubbletea model for a generation run
type Model struct {
	progressBar progress.Model

	title    string
	fraction float64
	warnings []string
	errors   []string

	startTime       time.Time
	complete        *Summary
	failed          error
	completionDelay time.Duration

	width     int
	noPreview bool
}

// NewModel creates a progress model. noPreview hides the terminal preview
// of the rendered image.
func NewModel(title string, noPreview bool) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.BarViolet), string(cli.BarCyan)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		title:           title,
		startTime:       time.Now(),
		completionDelay: 2 * time.Second,
		noPreview:       noPreview,
	}
}

// SetCompletionDelay sets how long the summary stays up before quitting.
func (m *Model) SetCompletionDelay(d time.Duration) {
	m.completionDelay = d
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(msg.Width-30, 50)
		return m, nil

	case ProgressMsg:
		m.fraction = msg.Fraction
		return m, nil

	case WarningMsg:
		m.warnings = append(m.warnings, string(msg))
		return m, nil

	case ErrorMsg:
		m.errors = append(m.errors, string(msg))
		return m, nil

	case CompleteMsg:
		m.complete = &msg.Summary
		m.fraction = 1
		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case FailedMsg:
		m.failed = msg.Err
		return m, tea.Quit

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.CompletionSummary()
	}
	return m.renderProgress()
}

// Done reports whether the run finished, successfully or not.
func (m *Model) Done() bool {
	return m.complete != nil || m.failed != nil
}

// CompletionSummary returns the final summary for printing after the
// program exits, or "" if generation did not complete.
func (m *Model) CompletionSummary() string {
	if m.complete == nil {
		return ""
	}
	return m.renderComplete()
}

func (m *Model) renderProgress() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.BarCyan).Render(cli.AppTitle))
	s.WriteString("\n")
	if m.title != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(cli.BarViolet).Render(m.title))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	s.WriteString("Generating: ")
	s.WriteString(m.progressBar.ViewAs(m.fraction))
	s.WriteString(fmt.Sprintf("  %d%%", int(m.fraction*100)))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("Elapsed: %s", formatDuration(time.Since(m.startTime)))))
	s.WriteString("\n")

	m.renderMessages(&s)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.BarViolet).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderMessages(s *strings.Builder) {
	warnStyle := lipgloss.NewStyle().Foreground(cli.BarAmber)
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.BarRed)
	for _, w := range m.warnings {
		s.WriteString("\n")
		s.WriteString(warnStyle.Render("⚠ " + w))
	}
	for _, e := range m.errors {
		s.WriteString("\n")
		s.WriteString(errStyle.Render("✗ " + e))
	}
}

func (m *Model) renderComplete() string {
	var s strings.Builder
	c := m.complete

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.BarCyan).Render("✓ Visualiser Generated!"))
	s.WriteString("\n\n")

	dimLabel := lipgloss.NewStyle().Faint(true)
	mode := "audio-driven"
	if c.Preview {
		mode = "preview"
	}
	if c.Title != "" {
		s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Audio:    "), c.Title))
	}
	s.WriteString(fmt.Sprintf("%s%d (%s)\n", dimLabel.Render("Bars:     "), c.Bars, mode))
	if c.Pattern != "" {
		s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Pattern:  "), c.Pattern))
	}
	if c.Removed > 0 {
		s.WriteString(fmt.Sprintf("%s%d previous bars\n", dimLabel.Render("Replaced: "), c.Removed))
	}
	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Time:     "), formatDuration(c.Elapsed)))
	for _, out := range c.Outputs {
		s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Output:   "), out))
	}

	if len(c.Heights) > 0 {
		width := 64
		if m.width > 10 {
			width = min(m.width-10, 64)
		}
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Foreground(cli.BarViolet).Render("Bars:"))
		s.WriteString("\n")
		s.WriteString(renderSpectrum(c.Heights, c.Colors, width))
		s.WriteString("\n")
	}

	m.renderMessages(&s)

	if !m.noPreview && c.Image != nil {
		s.WriteString("\n")
		s.WriteString(RenderPreview(DownsampleImage(c.Image, DefaultPreviewConfig())))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.BarCyan).
		Padding(1, 1).
		Render(s.String()) + "\n"
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// renderSpectrum draws bar heights two rows tall, each bar in its own
// material colour. Heights are normalised to the tallest bar.
func renderSpectrum(heights []float64, colors []palette.Color, width int) string {
	if len(heights) == 0 || width <= 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	stride := len(heights) / width
	if stride == 0 {
		stride = 1
	}

	maxHeight := 0.0
	for _, h := range heights {
		maxHeight = max(maxHeight, h)
	}
	if maxHeight == 0 {
		maxHeight = 1.0
	}

	type column struct {
		height float64
		style  lipgloss.Style
	}
	var cols []column
	for i := 0; i < len(heights) && len(cols) < width; i += stride {
		style := lipgloss.NewStyle().Foreground(cli.BarCyan)
		if i < len(colors) {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i].Hex()))
		}
		cols = append(cols, column{height: heights[i] / maxHeight, style: style})
	}

	var result strings.Builder

	// Top row: the portion above one half
	for _, c := range cols {
		if c.height > 0.5 {
			idx := min(int((c.height-0.5)*2*float64(len(blocks)-1)), len(blocks)-1)
			result.WriteString(c.style.Render(string(blocks[idx])))
		} else {
			result.WriteString(" ")
		}
	}
	result.WriteString("\n")

	// Bottom row
	for _, c := range cols {
		idx := len(blocks) - 1
		if c.height < 0.5 {
			idx = max(min(int(c.height*2*float64(len(blocks)-1)), len(blocks)-1), 0)
		}
		result.WriteString(c.style.Render(string(blocks[idx])))
	}

	return result.String()
}
