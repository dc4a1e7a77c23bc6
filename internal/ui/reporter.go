package ui

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/jivebars/internal/cli"
)

// Reporter forwards generator feedback to a Bubbletea program.
type Reporter struct {
	send func(tea.Msg)
}

// NewReporter creates a reporter that delivers messages with send,
// usually (*tea.Program).Send.
func NewReporter(send func(tea.Msg)) *Reporter {
	return &Reporter{send: send}
}

func (r *Reporter) Progress(fraction float64) { r.send(ProgressMsg{Fraction: fraction}) }
func (r *Reporter) Warning(msg string)        { r.send(WarningMsg(msg)) }
func (r *Reporter) Error(msg string)          { r.send(ErrorMsg(msg)) }

// PlainReporter writes feedback as styled lines, for terminals without a
// TUI. Progress is printed in steps of ten percent.
type PlainReporter struct {
	mu   sync.Mutex
	w    io.Writer
	last int
}

// NewPlainReporter creates a reporter writing to w.
func NewPlainReporter(w io.Writer) *PlainReporter {
	return &PlainReporter{w: w, last: -1}
}

func (r *PlainReporter) Progress(fraction float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := int(fraction * 10)
	if step <= r.last {
		return
	}
	r.last = step
	fmt.Fprintf(r.w, "%s %3d%%\n", cli.KeyStyle.Render("Generating:"), step*10)
}

func (r *PlainReporter) Warning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s %s\n", cli.HighlightStyle.Render("Warning:"), msg)
}

func (r *PlainReporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s %s\n", lipgloss.NewStyle().Bold(true).Foreground(cli.BarRed).Render("Error:"), msg)
}
