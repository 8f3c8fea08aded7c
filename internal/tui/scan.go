package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/scanner"
)

// Messages
type resultMsg struct {
	result model.ScanResult
}

type doneMsg struct{}

// scanModel shows a scan as it runs: a progress bar and the newest rows of the
// results table, older rows cropped from the top.
type scanModel struct {
	plan      scanner.Plan
	total     int
	collector *scanner.Collector
	results   <-chan model.ScanResult
	cancel    context.CancelFunc
	spinner   spinner.Model
	progress  progress.Model
	rows      int
	done      bool
	cancelled bool
}

func newScanModel(plan scanner.Plan, results <-chan model.ScanResult, cancel context.CancelFunc, rows int) scanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(Primary)

	total := plan.Range.Count()
	return scanModel{
		plan:      plan,
		total:     total,
		collector: scanner.NewCollector(total),
		results:   results,
		cancel:    cancel,
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		rows:      rows,
	}
}

// Init initializes the model.
func (m scanModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForResult(m.results),
	)
}

// Update handles messages.
func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// The engine stops before its next address; keep draining until
			// the channel closes.
			if !m.cancelled {
				m.cancelled = true
				m.cancel()
			}
		}

	case tea.WindowSizeMsg:
		w := msg.Width - 30
		if w > 60 {
			w = 60
		}
		if w > 10 {
			m.progress.Width = w
		}

	case resultMsg:
		m.collector.Add(msg.result)
		return m, waitForResult(m.results)

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI. A finished scan clears itself.
func (m scanModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder

	n := m.collector.Len()
	pct := 0.0
	if m.total > 0 {
		pct = float64(n) / float64(m.total)
	}

	status := fmt.Sprintf("%s Scanning %s  %d/%d  %s online",
		m.spinner.View(),
		HighlightStyle.Render(m.plan.Range.String()),
		n, m.total,
		SuccessStyle.Render(fmt.Sprintf("%d", m.collector.OnlineCount())))
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(pct))
	sb.WriteString("\n\n")

	results := m.collector.Results()
	start := 0
	if len(results) > m.rows {
		start = len(results) - m.rows
	}
	sb.WriteString(renderTable(results[start:], start > 0))
	sb.WriteString("\n")

	if m.cancelled {
		sb.WriteString(WarningStyle.Render("Stopping after the current address..."))
	} else {
		sb.WriteString(HelpStyle.Render("Press 'q' to stop"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func waitForResult(ch <-chan model.ScanResult) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return doneMsg{}
		}
		return resultMsg{result: res}
	}
}

// RunLive scans plan with a live view and returns the results in scan order.
// A stopped scan returns what was collected before it stopped.
func RunLive(ctx context.Context, engine *scanner.Engine, plan scanner.Plan, rows int, opts ...tea.ProgramOption) ([]model.ScanResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan model.ScanResult)
	go func() {
		defer close(ch)
		for res := range engine.Scan(ctx, plan.Range, plan.Local) {
			select {
			case ch <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	final, err := tea.NewProgram(newScanModel(plan, ch, cancel, rows), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("live view: %w", err)
	}
	return final.(scanModel).collector.Results(), nil
}
