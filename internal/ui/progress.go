package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"addrscan/internal/processor"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

const maxShownErrors = 5

type ProgressModel struct {
	total        int
	processed    int
	failed       int
	current      string
	status       string
	startTime    time.Time
	errors       []string
	progressChan <-chan processor.ProgressUpdate
	done         bool
}

type ProgressMsg processor.ProgressUpdate

type tickMsg struct{}

type doneMsg struct{}

func NewProgressModel(total int, progressChan <-chan processor.ProgressUpdate) ProgressModel {
	return ProgressModel{
		total:        total,
		startTime:    time.Now(),
		progressChan: progressChan,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return m.waitForActivity()
}

func (m ProgressModel) waitForActivity() tea.Cmd {
	ch := m.progressChan
	return func() tea.Msg {
		select {
		case update, ok := <-ch:
			if !ok {
				return doneMsg{}
			}
			return ProgressMsg(update)
		case <-time.After(100 * time.Millisecond):
			return tickMsg{}
		}
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case ProgressMsg:
		if msg.DebugMsg != "" {
			m.status = msg.DebugMsg
		}
		switch msg.Status {
		case processor.StatusProcessing:
			m.current = msg.Address
		case processor.StatusCompleted:
			m.processed++
		case processor.StatusFailed:
			m.failed++
			m.errors = append(m.errors, fmt.Sprintf("%s: %v", msg.Address, msg.Error))
			if len(m.errors) > maxShownErrors {
				m.errors = m.errors[1:]
			}
		}
		return m, m.waitForActivity()

	case tickMsg:
		return m, m.waitForActivity()

	case doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ProgressModel) finished() int {
	return m.processed + m.failed
}

func (m ProgressModel) percent() float64 {
	if m.total == 0 {
		return 100
	}
	return float64(m.finished()) / float64(m.total) * 100
}

func (m ProgressModel) View() string {
	if m.done {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2")).
			Render(fmt.Sprintf("✓ %d addresses queried, %d failed\n", m.processed, m.failed))
	}

	elapsed := time.Since(m.startTime)
	progress := m.percent()

	var eta time.Duration
	if n := m.finished(); n > 0 {
		eta = elapsed / time.Duration(n) * time.Duration(m.total-n)
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("6")).
		MarginBottom(1)

	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("1"))

	header := headerStyle.Render("Address scan")

	stats := statsStyle.Render(fmt.Sprintf(
		"Current: %s\n"+
			"Status: %s\n"+
			"Done: %d/%d addresses (%.1f%%)\n"+
			"Elapsed: %s | ETA: %s\n"+
			"Failed: %d",
		m.current,
		m.status,
		m.finished(), m.total, progress,
		elapsed.Truncate(time.Second), eta.Truncate(time.Second),
		m.failed))

	var errorSection strings.Builder
	if len(m.errors) > 0 {
		errorSection.WriteString("\n\n" + errorStyle.Render("Recent Errors:") + "\n")
		for _, err := range m.errors {
			errorSection.WriteString(errorStyle.Render("• "+err) + "\n")
		}
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n\nPress 'q' or Ctrl+C to quit",
		header, renderProgressBar(progress), stats, errorSection.String())
}

func renderProgressBar(progress float64) string {
	const width = 50
	filled := int(progress / 100 * width)
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(fmt.Sprintf("[%s] %.1f%%", bar, progress))
}

// RunProgressUI follows a batch until its progress channel closes. On a
// terminal it draws a bubbletea view on stderr; otherwise it prints one line
// per finished address.
func RunProgressUI(ctx context.Context, total int, progressChan <-chan processor.ProgressUpdate) error {
	if !isInteractiveTerminal() {
		return runSimpleProgress(ctx, os.Stderr, total, progressChan)
	}

	p := tea.NewProgram(NewProgressModel(total, progressChan), tea.WithOutput(os.Stderr))

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}

func isInteractiveTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runSimpleProgress(ctx context.Context, w io.Writer, total int, progressChan <-chan processor.ProgressUpdate) error {
	var processed, failed int
	startTime := time.Now()

	fmt.Fprintf(w, "Querying %d addresses\n", total)

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				fmt.Fprintf(w, "Done: %d queried, %d failed in %s\n",
					processed, failed, time.Since(startTime).Truncate(time.Second))
				return nil
			}

			if update.DebugMsg != "" {
				log.WithField("address", update.Address).Debug(update.DebugMsg)
			}

			switch update.Status {
			case processor.StatusFailed:
				failed++
				fmt.Fprintf(w, "Error querying %s: %v\n", update.Address, update.Error)
			case processor.StatusCompleted:
				processed++
				fmt.Fprintf(w, "Queried %s (%d txs) - %d/%d\n",
					update.Address, len(update.Info.Transactions), processed+failed, total)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
