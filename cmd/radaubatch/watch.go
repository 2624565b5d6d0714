package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
	"github.com/san-kum/radaubatch/internal/problems"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// batchDoneMsg carries the finished batch result into the bubbletea loop.
type batchDoneMsg struct {
	outcomes []ivp.Outcome
	elapsed  time.Duration
	err      error
}

type watchModel struct {
	problem string
	workers int
	mode    string
	copies  int

	ivps []batch.IVP
	opts batch.Options

	done     bool
	outcomes []ivp.Outcome
	elapsed  time.Duration
	err      error

	width, height int
	spinnerFrame  int
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

func runBatchCmd(ivps []batch.IVP, opts batch.Options) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		outcomes, err := batch.Run(ivps, opts)
		return batchDoneMsg{outcomes: outcomes, elapsed: time.Since(start), err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

type tickMsg struct{}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), runBatchCmd(m.ivps, m.opts))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		if !m.done {
			return m, tickCmd()
		}
	case batchDoneMsg:
		m.done = true
		m.outcomes = msg.outcomes
		m.elapsed = msg.elapsed
		m.err = msg.err
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Bold(true).Render("RADAUBATCH") + "  " + dim.Render(fmt.Sprintf("%s · %s · %d copies · %d workers", m.problem, m.mode, m.copies, m.workers)) + "\n\n")

	if !m.done {
		b.WriteString("  " + yellow.Render(spinnerFrames[m.spinnerFrame]) + " running...\n")
		return b.String()
	}

	if m.err != nil {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("error: "+m.err.Error()) + "\n")
		return b.String()
	}

	succeeded := 0
	steps := make([]float64, len(m.outcomes))
	for i, o := range m.outcomes {
		if o.Code == ivp.Success {
			succeeded++
		}
		steps[i] = float64(o.Counters.Steps)
	}

	b.WriteString("  " + green.Render(fmt.Sprintf("%d/%d succeeded", succeeded, len(m.outcomes))) + "  " + dim.Render(m.elapsed.Round(time.Millisecond).String()) + "\n\n")

	if len(steps) > 1 {
		graph := asciigraph.Plot(steps,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("steps taken per IVP"),
		)
		b.WriteString(graph + "\n")
	}

	b.WriteString("\n  " + white.Render("press q to quit") + "\n")
	return b.String()
}

func watchBatch(cmd *cobra.Command, args []string) error {
	problemName := args[0]
	cfg, err := resolveConfig(cmd, problemName)
	if err != nil {
		return err
	}

	spec, err := problems.Get(problemName)
	if err != nil {
		return fmt.Errorf("unknown problem %q (known: %v)", problemName, problems.Names())
	}

	ivps := buildBatch(spec, methodOf(cfg.Method), cfg)
	opts := batchOptions(cfg)

	m := watchModel{
		problem: problemName,
		workers: cfg.Workers,
		mode:    cfg.Mode,
		copies:  cfg.Copies,
		ivps:    ivps,
		opts:    opts,
		width:   80,
		height:  24,
	}

	_, err = tea.NewProgram(m).Run()
	return err
}
