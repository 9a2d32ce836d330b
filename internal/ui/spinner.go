package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// showElapsedAfter is how long a step runs before the spinner adds a timer.
const showElapsedAfter = 3 * time.Second

// Spinner animates one slow step, such as listing tags or cloning, on stderr.
// Without a terminal it prints the message once and stays quiet.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	tty     bool
	program *tea.Program
	done    chan struct{}
}

type stepModel struct {
	spinner spinner.Model
	message string
	started time.Time
	now     time.Time
	stopped bool
}

type stopMsg struct{}

func (m stepModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.stopped = true
		return m, tea.Quit
	case spinner.TickMsg:
		m.now = msg.Time
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m stepModel) View() string {
	if m.stopped {
		return ""
	}
	line := m.spinner.View() + " " + DimStyle.Render(m.message)
	if elapsed := m.now.Sub(m.started); elapsed >= showElapsedAfter {
		line += DimStyle.Render(fmt.Sprintf(" (%ds)", int(elapsed.Seconds())))
	}
	return line
}

func NewSpinner() *Spinner {
	return &Spinner{
		out: os.Stderr,
		tty: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start shows message. A second Start before Stop is ignored.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		return
	}
	if !s.tty {
		fmt.Fprintln(s.out, DimStyle.Render(message))
		return
	}

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle))
	now := time.Now()
	s.program = tea.NewProgram(
		stepModel{spinner: sp, message: message, started: now, now: now},
		tea.WithOutput(s.out),
		tea.WithInput(nil),
	)
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

// Stop clears the spinner line and waits for it to go away. It is safe to
// call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	program, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()

	if program == nil {
		return
	}
	program.Send(stopMsg{})
	<-done
}

// WithSpinnerResult runs fn under a spinner showing message.
func WithSpinnerResult[T any](message string, fn func() (T, error)) (T, error) {
	s := NewSpinner()
	s.Start(message)
	defer s.Stop()
	return fn()
}
