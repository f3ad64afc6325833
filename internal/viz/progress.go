package viz

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/escapetime/internal/render"
)

const barWidth = 40

// RowMsg reports that a row finished.
type RowMsg struct {
	Row    int
	Height int
}

// DoneMsg carries the outcome of the render.
type DoneMsg struct {
	Result *render.Result
	Err    error
}

type ProgressModel struct {
	title    string
	rows     int
	height   int
	start    time.Time
	cancel   context.CancelFunc
	canceled bool
	done     bool
	err      error
}

func NewProgressModel(title string, height int, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		title:  title,
		height: height,
		start:  time.Now(),
		cancel: cancel,
	}
}

func (m ProgressModel) Init() tea.Cmd { return nil }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// The render goroutine sends DoneMsg once it sees the cancellation.
			if !m.canceled && m.cancel != nil {
				m.cancel()
			}
			m.canceled = true
		}
	case RowMsg:
		m.rows = msg.Row + 1
		m.height = msg.Height
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) Percent() float64 {
	if m.height <= 0 {
		return 0
	}
	return float64(m.rows) / float64(m.height)
}

func (m ProgressModel) View() string {
	var sb strings.Builder

	sb.WriteString(Title.Render("rendering " + m.title))
	sb.WriteString("\n\n")
	sb.WriteString(ProgressBar(m.Percent(), barWidth))
	sb.WriteString(fmt.Sprintf(" %3.0f%%  ", m.Percent()*100))
	sb.WriteString(Subtle.Render(fmt.Sprintf("row %d/%d  %s", m.rows, m.height, time.Since(m.start).Round(time.Millisecond))))
	sb.WriteString("\n\n")

	switch {
	case m.done && m.err != nil:
		sb.WriteString(StatusError.Render("failed: " + m.err.Error()))
	case m.done:
		sb.WriteString(StatusOK.Render("done"))
	case m.canceled:
		sb.WriteString(StatusWarn.Render("canceling..."))
	default:
		sb.WriteString(KeyHint.Render("q to cancel"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// RunWithProgress renders into path while a Bubble Tea program shows row
// progress. Canceling from the keyboard cancels the render.
func RunWithProgress(ctx context.Context, r *render.Renderer, path string) (*render.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(filepath.Base(path), r.Params().Height, cancel))
	r.AddObserver(render.ObserverFunc(func(row, height int) {
		p.Send(RowMsg{Row: row, Height: height})
	}))

	var (
		result *render.Result
		err    error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err = r.RenderFile(ctx, path)
		p.Send(DoneMsg{Result: result, Err: err})
	}()

	if _, runErr := p.Run(); runErr != nil {
		cancel()
		<-done
		if err == nil {
			err = runErr
		}
		return result, err
	}

	<-done
	return result, err
}
