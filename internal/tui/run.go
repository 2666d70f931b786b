package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"contactcard/internal/render"
)

// Run shows model on out while work processes the batch on its own
// goroutine. It returns once both the program and work have finished. If
// the user quits early, cancel is called so work can stop before the next
// record.
func Run(out io.Writer, model BatchModel, cancel func(), work func(render.ProgressReporter)) error {
	p := tea.NewProgram(model, tea.WithOutput(out))
	done := make(chan struct{})

	go func() {
		defer close(done)
		// Give the program a moment to draw its first frame.
		time.Sleep(50 * time.Millisecond)

		work(NewReporter(func(msg tea.Msg) {
			p.Send(msg)
			time.Sleep(5 * time.Millisecond)
		}))

		p.Send(batchDoneMsg{})
	}()

	_, err := p.Run()
	if cancel != nil {
		cancel()
	}
	<-done
	return err
}
