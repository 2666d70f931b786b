package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"contactcard/internal/render"
)

// Reporter forwards render progress to a running BatchModel.
type Reporter struct {
	send func(tea.Msg)
}

var _ render.ProgressReporter = Reporter{}

// NewReporter wraps a message sender, usually tea.Program.Send.
func NewReporter(send func(tea.Msg)) Reporter {
	return Reporter{send: send}
}

func (r Reporter) Start(job render.Job) {
	r.send(jobStartMsg(job))
}

func (r Reporter) Step(job render.Job, step render.Step, detail string) {
	r.send(jobStepMsg{job: job, step: step, detail: detail})
}

func (r Reporter) Complete(res render.Result) {
	r.send(jobDoneMsg(res))
}
