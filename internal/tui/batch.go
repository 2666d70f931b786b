package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"contactcard/internal/render"
)

const (
	tickInterval = 150 * time.Millisecond
	columnGap    = "  "
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type column struct {
	header string
	width  int
}

// statusColumn is the index of STATUS in batchColumns.
const statusColumn = 1

var batchColumns = []column{
	{"#", 3},
	{"STATUS", 10},
	{"FILE", 20},
	{"NAME", 20},
	{"OUTPUT", 28},
	{"SIZE", 8},
}

type (
	tickMsg      time.Time
	jobStartMsg  render.Job
	jobDoneMsg   render.Result
	batchDoneMsg struct{}
)

type jobStepMsg struct {
	job    render.Job
	step   render.Step
	detail string
}

type recordRow struct {
	index  int
	file   string
	status Status
	name   string
	output string
	size   string
}

func (r recordRow) cells() []string {
	return []string{
		fmt.Sprintf("%03d", r.index),
		string(r.status),
		r.file,
		r.name,
		r.output,
		r.size,
	}
}

// BatchModel is the bubbletea model behind `generate` on a terminal: one
// row per input record, updated as the record moves through the pipeline.
type BatchModel struct {
	title       string
	rows        []recordRow
	byIndex     map[int]int
	tick        int
	done        bool
	interrupted bool
}

// NewBatchModel lists inputs as pending rows numbered from 1, matching
// render.Job.Index.
func NewBatchModel(title string, inputs []string) BatchModel {
	m := BatchModel{
		title:   title,
		rows:    make([]recordRow, 0, len(inputs)),
		byIndex: make(map[int]int, len(inputs)),
	}
	for i, input := range inputs {
		m.byIndex[i+1] = len(m.rows)
		m.rows = append(m.rows, recordRow{
			index:  i + 1,
			file:   filepath.Base(input),
			status: StatusPending,
		})
	}
	return m
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m BatchModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case jobStartMsg:
		m.update(msg.Index, func(r *recordRow) { r.status = StatusLoading })

	case jobStepMsg:
		m.update(msg.job.Index, func(r *recordRow) {
			if next := statusAfter(msg.step); next != "" {
				r.status = next
			}
			if msg.step == render.StepLoad {
				r.name = msg.detail
			}
		})

	case jobDoneMsg:
		m.update(msg.Index, func(r *recordRow) {
			if msg.Name != "" {
				r.name = msg.Name
			}
			if msg.Err != nil {
				r.status = StatusFailed
				r.output = msg.Err.Error()
				return
			}
			r.status = StatusGenerated
			r.output = filepath.Base(msg.OutputPath)
			r.size = humanize.Bytes(uint64(msg.Bytes))
		})

	case batchDoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			m.interrupted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *BatchModel) update(index int, fn func(*recordRow)) {
	if i, ok := m.byIndex[index]; ok {
		fn(&m.rows[i])
	}
}

// statusAfter reports the status a record enters once step has finished.
func statusAfter(step render.Step) Status {
	switch step {
	case render.StepLoad:
		return StatusVCard
	case render.StepVCard:
		return StatusEncoding
	case render.StepQR:
		return StatusRendering
	default:
		return ""
	}
}

// View satisfies the tea.Model interface.
func (m BatchModel) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(HeaderStyle.Render(m.title))
		b.WriteString("\n\n")
	}

	headers := make([]string, len(batchColumns))
	for i, col := range batchColumns {
		headers[i] = HeaderStyle.Render(pad(col.header, col.width))
	}
	b.WriteString(strings.Join(headers, columnGap))
	b.WriteByte('\n')

	for _, row := range m.rows {
		cells := row.cells()
		for i, col := range batchColumns {
			val := cells[i]
			if !m.done && row.status.Active() && runewidth.StringWidth(val) > col.width {
				val = marqueeText(val, col.width, m.tick)
			} else {
				val = TruncateWithEllipsis(val, col.width)
			}
			if i == statusColumn {
				cells[i] = StatusStyle(row.status).Render(pad(val, col.width))
			} else {
				cells[i] = pad(val, col.width)
			}
		}
		b.WriteString(strings.Join(cells, columnGap))
		b.WriteByte('\n')
	}

	generated, failed, pending := m.Counts()
	if !m.done {
		spinner := spinnerFrames[m.tick%len(spinnerFrames)]
		fmt.Fprintf(&b, "\n%s Processing %d/%d records...\n", spinner, len(m.rows)-pending, len(m.rows))
		return b.String()
	}
	fmt.Fprintf(&b, "\n%d generated, %d failed", generated, failed)
	if m.interrupted {
		b.WriteString(" (interrupted)")
	}
	b.WriteByte('\n')
	return b.String()
}

// Counts tallies rows by outcome. Rows still in flight count as neither
// generated nor pending.
func (m BatchModel) Counts() (generated, failed, pending int) {
	for _, row := range m.rows {
		switch row.status {
		case StatusGenerated:
			generated++
		case StatusFailed:
			failed++
		case StatusPending:
			pending++
		}
	}
	return generated, failed, pending
}

// Done reports whether the batch finished or the user quit.
func (m BatchModel) Done() bool {
	return m.done
}

// Interrupted reports whether the user quit before the batch finished.
func (m BatchModel) Interrupted() bool {
	return m.interrupted
}
