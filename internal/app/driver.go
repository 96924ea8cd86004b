package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/screen"
)

// questionFetchedMsg carries a generator outcome back into the update loop.
type questionFetchedMsg struct {
	result lifecycle.Result
}

// driver adapts the lifecycle controller to the screens. Generation runs
// in a tea.Cmd; its result comes back as questionFetchedMsg and is applied
// on the update goroutine.
type driver struct {
	ctrl   *lifecycle.Controller
	gen    questiongen.Generator
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

var _ screen.Driver = (*driver)(nil)
var _ screen.NoticeProvider = (*driver)(nil)

func newDriver(ctx context.Context, gen questiongen.Generator, logger *slog.Logger) *driver {
	return &driver{
		ctrl:   lifecycle.New(lifecycle.WithLogger(logger)),
		gen:    gen,
		ctx:    ctx,
		logger: logger,
	}
}

func (d *driver) Snapshot() lifecycle.Snapshot {
	return d.ctrl.Snapshot()
}

// Notice reports the generator's caveat for the running session's topic.
func (d *driver) Notice() string {
	return questiongen.Notice(d.gen, d.ctrl.Session().Topic)
}

func (d *driver) Start(grade quiz.Grade, topic quiz.Topic) tea.Cmd {
	return d.fetch(d.ctrl.Start(grade, topic))
}

func (d *driver) SelectOption(idx int) tea.Cmd {
	d.refused(d.ctrl.SelectOption(idx))
	return nil
}

func (d *driver) Confirm() tea.Cmd {
	d.refused(d.ctrl.Confirm())
	return nil
}

func (d *driver) Advance() tea.Cmd {
	return d.fetch(d.ctrl.Advance())
}

func (d *driver) Retry() tea.Cmd {
	return d.fetch(d.ctrl.Retry())
}

func (d *driver) Abort() tea.Cmd {
	d.stop()
	d.ctrl.Abort()
	return nil
}

// resolve applies a fetched result. Results of superseded requests are
// dropped by the controller.
func (d *driver) resolve(res lifecycle.Result) {
	d.ctrl.Resolve(res)
}

// fetch returns the command that runs req against the generator. Any
// request still in flight is cancelled first; its result would be stale.
func (d *driver) fetch(req lifecycle.Request, err error) tea.Cmd {
	if d.refused(err) {
		return nil
	}
	d.stop()

	ctx, cancel := context.WithCancel(d.ctx)
	d.cancel = cancel
	gen := d.gen
	return func() tea.Msg {
		return questionFetchedMsg{result: lifecycle.Fetch(ctx, gen, req)}
	}
}

// stop cancels the in-flight request, if any.
func (d *driver) stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *driver) refused(err error) bool {
	if err != nil {
		d.logger.Debug("intent refused", "error", err)
		return true
	}
	return false
}
