package export

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/observability"
)

// ErrBusy is returned when an export is triggered while one is in flight.
var ErrBusy = errors.New(errors.ErrCodeExportBusy, "an export is already in progress")

// State is the exporter's state.
type State int

const (
	Idle State = iota
	Exporting
)

func (s State) String() string {
	if s == Exporting {
		return "exporting"
	}
	return "idle"
}

// Notifier receives user-visible failure signals.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(err error)

// Notify calls f(err).
func (f NotifierFunc) Notify(err error) { f(err) }

type discardNotifier struct{}

func (discardNotifier) Notify(error) {}

// Result is a delivered export. It is not retained by the Exporter.
type Result struct {
	Delivery
	Request  Request
	Data     []byte
	Duration time.Duration
}

// Outcome is what an asynchronous export reports.
type Outcome struct {
	Result Result
	Err    error
}

// Exporter runs capture and delivery, one at a time.
type Exporter struct {
	capturer Capturer
	sink     Sink
	notifier Notifier
	logger   *log.Logger

	busy atomic.Bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithNotifier sets the failure notifier.
func WithNotifier(n Notifier) Option {
	return func(e *Exporter) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExporter returns an idle exporter. A nil capturer means [Rasterizer].
func NewExporter(c Capturer, sink Sink, opts ...Option) *Exporter {
	if c == nil {
		c = Rasterizer{}
	}
	e := &Exporter{
		capturer: c,
		sink:     sink,
		notifier: discardNotifier{},
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State reports whether an export is in flight.
func (e *Exporter) State() State {
	if e.busy.Load() {
		return Exporting
	}
	return Idle
}

// Export captures s and delivers it. If an export is already running it
// returns ErrBusy at once and captures nothing. Failures are passed to the
// notifier before being returned; either way the exporter is idle again
// when Export returns.
func (e *Exporter) Export(ctx context.Context, s compose.Surface) (Result, error) {
	if !e.acquire(ctx) {
		return Result{}, ErrBusy
	}
	defer e.busy.Store(false)
	return e.run(ctx, s)
}

// Trigger starts an export in the background. It returns false, and no
// channel, when an export is already running. The channel receives exactly
// one Outcome.
func (e *Exporter) Trigger(ctx context.Context, s compose.Surface) (<-chan Outcome, bool) {
	if !e.acquire(ctx) {
		return nil, false
	}
	ch := make(chan Outcome, 1)
	go func() {
		defer e.busy.Store(false)
		res, err := e.run(ctx, s)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch, true
}

func (e *Exporter) acquire(ctx context.Context) bool {
	if e.busy.CompareAndSwap(false, true) {
		return true
	}
	e.logger.Debug("export already in progress, ignoring trigger")
	observability.Export().OnExportBusy(ctx)
	return false
}

func (e *Exporter) run(ctx context.Context, s compose.Surface) (res Result, err error) {
	start := time.Now()
	observability.Export().OnExportStart(ctx)
	defer func() {
		res.Duration = time.Since(start)
		observability.Export().OnExportComplete(ctx, res.Name, res.Duration, err)
		if err != nil {
			e.logger.Error("export failed", "error", err)
			e.notifier.Notify(err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeExportCapture, err, "export cancelled before capture")
	}

	req, err := NewRequest(s.Width)
	if err != nil {
		return Result{}, err
	}
	e.logger.Debug("capturing", "width", req.Width, "height", req.Height, "scale", req.Scale)

	data, err := e.capturer.Capture(ctx, s, req)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeExportCapture, err, "capture")
		}
		return Result{}, err
	}

	d, err := e.sink.Deliver(ctx, data)
	if err != nil {
		return Result{}, err
	}
	e.logger.Info("exported thumbnail", "file", d.Name, "bytes", len(data))
	return Result{Delivery: d, Request: req, Data: data}, nil
}
