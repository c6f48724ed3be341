package pointerflow

import (
	"fmt"
	"os"
	"time"

	"github.com/kataras/golog"
)

// DefaultMaxDepth is the default limit on nested dispatches.
const DefaultMaxDepth = 16

// EnvVar selects production mode when set to "production".
const EnvVar = "POINTERFLOW_ENV"

// Config configures a Processor.
type Config struct {
	// Production suppresses failure reports.
	Production bool
	// Debug logs per-dispatch timing at debug level.
	Debug bool
	// MaxDepth caps nested dispatches. Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives failure reports. Nil means a clone of the package logger.
	Logger *golog.Logger
}

// DefaultConfig returns the configuration used by New. Production is taken
// from the POINTERFLOW_ENV environment variable.
func DefaultConfig() Config {
	return Config{
		Production: os.Getenv(EnvVar) == "production",
		MaxDepth:   DefaultMaxDepth,
	}
}

// EventData is threaded through the middleware and afterware chains of one
// dispatch. Middleware annotate it in place for the ones that follow.
type EventData struct {
	Event Event
	Args  []any

	Device    DeviceType
	EventType EventType

	// IDs lists the entities affected by this batch.
	IDs []EntityID
	// Pointers lists the pointers created, updated or removed by this batch.
	Pointers []*Pointer
	// UnidentifiedPointers holds pointers not attached to any entity.
	UnidentifiedPointers []*Pointer
	// Actions collects application-level action names.
	Actions []string
}

// Middleware is one step of a chain. The zero Result continues.
type Middleware func(data *EventData, p *Processor) Result

// Handler is a Middleware or a Chain of handlers.
type Handler interface {
	flatten(dst []Middleware) []Middleware
}

func (m Middleware) flatten(dst []Middleware) []Middleware {
	if m == nil {
		return dst
	}
	return append(dst, m)
}

// Chain groups handlers so they can be registered together. Chains may nest.
type Chain []Handler

func (c Chain) flatten(dst []Middleware) []Middleware {
	for _, h := range c {
		if h != nil {
			dst = h.flatten(dst)
		}
	}
	return dst
}

// Processor runs events through an ordered middleware chain followed by an
// ordered afterware chain, and owns the state store the middleware share.
//
// Dispatch is synchronous and reentrant: a middleware may dispatch derived
// events, which run to completion before the outer dispatch continues.
// Processor is not safe for concurrent use.
type Processor struct {
	state      map[string]any
	middleware []Middleware
	afterware  []Middleware

	production bool
	debug      bool
	maxDepth   int
	depth      int
	log        *golog.Logger
	// level is the logger level to restore when debug mode is turned off.
	level golog.Level
}

// NewProcessor creates a Processor from cfg.
func NewProcessor(cfg Config) *Processor {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Clone()
	}
	p := &Processor{
		state:      make(map[string]any),
		production: cfg.Production,
		maxDepth:   cfg.MaxDepth,
		log:        cfg.Logger,
	}
	p.SetDebugMode(cfg.Debug)
	return p
}

// New creates a Processor with DefaultConfig.
func New() *Processor {
	return NewProcessor(DefaultConfig())
}

// Use appends handlers to the middleware chain.
func (p *Processor) Use(handlers ...Handler) *Processor {
	p.middleware = Chain(handlers).flatten(p.middleware)
	return p
}

// UseFunc appends plain functions to the middleware chain.
func (p *Processor) UseFunc(fns ...func(*EventData, *Processor) Result) *Processor {
	for _, fn := range fns {
		p.middleware = Middleware(fn).flatten(p.middleware)
	}
	return p
}

// UseAfter appends handlers to the afterware chain.
func (p *Processor) UseAfter(handlers ...Handler) *Processor {
	p.afterware = Chain(handlers).flatten(p.afterware)
	return p
}

// SetProduction toggles failure reporting.
func (p *Processor) SetProduction(enabled bool) *Processor {
	p.production = enabled
	return p
}

// Production reports whether failure reports are suppressed.
func (p *Processor) Production() bool { return p.production }

// SetDebugMode toggles per-dispatch timing logs. Enabling it lowers the
// processor's logger to debug level; disabling it restores the previous level.
func (p *Processor) SetDebugMode(enabled bool) *Processor {
	switch {
	case enabled && !p.debug:
		p.level = p.log.Level
		p.log.SetLevel("debug")
	case !enabled && p.debug:
		p.log.Level = p.level
	}
	p.debug = enabled
	return p
}

// Logger returns the logger failures are reported to.
func (p *Processor) Logger() *golog.Logger { return p.log }

// Depth returns the number of dispatches currently on the stack.
func (p *Processor) Depth() int { return p.depth }

// Dispatch runs ev through the middleware chain until a step aborts or
// fails, then runs every afterware once. Failures are logged unless the
// processor is in production mode. Dispatch never panics and always returns p.
func (p *Processor) Dispatch(ev Event, args ...any) *Processor {
	if ev == nil {
		return p
	}
	if p.depth >= p.maxDepth {
		p.report("dispatch", ev, fmt.Errorf("%q at depth %d: %w", ev.Type(), p.depth, ErrMaxDepth))
		return p
	}
	p.depth++
	defer func() { p.depth-- }()

	data := &EventData{Event: ev, Args: args}
	var stats dispatchStats
	start := time.Now()

	for _, m := range p.middleware {
		stats.middlewareRun++
		res := p.run(m, data)
		if res.IsContinue() {
			continue
		}
		stats.status = res.Status
		if res.IsFailed() {
			p.report("middleware", ev, res.Err)
		}
		break
	}
	stats.middlewareTime = time.Since(start)

	start = time.Now()
	for _, a := range p.afterware {
		stats.afterwareRun++
		if res := p.run(a, data); res.IsFailed() {
			p.report("afterware", ev, res.Err)
		}
	}
	stats.afterwareTime = time.Since(start)

	p.debugLog(ev, stats)
	return p
}

// Emit implements Sink by dispatching ev.
func (p *Processor) Emit(ev Event, args ...any) {
	p.Dispatch(ev, args...)
}

// HandleEvent implements Listener by dispatching ev.
func (p *Processor) HandleEvent(ev Event, args ...any) {
	p.Dispatch(ev, args...)
}

// Register adds p as a listener for each event type on target. A nil target
// means DefaultTarget.
func (p *Processor) Register(eventTypes []string, target EventTarget) *Processor {
	if target == nil {
		target = DefaultTarget
	}
	for _, t := range eventTypes {
		target.AddEventListener(t, p)
	}
	return p
}

// Unregister removes p as a listener for each event type on target. A nil
// target means DefaultTarget.
func (p *Processor) Unregister(eventTypes []string, target EventTarget) *Processor {
	if target == nil {
		target = DefaultTarget
	}
	for _, t := range eventTypes {
		target.RemoveEventListener(t, p)
	}
	return p
}

// run executes one step, converting a panic into a failed Result.
func (p *Processor) run(m Middleware, data *EventData) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail(fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()
	res = m(data, p)
	if res.IsFailed() && res.Err == nil {
		res.Err = fmt.Errorf("%s failed without an error", chainName(data))
	}
	return res
}

func chainName(data *EventData) string {
	if data.Event == nil {
		return "step"
	}
	return fmt.Sprintf("step handling %q", data.Event.Type())
}

// report logs a failure outside production.
func (p *Processor) report(stage string, ev Event, err error) {
	if p.production || err == nil {
		return
	}
	p.log.Errorf("%s %s: %v", ev.Type(), stage, err)
}
