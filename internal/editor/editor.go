// Package editor provides the concrete unit.Host used by the utk CLI: it
// holds the current state, resolves unit policies from a registry,
// generates unit ids and dispatches error events to subscribers.
package editor

import (
	"io"
	"reflect"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unitdef"
)

// Listener receives events emitted by commands.
type Listener func(event string, payload unit.ErrorEvent)

// Options configures an Editor. Zero fields fall back to the built-in unit
// definitions, UUIDv7 ids, depth-first flattening and a discarding logger.
type Options struct {
	Registry *unitdef.Registry
	IDs      IDGenerator
	Flatten  func(units []*unit.Node) []*unit.Node
	Logger   *log.Logger
}

// Editor is a unit.Host with a mutable current state. Reads are safe from
// any goroutine; Apply calls are serialised.
type Editor struct {
	mu        sync.RWMutex
	state     unit.State
	listeners map[string][]*subscription
	recording *[]unit.ErrorEvent

	applyMu  sync.Mutex
	registry *unitdef.Registry
	ids      IDGenerator
	flatten  func([]*unit.Node) []*unit.Node
	logger   *log.Logger
}

type subscription struct {
	fn Listener
}

// New returns an editor whose current state is st.
func New(st unit.State, opts Options) *Editor {
	if opts.Registry == nil {
		opts.Registry = unitdef.Default()
	}
	if opts.IDs == nil {
		opts.IDs = UUIDv7
	}
	if opts.Flatten == nil {
		opts.Flatten = unit.Flatten
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Editor{
		state:     unit.Normalize(st),
		listeners: make(map[string][]*subscription),
		registry:  opts.Registry,
		ids:       opts.IDs,
		flatten:   opts.Flatten,
		logger:    opts.Logger.WithPrefix("editor"),
	}
}

// State implements unit.Host.
func (e *Editor) State() unit.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// FindUnitDef implements unit.Host.
func (e *Editor) FindUnitDef(unitType string) (unit.Policy, bool) {
	return e.registry.Lookup(unitType)
}

// GenerateUnitID implements unit.Host.
func (e *Editor) GenerateUnitID() string {
	return e.ids()
}

// Flatten implements unit.Host.
func (e *Editor) Flatten(units []*unit.Node) []*unit.Node {
	return e.flatten(units)
}

// Emit implements unit.Host. Listeners run synchronously on the calling
// goroutine, in subscription order.
func (e *Editor) Emit(event string, payload unit.ErrorEvent) {
	e.mu.Lock()
	subs := slices.Clone(e.listeners[event])
	if e.recording != nil && event == unit.EventError {
		*e.recording = append(*e.recording, payload)
	}
	e.mu.Unlock()

	if event == unit.EventError {
		var id string
		if payload.Unit != nil {
			id = payload.Unit.ID
		}
		e.logger.Warn(payload.Message, "code", payload.Code, "unit", id)
	}
	for _, s := range subs {
		s.fn(event, payload)
	}
}

// On subscribes fn to event and returns a function that removes the
// subscription.
func (e *Editor) On(event string, fn Listener) (unsubscribe func()) {
	s := &subscription{fn: fn}
	e.mu.Lock()
	e.listeners[event] = append(e.listeners[event], s)
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.listeners[event] = slices.DeleteFunc(e.listeners[event], func(x *subscription) bool { return x == s })
	}
}

// Result describes the outcome of Apply.
type Result struct {
	// Changed reports whether the committed state differs from the previous
	// one.
	Changed bool
	// Events holds the error events emitted while the command ran.
	Events []unit.ErrorEvent
}

// Denied reports whether the command emitted an error event.
func (r Result) Denied() bool { return len(r.Events) > 0 }

// Apply runs a command against the editor and commits the state it returns.
// When the command fails the current state is kept and the error returned.
func (e *Editor) Apply(op string, fn func(h unit.Host) (unit.State, error)) (Result, error) {
	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	var events []unit.ErrorEvent
	e.mu.Lock()
	e.recording = &events
	prev := e.state
	e.mu.Unlock()

	next, err := fn(e)

	e.mu.Lock()
	e.recording = nil
	res := Result{Events: events}
	if err == nil {
		res.Changed = !reflect.DeepEqual(prev, next)
		e.state = next
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Debug("command failed", "op", op, "error", err)
		return res, err
	}
	e.logger.Debug("command applied", "op", op, "units", len(e.flatten(next.Units)), "changed", res.Changed)
	return res, nil
}

// Update is Apply for commands that cannot fail.
func (e *Editor) Update(op string, fn func(h unit.Host) unit.State) Result {
	res, _ := e.Apply(op, func(h unit.Host) (unit.State, error) {
		return fn(h), nil
	})
	return res
}
