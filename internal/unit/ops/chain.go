package ops

import "github.com/eykd/unitree-go/internal/unit"

// Chain composes several commands into one unit of work. Each step runs
// against the state produced by the previous step; the first denial or
// error aborts the remaining steps and Run returns the state the chain
// started from.
//
//	st, err := ops.NewChain(h).RemoveUnit(id).InsertUnit(nodes, pos).Run()
type Chain struct {
	host   unit.Host
	staged *stagedHost
	err    error
}

// NewChain starts a chain on the current state of h.
func NewChain(h unit.Host) *Chain {
	return &Chain{host: h, staged: &stagedHost{Host: h, state: h.State()}}
}

// stagedHost presents the chain's intermediate state to each step and
// records denials while forwarding them to the real host.
type stagedHost struct {
	unit.Host
	state  unit.State
	denied bool
	code   string
}

func (s *stagedHost) State() unit.State { return s.state }

func (s *stagedHost) Emit(event string, payload unit.ErrorEvent) {
	if event == unit.EventError {
		s.denied = true
		if s.code != "" {
			payload.Code = s.code
		}
	}
	payload.Editor = s.Host
	s.Host.Emit(event, payload)
}

// ReportAs makes denials raised by later steps carry code instead of the
// step's own code.
func (c *Chain) ReportAs(code string) *Chain {
	c.staged.code = code
	return c
}

// Then appends an arbitrary step.
func (c *Chain) Then(step func(h unit.Host) (unit.State, error)) *Chain {
	if c.err != nil || c.staged.denied {
		return c
	}
	st, err := step(c.staged)
	if err != nil {
		c.err = err
		return c
	}
	if !c.staged.denied {
		c.staged.state = st
	}
	return c
}

// RemoveUnit appends a RemoveUnit step.
func (c *Chain) RemoveUnit(ids ...string) *Chain {
	return c.Then(func(h unit.Host) (unit.State, error) {
		return RemoveUnit(h, ids...), nil
	})
}

// InsertUnit appends an InsertUnit step.
func (c *Chain) InsertUnit(units []*unit.Node, pos *unit.Position) *Chain {
	return c.Then(func(h unit.Host) (unit.State, error) {
		return InsertUnit(h, units, pos)
	})
}

// SelectUnit appends a SelectUnit step.
func (c *Chain) SelectUnit(id string) *Chain {
	return c.Then(func(h unit.Host) (unit.State, error) {
		return SelectUnit(h, id), nil
	})
}

// Run returns the final state, or the starting state when any step was
// denied or failed.
func (c *Chain) Run() (unit.State, error) {
	if c.err != nil {
		return c.host.State(), c.err
	}
	if c.staged.denied {
		return c.host.State(), nil
	}
	return c.staged.state, nil
}
