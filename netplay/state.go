package netplay

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// SessionState is the externally visible state of a matchmaking session.
// The numeric values are part of the embedding boundary and must not change.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateInitializing
	StateMatchmaking
	StateOpponentConnecting
	StateConnectionSuccess
	StateErrorEncountered
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInitializing:
		return "Initializing"
	case StateMatchmaking:
		return "Matchmaking"
	case StateOpponentConnecting:
		return "OpponentConnecting"
	case StateConnectionSuccess:
		return "ConnectionSuccess"
	case StateErrorEncountered:
		return "ErrorEncountered"
	default:
		return fmt.Sprintf("SessionState(%d)", int32(s))
	}
}

// StateCell holds a SessionState readable from any goroutine without locking.
// The worker is the only writer while a generation is live; the coordinator
// overwrites it to Idle when abandoning a generation.
type StateCell struct {
	v atomic.Int32
}

// NewStateCell returns a cell initialized to the given state.
func NewStateCell(s SessionState) *StateCell {
	c := &StateCell{}
	c.v.Store(int32(s))
	return c
}

// Set overwrites the state. There is no compare step; the last writer wins.
func (c *StateCell) Set(s SessionState) {
	c.v.Store(int32(s))
}

// Get returns the current state.
func (c *StateCell) Get() SessionState {
	return SessionState(c.v.Load())
}

// Once is a cell that holds a value set at most once. Reads after publication
// are lock-free. A second Set is a logic error; the value is dropped and the
// caller is expected to log it.
type Once[T any] struct {
	p atomic.Pointer[T]
}

// Set publishes the value. It returns false, dropping the value, when the
// cell was already set.
func (o *Once[T]) Set(value T) bool {
	return o.p.CompareAndSwap(nil, &value)
}

// Get returns the published value, if any.
func (o *Once[T]) Get() (T, bool) {
	if p := o.p.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// generation bundles the three handoff cells for a single search. A new
// FindMatch call replaces the whole bundle; an abandoned worker keeps its own
// generation alive until it exits, and never touches the replacement.
type generation struct {
	id      uuid.UUID
	state   *StateCell
	context Once[*MatchContext]
	errMsg  Once[string]
}

func newGeneration(initial SessionState) *generation {
	return &generation{
		id:    uuid.Must(uuid.NewV4()),
		state: NewStateCell(initial),
	}
}

func (g *generation) setContext(logger *zap.Logger, ctx *MatchContext) {
	if !g.context.Set(ctx) {
		logger.Warn("Match context cell already set, dropping value", zap.String("mid", ctx.ID))
	}
}

func (g *generation) setError(logger *zap.Logger, message string) {
	if !g.errMsg.Set(message) {
		logger.Warn("Error message cell already set, dropping value", zap.String("message", message))
	}
}

func (g *generation) errorMessage() string {
	msg, _ := g.errMsg.Get()
	return msg
}
