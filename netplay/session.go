// Package netplay implements the matchmaking session engine: it negotiates a
// match assignment with the matchmaking server over ENet and hands the
// resulting connection parameters to the netplay session thread without ever
// blocking the caller.
package netplay

import (
	"errors"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/riptide-gg/netplay/api"
	"github.com/riptide-gg/netplay/netplay/mmp"
	"github.com/riptide-gg/netplay/user"
)

// MatchSearchSettings selects which queue to enter. ConnectCode narrows a
// direct-connect search to a specific opponent; it is ignored elsewhere.
type MatchSearchSettings struct {
	Mode        mmp.PlayMode
	ConnectCode string
}

// Client coordinates match searches. The caller side only ever performs
// non-blocking reads; each FindMatch spawns one worker goroutine that owns
// the entire flow for its generation.
//
// A new search replaces the whole generation of handoff cells. A worker from
// a previous search holds only the old cells; it notices the swap at its next
// poll boundary, tears down its transport and exits without touching the new
// generation.
type Client struct {
	logger *zap.Logger
	cfg    Config
	users  *user.Manager
	api    *api.Client

	gen atomic.Pointer[generation]

	// dial is swapped out by tests; production always uses dialMatchmaking.
	dial dialFunc
}

// NewClient builds a session coordinator. The identity manager and reporting
// client are shared handles; the engine never mutates them beyond the
// latest-version side channel.
func NewClient(logger *zap.Logger, cfg Config, users *user.Manager, apiClient *api.Client) *Client {
	c := &Client{
		logger: logger,
		cfg:    cfg,
		users:  users,
		api:    apiClient,
		dial:   dialMatchmaking,
	}
	c.gen.Store(newGeneration(StateIdle))
	return c
}

// FindMatch starts a new search. Any in-flight search is abandoned: its
// state is forced to Idle so the old worker stops at its next poll boundary,
// then a fresh generation is swapped in and a new worker spawned.
func (c *Client) FindMatch(search MatchSearchSettings) {
	if current := c.gen.Load(); current != nil {
		current.state.Set(StateIdle)
	}

	gen := newGeneration(StateInitializing)
	c.gen.Store(gen)

	c.logger.Info("Starting match search",
		zap.String("generation", gen.id.String()),
		zap.String("mode", search.Mode.String()))

	go c.runWorker(gen, search)
}

// Reset abandons any in-flight search and returns the client to Idle.
func (c *Client) Reset() {
	if current := c.gen.Load(); current != nil {
		current.state.Set(StateIdle)
	}
	c.gen.Store(newGeneration(StateIdle))
}

// State returns the current session state without blocking.
func (c *Client) State() SessionState {
	return c.gen.Load().state.Get()
}

// ErrorMessage returns the user-facing error for the current generation, or
// an empty string when none has been reported.
func (c *Client) ErrorMessage() string {
	return c.gen.Load().errorMessage()
}

// MatchContext returns the assigned match for the current generation, if one
// has been published.
func (c *Client) MatchContext() (*MatchContext, bool) {
	return c.gen.Load().context.Get()
}

// LocalPlayerIndex returns the local player's 0-based index, or 0 before an
// assignment exists.
func (c *Client) LocalPlayerIndex() int {
	if ctx, ok := c.MatchContext(); ok {
		return ctx.LocalPlayerIndex
	}
	return 0
}

// RemotePlayerCount returns the number of remote players in the assigned
// match, or 0 before an assignment exists.
func (c *Client) RemotePlayerCount() int {
	if ctx, ok := c.MatchContext(); ok {
		return ctx.RemotePlayerCount()
	}
	return 0
}

// PlayerName returns the display name for the player seated at the 1-based
// port, or an empty string when there is no such player.
func (c *Client) PlayerName(port int) string {
	ctx, ok := c.MatchContext()
	if !ok {
		return ""
	}
	for _, player := range ctx.Players {
		if player.Port == port {
			return player.DisplayName
		}
	}
	return ""
}

// runWorker drives the state machine for a single generation. It is the only
// writer of the generation's cells.
func (c *Client) runWorker(gen *generation, search MatchSearchSettings) {
	logger := c.logger.With(zap.String("generation", gen.id.String()))

	// True once this generation is no longer the coordinator's current one,
	// or its state has been forced back to Idle. Checked at every poll
	// slice so abandonment is observed within ~250ms.
	abandoned := func() bool {
		return c.gen.Load() != gen || gen.state.Get() == StateIdle
	}

	var conn serverConn
	var ctx *MatchContext

loop:
	for {
		switch gen.state.Get() {
		case StateInitializing:
			dialed, lanAddr, err := c.dial(logger, c.cfg)
			if err != nil {
				logger.Error("Matchmaking init failure", zap.Error(err))
				gen.setError(logger, initErrorMessage(err))
				gen.state.Set(StateErrorEncountered)
				break loop
			}
			conn = dialed

			if err := submitTicket(logger, conn, lanAddr, c.users, search, c.cfg.AppVersion, abandoned); err != nil {
				if errors.Is(err, errSearchAbandoned) {
					break loop
				}
				logger.Error("Matchmaking init failure", zap.Error(err))
				gen.setError(logger, initErrorMessage(err))
				gen.state.Set(StateErrorEncountered)
				break loop
			}

			gen.state.Set(StateMatchmaking)

		case StateMatchmaking:
			resp, err := checkTicket(logger, conn, c.users, abandoned)
			if errors.Is(err, errSearchAbandoned) {
				break loop
			}
			if err != nil {
				logger.Error("Matchmaking failure", zap.Error(err))
				gen.setError(logger, matchmakeErrorMessage(err))
				gen.state.Set(StateErrorEncountered)
				break loop
			}
			if resp == nil {
				logger.Info("No match assigned yet")
				continue
			}

			built, err := buildMatchContext(logger, resp, user.DefaultChatMessages())
			if err != nil {
				logger.Error("Matchmaking failure", zap.Error(err))
				gen.setError(logger, matchmakeErrorMessage(err))
				gen.state.Set(StateErrorEncountered)
				break loop
			}

			ctx = built
			gen.state.Set(StateOpponentConnecting)

		default:
			// Idle (abandoned), OpponentConnecting, or a terminal state:
			// the worker stops driving.
			break loop
		}
	}

	if conn != nil {
		conn.Terminate()
	}

	if ctx == nil {
		return
	}

	// For ranked matches the backend wants to know we are attempting the
	// connection. Fire and forget; the session does not depend on it.
	if ctx.IsRanked() {
		var uid, playKey string
		c.users.Get(func(info *user.Info) {
			uid = info.UID
			playKey = info.PlayKey
		})
		c.api.ReportMatchStatusAsync(uid, ctx.ID, playKey, "connecting")
	}

	logger.Info("Match assigned",
		zap.String("mid", ctx.ID),
		zap.Int("players", len(ctx.Players)),
		zap.Bool("is_host", ctx.IsHost))

	gen.setContext(logger, ctx)
}
