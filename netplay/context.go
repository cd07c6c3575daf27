package netplay

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/riptide-gg/netplay/netplay/mmp"
)

var (
	ErrNoLocalPlayer = errors.New("assignment has no local player entry")
	ErrInvalidAddr   = errors.New("invalid player address in assignment")
)

// rankedMatchIDFragment marks ranked matches by convention; match ids embed
// the mode they were created under.
const rankedMatchIDFragment = "mode.ranked"

// Player is one participant in an assigned match.
type Player struct {
	UID          string
	DisplayName  string
	ConnectCode  string
	ChatMessages []string
	Rank         mmp.PlayerRank
	IsBot        bool
	Port         int
}

// MatchContext describes an assigned match. It is built once by the
// matchmaking worker and handed to the netplay session thread, which connects
// to each address in RemoteAddrs. RemoteAddrs is aligned with Players minus
// the local player, preserving port order.
type MatchContext struct {
	ID               string
	LocalPlayerIndex int
	Players          []Player
	Stages           []mmp.Stage
	RemoteAddrs      []netip.AddrPort
	IsHost           bool
}

// IsRanked reports whether the match was assigned from the ranked queue.
func (c *MatchContext) IsRanked() bool {
	return strings.Contains(c.ID, rankedMatchIDFragment)
}

// RemotePlayerCount returns the number of participants other than the local
// player.
func (c *MatchContext) RemotePlayerCount() int {
	if len(c.Players) == 0 {
		return 0
	}
	return len(c.Players) - 1
}

// buildMatchContext validates a raw assignment and resolves it into a
// MatchContext.
//
// The roster is walked twice. The first pass finds the local player and its
// claimed external address, and normalizes chat palettes. The second pass
// picks the best reachable address for every remote player: the external
// address when its IP differs from ours or the player reported no LAN
// address, the LAN address otherwise (same external IP means same LAN, VPN
// node, or CGNAT). Any unparseable address fails the whole assignment.
func buildMatchContext(logger *zap.Logger, resp *mmp.GetTicketResponse, defaultChat []string) (*MatchContext, error) {
	ctx := &MatchContext{
		ID:     resp.MatchID,
		IsHost: resp.IsHost,
	}

	var localExternal netip.AddrPort
	foundLocal := false

	for _, player := range resp.Players {
		if player.IsLocalPlayer {
			addr, err := netip.ParseAddrPort(player.IPAddress)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidAddr, err)
			}
			localExternal = addr
			ctx.LocalPlayerIndex = player.Port - 1
			foundLocal = true
		}

		chatMessages := player.ChatMessages
		if len(chatMessages) != mmp.ChatMessageCount {
			chatMessages = defaultChat
		}

		ctx.Players = append(ctx.Players, Player{
			UID:          player.UID,
			DisplayName:  player.DisplayName,
			ConnectCode:  player.ConnectCode,
			ChatMessages: chatMessages,
			Rank:         player.Rank,
			IsBot:        player.IsBot,
			Port:         player.Port,
		})
	}

	if !foundLocal {
		return nil, ErrNoLocalPlayer
	}

	for _, player := range resp.Players {
		if player.Port-1 == ctx.LocalPlayerIndex {
			continue
		}

		addr, err := netip.ParseAddrPort(player.IPAddress)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAddr, err)
		}

		if addr.Addr() != localExternal.Addr() || player.IPAddressLAN == nil {
			ctx.RemoteAddrs = append(ctx.RemoteAddrs, addr)
			continue
		}

		lanAddr, err := netip.ParseAddrPort(*player.IPAddressLAN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAddr, err)
		}
		ctx.RemoteAddrs = append(ctx.RemoteAddrs, lanAddr)
	}

	ctx.Stages = lo.FilterMap(resp.Stages, func(id uint16, _ int) (mmp.Stage, bool) {
		stage, ok := mmp.StageFromID(id)
		if !ok {
			logger.Warn("Received unknown stage id", zap.Uint16("stage_id", id))
		}
		return stage, ok
	})

	if len(ctx.Stages) == 0 {
		ctx.Stages = mmp.DefaultStages(len(ctx.Players))
	}

	return ctx, nil
}
