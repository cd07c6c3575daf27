package netplay

import (
	"errors"

	"github.com/riptide-gg/netplay/netplay/mmp"
)

// The two phases of the flow surface different strings for the same failure
// class, so the mapping is split rather than shared. Server-reported errors
// pass through verbatim in both.

// initErrorMessage maps a failure during connect/submit to the short string
// surfaced to the player.
func initErrorMessage(err error) string {
	var serverErr *mmp.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}

	var unexpected *mmp.UnexpectedMessageError
	if errors.As(err, &unexpected) {
		return "Invalid response from mm queue"
	}

	switch {
	case errors.Is(err, ErrServerLookup):
		return "Failed to find mm server"
	case errors.Is(err, ErrNoValidServerAddr):
		return "Failed to route to mm server"
	case errors.Is(err, ErrSocketBind):
		return "Failed to create mm client"
	case errors.Is(err, ErrNoAvailablePeers), errors.Is(err, ErrUnableToConnect):
		return "Failed to start connection to mm server"
	case errors.Is(err, ErrLANLookup):
		return "Unable to determine IP addr"
	case errors.Is(err, errEncodeTicket):
		return "Failed to submit to mm queue"
	default:
		// Anything receive-shaped: timeout, disconnect, undecodable ack.
		return "Failed to join mm queue"
	}
}

// matchmakeErrorMessage maps a failure during the assignment poll to the
// short string surfaced to the player.
func matchmakeErrorMessage(err error) string {
	var serverErr *mmp.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}

	var unexpected *mmp.UnexpectedMessageError
	if errors.As(err, &unexpected) {
		return "Invalid response when getting mm status"
	}

	switch {
	case errors.Is(err, ErrServerDisconnect):
		return "Lost connection to the mm server"
	case errors.Is(err, ErrInvalidAddr), errors.Is(err, ErrNoLocalPlayer):
		return "Invalid response from mm"
	default:
		return "Failed to receive mm status"
	}
}
