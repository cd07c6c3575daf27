package netplay

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/riptide-gg/netplay/netplay/mmp"
	"github.com/riptide-gg/netplay/user"
)

const (
	submitReceiveWindow = 5 * time.Second
	pollReceiveWindow   = 2 * time.Second
)

// errEncodeTicket marks a ticket that could not be serialized at all, as
// opposed to a response that could not be decoded.
var errEncodeTicket = errors.New("could not encode ticket")

// submitTicket enqueues the local player on the matchmaking server. The
// connection must already be established; the ack is awaited within
// submitReceiveWindow.
func submitTicket(
	logger *zap.Logger,
	conn serverConn,
	lanAddr string,
	users *user.Manager,
	search MatchSearchSettings,
	appVersion string,
	abandoned func() bool,
) error {
	var ticketUser mmp.TicketUser
	users.Get(func(info *user.Info) {
		ticketUser = mmp.TicketUser{
			UID:         info.UID,
			PlayKey:     info.PlayKey,
			ConnectCode: info.ConnectCode,
			DisplayName: info.DisplayName,
		}
	})

	ticket := mmp.NewCreateTicket(ticketUser, mmp.TicketSearch{
		Mode:        search.Mode,
		ConnectCode: search.ConnectCode,
	}, appVersion, lanAddr)

	body, err := mmp.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("%w: %v", errEncodeTicket, err)
	}

	logger.Info("Submitting matchmaking ticket",
		zap.String("mode", search.Mode.String()),
		zap.String("lan_addr", lanAddr))

	if err := conn.SendReliable(body); err != nil {
		return fmt.Errorf("could not send ticket: %w", err)
	}

	payload, err := conn.Receive(submitReceiveWindow, abandoned)
	if err != nil {
		return err
	}

	resp, err := mmp.Decode[mmp.CreateTicketResponse](payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeserialize, err)
	}

	return resp.Validate()
}

// checkTicket polls for a match assignment. A quiet window is not an error:
// the ticket is simply still queued, and (nil, nil) tells the caller to poll
// again. A server rejection first pushes any required client version to the
// identity manager, then surfaces the server's text.
func checkTicket(
	logger *zap.Logger,
	conn serverConn,
	users *user.Manager,
	abandoned func() bool,
) (*mmp.GetTicketResponse, error) {
	payload, err := conn.Receive(pollReceiveWindow, abandoned)
	if errors.Is(err, ErrReceiveTimeout) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	resp, err := mmp.Decode[mmp.GetTicketResponse](payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}

	if err := resp.Validate(); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		if resp.LatestVersion != "" {
			logger.Warn("Server requires a newer client version",
				zap.String("latest_version", resp.LatestVersion))
			users.OverwriteLatestVersion(resp.LatestVersion)
		}
		return nil, &mmp.ServerError{Message: resp.Error}
	}

	return resp, nil
}
