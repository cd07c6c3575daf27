package netplay

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/codecat/go-enet"
	"go.uber.org/zap"
)

var (
	ErrSocketBind       = errors.New("could not bind a local port for the transport")
	ErrNoAvailablePeers = errors.New("no peer slot available for the server connection")
	ErrUnableToConnect  = errors.New("could not connect to matchmaking server")
	ErrServerDisconnect = errors.New("matchmaking server disconnected")
	ErrReceiveTimeout   = errors.New("no response from matchmaking server")
	ErrDeserialize      = errors.New("could not decode server response")

	// errSearchAbandoned is returned from receive when the coordinator has
	// superseded this generation. It is a cooperative stop, never surfaced
	// to the user.
	errSearchAbandoned = errors.New("search abandoned")
)

const (
	// The transport is polled in fixed slices so a superseding reset is
	// observed within one slice rather than a full receive window.
	serviceSlice = 250 * time.Millisecond

	connectSlice       = 500 * time.Millisecond
	connectAttempts    = 20
	terminateTimeout   = 3 * time.Second
	transportPeerLimit = 1
	transportChannels  = 3

	// All protocol messages travel on channel 0.
	reliableChannel = 0
)

// serverConn is a single-peer connection to the matchmaking server. The
// worker owns exactly one per generation; tests substitute fakes.
type serverConn interface {
	// Receive waits for one message payload, polling in serviceSlice
	// increments for at most timeout (rounds up to one slice). It returns
	// ErrServerDisconnect when the peer drops, ErrReceiveTimeout when the
	// window passes quietly, and errSearchAbandoned as soon as abandoned()
	// reports true.
	Receive(timeout time.Duration, abandoned func() bool) ([]byte, error)

	// SendReliable broadcasts a payload on the reliable channel.
	SendReliable(data []byte) error

	// Terminate requests a graceful disconnect, waits up to
	// terminateTimeout for the acknowledgment, then forces the disconnect.
	Terminate()
}

// dialFunc produces a connected transport and the LAN-visible address chosen
// for it. Extracted so the worker flow can be exercised without a live enet
// stack.
type dialFunc func(logger *zap.Logger, cfg Config) (serverConn, string, error)

var enetInit sync.Once

// transportHost and transportPeer narrow the enet surface the connection
// touches so the polling paths can be exercised without a live enet stack.
// enet.Host and enet.Peer satisfy them.
type transportHost interface {
	Service(timeout uint32) enet.Event
	Destroy()
}

type transportPeer interface {
	SendBytes(data []byte, channelID uint8, flags enet.PacketFlags) error
	Disconnect(data uint32)
	DisconnectNow(data uint32)
}

// enetConn wraps a connected ENet host with a single server peer.
type enetConn struct {
	logger *zap.Logger
	host   transportHost
	peer   transportPeer
}

// dialMatchmaking resolves the server, binds a local candidate port, and
// completes the ENet connect handshake. On success it also reports the
// LAN-visible address tied to the bound port.
func dialMatchmaking(logger *zap.Logger, cfg Config) (serverConn, string, error) {
	enetInit.Do(func() {
		enet.Initialize()
	})

	server, err := resolveServer(cfg.serverHost(), cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	host, port, err := bindHost(logger, cfg.candidatePorts())
	if err != nil {
		return nil, "", err
	}

	lanAddr, err := lanAddress(server, port, cfg.LANOverride)
	if err != nil {
		host.Destroy()
		return nil, "", err
	}

	peer, err := host.Connect(enet.NewAddress(server.Addr().String(), server.Port()), transportChannels, 0)
	if err != nil {
		host.Destroy()
		return nil, "", fmt.Errorf("%w: %v", ErrNoAvailablePeers, err)
	}

	if !awaitConnectAck(logger, host) {
		host.Destroy()
		return nil, "", ErrUnableToConnect
	}

	logger.Info("Connected to matchmaking server",
		zap.String("server", server.String()),
		zap.Uint16("local_port", port))
	return &enetConn{logger: logger, host: host, peer: peer}, lanAddr, nil
}

// awaitConnectAck drains host events until the server acknowledges the
// connect, for at most connectAttempts slices. Anything else that shows up
// during this phase is logged and ignored; stray packets still own C memory
// and must be destroyed.
func awaitConnectAck(logger *zap.Logger, host transportHost) bool {
	for attempt := 0; attempt < connectAttempts; attempt++ {
		ev := host.Service(uint32(connectSlice.Milliseconds()))
		switch ev.GetType() {
		case enet.EventConnect:
			return true

		case enet.EventNone:
			// Keep waiting.

		case enet.EventReceive:
			logger.Warn("Received unexpected packet in client initialization")
			ev.GetPacket().Destroy()

		default:
			logger.Warn("Received unexpected event in client initialization",
				zap.Int("event_type", int(ev.GetType())))
		}
	}
	return false
}

// bindHost trial-binds the candidate ports in order and returns the first
// host that sticks, along with its port.
func bindHost(logger *zap.Logger, ports []uint16) (enet.Host, uint16, error) {
	for _, port := range ports {
		host, err := enet.NewHost(enet.NewListenAddress(port), transportPeerLimit, transportChannels, 0, 0)
		if err != nil {
			logger.Debug("Candidate port unavailable", zap.Uint16("port", port), zap.Error(err))
			continue
		}
		return host, port, nil
	}
	return nil, 0, ErrSocketBind
}

func (c *enetConn) Receive(timeout time.Duration, abandoned func() bool) ([]byte, error) {
	attempts := int(timeout / serviceSlice)
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if abandoned != nil && abandoned() {
			return nil, errSearchAbandoned
		}

		ev := c.host.Service(uint32(serviceSlice.Milliseconds()))
		switch ev.GetType() {
		case enet.EventDisconnect:
			return nil, ErrServerDisconnect

		case enet.EventReceive:
			packet := ev.GetPacket()
			data := append([]byte(nil), packet.GetData()...)
			packet.Destroy()
			if !utf8.Valid(data) {
				return nil, fmt.Errorf("%w: payload is not utf-8 text", ErrDeserialize)
			}
			return data, nil

		case enet.EventNone:
			// Quiet slice, keep polling.

		default:
			c.logger.Warn("Received unexpected event while waiting for response",
				zap.Int("event_type", int(ev.GetType())))
		}
	}

	return nil, ErrReceiveTimeout
}

func (c *enetConn) SendReliable(data []byte) error {
	return c.peer.SendBytes(data, reliableChannel, enet.PacketFlagReliable)
}

func (c *enetConn) Terminate() {
	c.peer.Disconnect(0)

	attempts := int(terminateTimeout / serviceSlice)
	for attempt := 0; attempt < attempts; attempt++ {
		ev := c.host.Service(uint32(serviceSlice.Milliseconds()))
		switch ev.GetType() {
		case enet.EventDisconnect:
			c.host.Destroy()
			return

		case enet.EventReceive:
			// Messages flushed during teardown still own C memory.
			ev.GetPacket().Destroy()
		}
	}

	// The server never acknowledged; force the disconnect so shutdown
	// stays bounded.
	c.peer.DisconnectNow(0)
	c.host.Destroy()
}
