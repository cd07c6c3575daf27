package netplay

import (
	"testing"

	"github.com/codecat/go-enet"
	"go.uber.org/zap"
)

type fakePacket struct {
	data      []byte
	destroyed bool
}

func (p *fakePacket) Destroy()                   { p.destroyed = true }
func (p *fakePacket) GetData() []byte            { return p.data }
func (p *fakePacket) GetFlags() enet.PacketFlags { return 0 }

type fakeEvent struct {
	kind   enet.EventType
	packet *fakePacket
}

func (e *fakeEvent) GetType() enet.EventType { return e.kind }
func (e *fakeEvent) GetPeer() enet.Peer      { return nil }
func (e *fakeEvent) GetChannelID() uint8     { return 0 }
func (e *fakeEvent) GetData() uint32         { return 0 }
func (e *fakeEvent) GetPacket() enet.Packet  { return e.packet }

// fakeHost plays back a scripted event sequence; once the script runs out
// every Service call reports a quiet slice.
type fakeHost struct {
	events    []*fakeEvent
	destroyed bool
}

func (h *fakeHost) Service(timeout uint32) enet.Event {
	if len(h.events) == 0 {
		return &fakeEvent{kind: enet.EventNone}
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev
}

func (h *fakeHost) Destroy() { h.destroyed = true }

type fakePeer struct {
	sent   [][]byte
	polite int
	forced int
}

func (p *fakePeer) SendBytes(data []byte, channelID uint8, flags enet.PacketFlags) error {
	p.sent = append(p.sent, data)
	return nil
}

func (p *fakePeer) Disconnect(data uint32)    { p.polite++ }
func (p *fakePeer) DisconnectNow(data uint32) { p.forced++ }

func TestTerminateGracefulDisconnect(t *testing.T) {
	stray := &fakePacket{data: []byte(`{"type":"get-ticket-resp"}`)}
	host := &fakeHost{events: []*fakeEvent{
		{kind: enet.EventReceive, packet: stray},
		{kind: enet.EventDisconnect},
	}}
	peer := &fakePeer{}
	conn := &enetConn{logger: zap.NewNop(), host: host, peer: peer}

	conn.Terminate()

	if peer.polite != 1 {
		t.Errorf("Disconnect calls = %d, want 1", peer.polite)
	}
	if peer.forced != 0 {
		t.Errorf("DisconnectNow calls = %d, want 0 on the graceful path", peer.forced)
	}
	if !host.destroyed {
		t.Error("host was not destroyed")
	}
	if !stray.destroyed {
		t.Error("packet flushed during teardown was not destroyed")
	}
}

func TestTerminateForcesDisconnectWhenUnacknowledged(t *testing.T) {
	host := &fakeHost{}
	peer := &fakePeer{}
	conn := &enetConn{logger: zap.NewNop(), host: host, peer: peer}

	conn.Terminate()

	if peer.polite != 1 {
		t.Errorf("Disconnect calls = %d, want 1", peer.polite)
	}
	if peer.forced != 1 {
		t.Errorf("DisconnectNow calls = %d, want 1 after the drain window", peer.forced)
	}
	if !host.destroyed {
		t.Error("host was not destroyed")
	}
}

func TestAwaitConnectAck(t *testing.T) {
	stray := &fakePacket{data: []byte("early")}
	host := &fakeHost{events: []*fakeEvent{
		{kind: enet.EventNone},
		{kind: enet.EventReceive, packet: stray},
		{kind: enet.EventConnect},
	}}

	if !awaitConnectAck(zap.NewNop(), host) {
		t.Fatal("awaitConnectAck() = false, want true")
	}
	if !stray.destroyed {
		t.Error("packet received before the connect ack was not destroyed")
	}
}

func TestAwaitConnectAckGivesUp(t *testing.T) {
	if awaitConnectAck(zap.NewNop(), &fakeHost{}) {
		t.Error("awaitConnectAck() = true on a quiet host, want false")
	}
}
