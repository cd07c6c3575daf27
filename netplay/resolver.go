package netplay

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
)

var (
	ErrServerLookup      = errors.New("could not resolve matchmaking server")
	ErrNoValidServerAddr = errors.New("no usable address for matchmaking server")
	ErrLANLookup         = errors.New("could not determine LAN address")
)

// resolveServer resolves the matchmaking host to a single address. The
// transport only speaks IPv4, so IPv6-only resolution counts as no candidate.
func resolveServer(host string, port uint16) (netip.AddrPort, error) {
	ips, err := net.LookupIP(host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w: %v", ErrServerLookup, err)
	}

	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			addr, ok := netip.AddrFromSlice(v4)
			if !ok {
				continue
			}
			return netip.AddrPortFrom(addr, port), nil
		}
	}

	return netip.AddrPort{}, ErrNoValidServerAddr
}

// lanAddress reports the address the local machine is reachable at from
// inside its own network, paired with the transport's chosen port. A
// throwaway UDP socket is "connected" to the server purely so the OS picks
// the outbound interface; no packets are sent. An override from config
// substitutes the IP wholesale.
func lanAddress(server netip.AddrPort, port uint16, override string) (string, error) {
	if override != "" {
		return fmt.Sprintf("%s:%d", override, port), nil
	}

	conn, err := net.DialUDP("udp4", nil, net.UDPAddrFromAddrPort(server))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLANLookup, err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", ErrLANLookup
	}

	return fmt.Sprintf("%s:%d", local.IP, port), nil
}
