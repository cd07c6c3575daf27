package netplay

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCandidatePorts(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []uint16
	}{
		{
			name: "default range",
			cfg:  Config{PortBase: 41000, PortCount: 3},
			want: []uint16{41000, 41001, 41002},
		},
		{
			name: "override collapses the range",
			cfg:  Config{PortBase: 41000, PortCount: 15, PortOverride: 50123},
			want: []uint16{50123},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.candidatePorts()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("candidatePorts() (- want, + got): %s", diff)
			}
		})
	}
}

func TestLANAddressOverride(t *testing.T) {
	server := netip.MustParseAddrPort("203.0.113.1:43113")
	got, err := lanAddress(server, 41003, "10.0.0.5")
	if err != nil {
		t.Fatalf("lanAddress() error = %v", err)
	}
	if got != "10.0.0.5:41003" {
		t.Errorf("lanAddress() = %q, want %q", got, "10.0.0.5:41003")
	}
}

func TestLANAddressDetected(t *testing.T) {
	// A connected UDP socket never sends anything, so any routable address
	// works; the OS just has to pick an interface for it.
	server := netip.MustParseAddrPort("203.0.113.1:43113")
	got, err := lanAddress(server, 41000, "")
	if err != nil {
		t.Skipf("no route for interface discovery: %v", err)
	}

	addrPort, parseErr := netip.ParseAddrPort(got)
	if parseErr != nil {
		t.Fatalf("lanAddress() = %q, not an addr:port", got)
	}
	if addrPort.Port() != 41000 {
		t.Errorf("lanAddress() port = %d, want 41000", addrPort.Port())
	}
}

func TestServerHostSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "explicit host wins",
			cfg:  Config{ServerHost: "mm.example.org", AppVersion: "3.5.1-dev"},
			want: "mm.example.org",
		},
		{
			name: "dev version targets the dev server",
			cfg:  Config{AppVersion: "3.5.1-dev"},
			want: defaultServerHostDev,
		},
		{
			name: "release version targets production",
			cfg:  Config{AppVersion: "3.5.1"},
			want: defaultServerHost,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.serverHost(); got != tt.want {
				t.Errorf("serverHost() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig("3.5.1")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	cfg.AppVersion = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil, want missing app version failure")
	}
}
