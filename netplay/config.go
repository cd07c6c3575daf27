package netplay

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	defaultServerHost    = "mm.riptide.gg"
	defaultServerHostDev = "mm2.riptide.gg"
	defaultServerPort    = 43113

	defaultPortBase  = 41000
	defaultPortCount = 15
)

// Config carries the engine's network knobs. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// ServerHost overrides the matchmaking server hostname. When empty the
	// host is picked from AppVersion: versions containing "dev" target the
	// development server.
	ServerHost string `yaml:"server_host" validate:"omitempty,hostname|ip"`
	ServerPort uint16 `yaml:"server_port" validate:"required"`

	// PortBase and PortCount define the candidate range of local ports tried
	// when binding the transport. PortOverride, when non-zero, replaces the
	// range with that single port.
	PortBase     uint16 `yaml:"port_base" validate:"required"`
	PortCount    int    `yaml:"port_count" validate:"required,min=1"`
	PortOverride uint16 `yaml:"port_override"`

	// LANOverride replaces the detected LAN-visible IP with a manually
	// configured one.
	LANOverride string `yaml:"lan_override" validate:"omitempty,ip"`

	// AppVersion is reported to the server with every ticket.
	AppVersion string `yaml:"app_version" validate:"required"`
}

// DefaultConfig returns the production configuration for the given client
// version.
func DefaultConfig(appVersion string) Config {
	return Config{
		ServerPort: defaultServerPort,
		PortBase:   defaultPortBase,
		PortCount:  defaultPortCount,
		AppVersion: appVersion,
	}
}

// Validate checks the configuration for structural problems.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

func (c Config) serverHost() string {
	if c.ServerHost != "" {
		return c.ServerHost
	}
	if strings.Contains(c.AppVersion, "dev") {
		return defaultServerHostDev
	}
	return defaultServerHost
}

// candidatePorts returns the local ports to trial-bind, in order. The range
// is predictable on purpose: reusing the same ports improves the odds that a
// NAT mapping punched against the matchmaking server stays usable for the
// opponent connection.
func (c Config) candidatePorts() []uint16 {
	if c.PortOverride != 0 {
		return []uint16{c.PortOverride}
	}

	ports := make([]uint16, 0, c.PortCount)
	for i := 0; i < c.PortCount; i++ {
		ports = append(ports, c.PortBase+uint16(i))
	}
	return ports
}
