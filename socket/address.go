package socket

import (
	"fmt"
	"net"
)

// Address is a parsed socket endpoint: IPv4 or IPv6 host, port, and (for
// IPv6) the zone/scope-id the original's SocketAddress::scope() preserves.
// Grounded on original_source/rs-core/net.hpp's SocketAddress, expressed
// over Go's net.IP rather than reimplementing raw sockaddr byte layouts.
type Address struct {
	IP   net.IP
	Port uint16
	Zone string // IPv6 scope id, e.g. "eth0" or "5"; empty for IPv4
}

// ParseAddress parses "host:port" (IPv4, "[ipv6]:port", or
// "[ipv6%zone]:port") into an Address.
func ParseAddress(s string) (Address, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Address{}, err
	}
	var port uint16
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return Address{}, fmt.Errorf("socket: invalid port %q: %w", portStr, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return Address{}, fmt.Errorf("socket: invalid address %q", host)
	}
	zone := ""
	if i := indexZone(host); i >= 0 {
		zone = host[i+1:]
	}
	return Address{IP: ip, Port: port, Zone: zone}, nil
}

func indexZone(host string) int {
	for i := 0; i < len(host); i++ {
		if host[i] == '%' {
			return i
		}
	}
	return -1
}

// IsIPv4 reports whether the address holds a 4-byte (or 4-in-6) address.
func (a Address) IsIPv4() bool { return a.IP.To4() != nil }

func (a Address) String() string {
	host := a.IP.String()
	if a.Zone != "" {
		host += "%" + a.Zone
	}
	return net.JoinHostPort(host, fmt.Sprintf("%d", a.Port))
}

// TCPAddr converts to a net.TCPAddr.
func (a Address) TCPAddr() *net.TCPAddr {
	return &net.TCPAddr{IP: a.IP, Port: int(a.Port), Zone: a.Zone}
}

// UDPAddr converts to a net.UDPAddr.
func (a Address) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: a.IP, Port: int(a.Port), Zone: a.Zone}
}

// AddressFromTCP converts a net.TCPAddr into an Address.
func AddressFromTCP(a *net.TCPAddr) Address {
	if a == nil {
		return Address{}
	}
	return Address{IP: a.IP, Port: uint16(a.Port), Zone: a.Zone}
}
