package socket

import "net"

// UdpClient is a Socket over a UDP "connection" (a connected UDP socket
// fixes the peer address, per net.hpp's UdpClient).
type UdpClient struct {
	*Socket
	udp *net.UDPConn
}

// DialUDP connects a UDP socket to remote, optionally bound to local.
func DialUDP(remote Address, local *Address) (*UdpClient, error) {
	var laddr *net.UDPAddr
	if local != nil {
		laddr = local.UDPAddr()
	}
	conn, err := net.DialUDP("udp", laddr, remote.UDPAddr())
	if err != nil {
		return nil, err
	}
	return &UdpClient{Socket: NewSocket(conn), udp: conn}, nil
}
