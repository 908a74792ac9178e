// Package port checks host port availability before the `up` command
// publishes the health port.
package port

import (
	"fmt"
	"net"
)

// Scanner checks whether ports are free by asking the OS for a listener.
// Binding is the only reliable test; parsing /proc/net or shelling out to
// lsof needs permissions a plain user may not have.
type Scanner struct{}

// NewScanner creates a Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsAvailable reports whether a TCP port can be bound on all interfaces.
// The deploy path publishes on loopback only, so binding the wildcard
// address over-approximates: a port busy on any interface is rejected.
func (s *Scanner) IsAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	defer listener.Close()
	return true
}
