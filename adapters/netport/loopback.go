package netport

import (
	"fmt"
	"net"

	"github.com/layer-3/walletlink/ports"
)

// LoopbackHost is the address the callback listener binds to
const LoopbackHost = "127.0.0.1"

// LoopbackAllocator asks the OS for an unused loopback TCP port
type LoopbackAllocator struct{}

// NewLoopbackAllocator creates a new loopback port allocator
func NewLoopbackAllocator() ports.PortAllocator {
	return LoopbackAllocator{}
}

// AllocatePort binds an ephemeral port, reads it back and releases it.
// The port is not reserved; another process may take it before it is bound again.
func (LoopbackAllocator) AllocatePort() (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(LoopbackHost, "0"))
	if err != nil {
		return 0, fmt.Errorf("failed to allocate loopback port: %w", err)
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address %T", l.Addr())
	}
	return addr.Port, nil
}

// StaticAllocator always returns the same port
type StaticAllocator int

// AllocatePort returns the fixed port
func (s StaticAllocator) AllocatePort() (int, error) {
	return int(s), nil
}
