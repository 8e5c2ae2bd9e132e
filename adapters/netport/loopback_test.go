package netport

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopbackAllocatorReturnsBindablePort(t *testing.T) {
	port, err := NewLoopbackAllocator().AllocatePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)

	l, err := net.Listen("tcp", net.JoinHostPort(LoopbackHost, strconv.Itoa(port)))
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestStaticAllocator(t *testing.T) {
	port, err := StaticAllocator(8080).AllocatePort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
}
