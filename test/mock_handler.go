package test

import (
	"net"
	"sync/atomic"

	"github.com/tupyy/tpserve/internal/server"
)

// MockConnHandler implements server.ConnHandler for testing. It writes Reply
// and closes the connection.
type MockConnHandler struct {
	Reply  []byte
	served atomic.Uint64
}

// ServeConn writes the configured reply and closes conn.
func (m *MockConnHandler) ServeConn(conn net.Conn) {
	defer conn.Close()
	if len(m.Reply) > 0 {
		_, _ = conn.Write(m.Reply)
	}
	m.served.Add(1)
}

// Served returns how many connections were handled.
func (m *MockConnHandler) Served() uint64 {
	return m.served.Load()
}

// NewMockConnHandler creates a new MockConnHandler that answers with reply.
func NewMockConnHandler(reply string) *MockConnHandler {
	return &MockConnHandler{Reply: []byte(reply)}
}

// Ensure MockConnHandler implements server.ConnHandler.
var _ server.ConnHandler = (*MockConnHandler)(nil)
