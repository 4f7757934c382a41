package server

import (
	"bytes"

	"github.com/EquinoxAlpha/void/pkg/protocol"
)

// handleStatusRequest replies with the status document rendered at startup.
// The phase stays Status; the client closes the connection itself.
func (s *session) handleStatusRequest(*bytes.Reader) result {
	frame := protocol.NewBuilder(packetStatusResponse).
		String(s.srv.statusJSON).
		Build()
	if err := s.send(frame); err != nil {
		return fatal(err)
	}
	return proceed()
}

// handlePing echoes the 64-bit ping payload unchanged.
func (s *session) handlePing(r *bytes.Reader) result {
	payload, err := protocol.ReadInt64(r)
	if err != nil {
		return fatal(err)
	}
	frame := protocol.NewBuilder(packetPingResponse).
		Int64(payload).
		Build()
	if err := s.send(frame); err != nil {
		return fatal(err)
	}
	return proceed()
}
