package server

import (
	"bytes"
	"fmt"
	"math/rand"
	"net"

	"github.com/rs/zerolog"

	"github.com/EquinoxAlpha/void/pkg/chat"
	"github.com/EquinoxAlpha/void/pkg/protocol"
)

// session is one connection's private state. It is mutated only by its own
// run loop and never shared.
type session struct {
	srv      *Server
	conn     net.Conn
	phase    phase
	username string
	connID   int32
	log      zerolog.Logger
}

func (s *Server) newSession(conn net.Conn) *session {
	connID := rand.Int31()
	return &session{
		srv:    s,
		conn:   conn,
		phase:  phaseHandshake,
		connID: connID,
		log: s.log.With().
			Stringer("peer", conn.RemoteAddr()).
			Int32("conn_id", connID).
			Logger(),
	}
}

// resultKind tags a handler's outcome so dispatch control flow stays apart
// from error propagation.
type resultKind int

const (
	resultContinue resultKind = iota
	resultTransition
	resultKick
	resultFatal
)

type result struct {
	kind   resultKind
	next   phase
	reason string
	err    error
}

func proceed() result              { return result{kind: resultContinue} }
func transition(next phase) result { return result{kind: resultTransition, next: next} }
func kick(reason string) result    { return result{kind: resultKick, reason: reason} }
func fatal(err error) result       { return result{kind: resultFatal, err: err} }

func fatalf(format string, args ...any) result {
	return fatal(fmt.Errorf(format, args...))
}

type handler func(*session, *bytes.Reader) result

// handlers keys the dispatch table by (phase, packet ID). Unknown IDs in a
// known phase are ignored; an unknown phase kills the connection.
var handlers = map[phase]map[int32]handler{
	phaseHandshake: {
		packetHandshake: (*session).handleHandshake,
	},
	phaseStatus: {
		packetStatusRequest: (*session).handleStatusRequest,
		packetPingRequest:   (*session).handlePing,
	},
	phaseLogin: {
		packetLoginStart:          (*session).handleLoginStart,
		packetLoginPluginResponse: (*session).handleLoginPluginResponse,
	},
	phasePlay: {
		packetKeepAliveInt:  (*session).handleKeepAliveInt,
		packetKeepAliveLong: (*session).handleKeepAliveLong,
		packetChatCommand:   (*session).handleChatCommand,
	},
}

// run reads frames in arrival order and dispatches them until the connection
// errors, a handler reports a terminal result, or the phase is closed. Each
// frame's full reply sequence is written before the next frame is read, so
// reply bursts for one connection never interleave.
func (s *session) run() {
	defer s.conn.Close()

	for s.phase != phaseClosed {
		pkt, err := protocol.ReadPacket(s.conn)
		if err != nil {
			s.log.Debug().Err(err).Msg("connection closed")
			return
		}

		res := s.dispatch(pkt)
		switch res.kind {
		case resultContinue:
		case resultTransition:
			s.phase = res.next
		case resultKick:
			s.sendKick(res.reason)
			return
		case resultFatal:
			s.log.Error().Err(res.err).Str("username", s.username).Msg("session failed")
			return
		}
	}
}

func (s *session) dispatch(pkt *protocol.Packet) result {
	table, ok := handlers[s.phase]
	if !ok {
		return fatalf("unknown connection phase %d", s.phase)
	}
	h, ok := table[pkt.ID]
	if !ok {
		s.log.Trace().
			Stringer("phase", s.phase).
			Int32("packet_id", pkt.ID).
			Msg("ignoring packet")
		return proceed()
	}
	return h(s, bytes.NewReader(pkt.Data))
}

// send writes one framed packet. net.Conn writes are unbuffered, so the
// frame is flushed to the peer before send returns.
func (s *session) send(frame []byte) error {
	_, err := s.conn.Write(frame)
	return err
}

// sendKick sends a disconnect packet with the reason and logs the terminal
// condition. It is always the session's last write.
func (s *session) sendKick(reason string) {
	frame := protocol.NewBuilder(packetDisconnect).
		String(chat.Text(reason).String()).
		Build()
	if err := s.send(frame); err != nil {
		s.log.Debug().Err(err).Msg("failed to deliver kick")
	}
	s.log.Warn().Str("username", s.username).Str("reason", reason).Msg("kicked player")
	s.phase = phaseClosed
}

// handleHandshake consumes the protocol version, address, and port, and
// moves to the client-declared next state. There is no version negotiation.
func (s *session) handleHandshake(r *bytes.Reader) result {
	version, _, err := protocol.ReadVarInt(r)
	if err != nil {
		return fatal(err)
	}
	if _, err := protocol.ReadString(r); err != nil { // server address
		return fatal(err)
	}
	if _, err := protocol.ReadUint16(r); err != nil { // server port
		return fatal(err)
	}
	nextState, _, err := protocol.ReadVarInt(r)
	if err != nil {
		return fatal(err)
	}

	s.log.Debug().
		Int32("protocol_version", version).
		Int32("next_state", nextState).
		Msg("handshake")
	return transition(phase(nextState))
}
