package server

import (
	"bytes"
	"context"
	"encoding/binary"
	"strings"

	"github.com/EquinoxAlpha/void/pkg/protocol"
)

// Keep-alives come in a 32-bit and a 64-bit flavor depending on the client
// family; the echo must match the width of what was received.

func (s *session) handleKeepAliveInt(r *bytes.Reader) result {
	payload, err := protocol.ReadInt32(r)
	if err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetKeepAliveIntCB).Int32(payload).Build()); err != nil {
		return fatal(err)
	}
	return proceed()
}

func (s *session) handleKeepAliveLong(r *bytes.Reader) result {
	payload, err := protocol.ReadInt64(r)
	if err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetKeepAliveLongCB).Int64(payload).Build()); err != nil {
		return fatal(err)
	}
	return proceed()
}

// handleChatCommand implements the only two commands the gate understands,
// /login and /register. Anything else kicks.
func (s *session) handleChatCommand(r *bytes.Reader) result {
	command, err := protocol.ReadString(r)
	if err != nil {
		return fatal(err)
	}
	args := strings.Split(command, " ")

	switch args[0] {
	case "login":
		if len(args) != 2 {
			return kick("Invalid syntax. Usage: /login [password]")
		}
		return s.login(args[1])

	case "register":
		if len(args) != 3 {
			return kick("Invalid syntax. Usage: /register [password] [password]")
		}
		if args[1] != args[2] {
			return kick("Passwords do not match.")
		}
		return s.register(args[1])

	default:
		return kick("Invalid command.")
	}
}

func (s *session) login(password string) result {
	ok, err := s.srv.store.Authenticate(context.Background(), s.username, password)
	if err != nil {
		s.log.Error().Err(err).Msg("credential store failure")
		return kick(storeErrorReason)
	}
	if !ok {
		s.log.Warn().Str("username", s.username).Msg("has specified an incorrect password")
		return kick("Invalid password or user not registered.")
	}

	s.log.Info().Str("username", s.username).Msg("has successfully authenticated")
	if err := s.sendHandoff(); err != nil {
		return fatal(err)
	}
	// The connection stays open; the proxy migrates the client away.
	return proceed()
}

func (s *session) register(password string) result {
	ok, err := s.srv.store.Register(context.Background(), s.username, password)
	if err != nil {
		s.log.Error().Err(err).Msg("credential store failure")
		return kick(storeErrorReason)
	}
	if !ok {
		s.log.Warn().Str("username", s.username).Msg("attempted double registration")
		return kick("This user is already registered.")
	}

	s.log.Info().Str("username", s.username).Msg("has successfully registered")
	if err := s.sendHandoff(); err != nil {
		return fatal(err)
	}
	return proceed()
}

// sendHandoff emits the BungeeCord plugin message that instructs the proxy
// to move this player to the configured backend.
func (s *session) sendHandoff() error {
	frame := protocol.NewBuilder(packetPluginMessage).
		String("BungeeCord").
		Raw(bungeeFrame("Connect")).
		Raw(bungeeFrame(s.srv.config.Backend)).
		Build()
	return s.send(frame)
}

// bungeeFrame length-prefixes a sub-payload string the way Java's
// DataOutput.writeUTF does: big-endian u16 length, then the bytes.
func bungeeFrame(s string) []byte {
	out := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(out, uint16(len(s)))
	copy(out[2:], s)
	return out
}
