// Package server implements the login front server: handshake, status, the
// scripted world bootstrap, /register + /login command handling, and the
// proxy handoff of authenticated sessions.
package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"github.com/EquinoxAlpha/void/pkg/auth"
	"github.com/EquinoxAlpha/void/pkg/nbt"
)

//go:embed registry_codec.json
var registryCodecJSON []byte

// Config holds server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// Backend is the proxy backend name authenticated players are handed to.
	Backend string
	// MOTD is shown in the server list.
	MOTD string
	// MaxPlayers is advertised in the status document; nothing enforces it.
	MaxPlayers int
}

// DefaultConfig returns a default server configuration.
func DefaultConfig() Config {
	return Config{
		Address:    ":25565",
		Backend:    "main",
		MOTD:       "A void login server",
		MaxPlayers: 20,
	}
}

// Server accepts connections and runs one session per connection. The only
// state shared between sessions is the credential store.
type Server struct {
	config   Config
	store    auth.Store
	log      zerolog.Logger
	listener net.Listener
	stopCh   chan struct{}

	// Loaded once at construction, sent verbatim on every login.
	registryCodec nbt.NamedTag
	statusJSON    string
}

// New creates a server, importing the embedded dimension-registry document
// and rendering the status response up front.
func New(config Config, store auth.Store, log zerolog.Logger) (*Server, error) {
	codec, err := nbt.FromJSON(registryCodecJSON)
	if err != nil {
		return nil, fmt.Errorf("import registry codec: %w", err)
	}

	status, err := json.Marshal(map[string]any{
		"version": map[string]any{
			"name":     "1.19.2",
			"protocol": ProtocolVersion,
		},
		"players": map[string]any{
			"max":    config.MaxPlayers,
			"online": 0,
			"sample": []any{},
		},
		"description": map[string]any{
			"text": config.MOTD,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render status document: %w", err)
	}

	return &Server{
		config:        config,
		store:         store,
		log:           log,
		stopCh:        make(chan struct{}),
		registryCodec: codec,
		statusJSON:    string(status),
	}, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	var err error
	s.listener, err = net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}
	s.log.Info().Str("address", s.config.Address).Msg("listening")

	go s.acceptLoop()
	return nil
}

// Stop closes the listener. In-flight sessions run to completion on their
// own connections.
func (s *Server) Stop() {
	close(s.stopCh)
	if s.listener != nil {
		s.listener.Close()
	}
}

// StopChan is closed when the server shuts down internally.
func (s *Server) StopChan() <-chan struct{} {
	return s.stopCh
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				s.log.Error().Err(err).Msg("accept failed")
				continue
			}
		}
		s.log.Debug().Stringer("peer", conn.RemoteAddr()).Msg("accepted connection")
		go s.newSession(conn).run()
	}
}
