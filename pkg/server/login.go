package server

import (
	"bytes"
	"context"

	"github.com/google/uuid"

	"github.com/EquinoxAlpha/void/pkg/chat"
	"github.com/EquinoxAlpha/void/pkg/nbt"
	"github.com/EquinoxAlpha/void/pkg/protocol"
)

const dimensionName = "minecraft:the_end"

// storeErrorReason is what players see for any credential-store failure; the
// underlying cause only goes to the log.
const storeErrorReason = "Database error. Please contact one of the admins."

// emptySection is one chunk section with a zero block count, a single-valued
// air palette, and a single-valued plains biome palette (layout from wiki.vg).
var emptySection = []byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x27, 0x03,
	0x01, 0xCC, 0xFF, 0xCC, 0xFF, 0xCC, 0xFF, 0xCC, 0xFF,
}

const sectionsPerChunk = 24

// handleLoginStart runs the entire world bootstrap: login success, join with
// the registry codec, the fixed 5x5 grid of empty chunks, the position
// confirmations, and finally the register/login instruction. The client
// rejects the world if any field or any packet in this sequence is out of
// order.
func (s *session) handleLoginStart(r *bytes.Reader) result {
	username, err := protocol.ReadString(r)
	if err != nil {
		return fatal(err)
	}
	s.username = username
	s.log.Info().Str("username", username).Msg("has connected to the login server")

	frame := protocol.NewBuilder(packetLoginSuccess).
		UUID(offlineUUID(username)).
		String(username).
		VarInt(0). // properties
		Build()
	if err := s.send(frame); err != nil {
		return fatal(err)
	}

	frame = protocol.NewBuilder(packetJoinGame).
		Int32(0).    // entity id
		Bool(false). // is hardcore
		Byte(3).     // gamemode: spectator
		Byte(0xFF).  // previous gamemode: none
		VarInt(1).   // dimension count
		String(dimensionName).
		NBT(s.srv.registryCodec).
		String(dimensionName). // dimension type
		String(dimensionName). // dimension name
		Int64(0). // hashed seed
		VarInt(int32(s.srv.config.MaxPlayers)).
		VarInt(2).             // view distance
		VarInt(2).             // simulation distance
		Bool(false).           // reduced debug info
		Bool(false).           // enable respawn screen
		Bool(true).            // is debug world
		Bool(false).           // is flat
		Bool(false).           // has death location
		Build()
	if err := s.send(frame); err != nil {
		return fatal(err)
	}

	if err := s.send(protocol.NewBuilder(packetHeldItemSlot).Byte(0).Build()); err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetUpdateRecipes).VarInt(0).Build()); err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetUpdateTags).VarInt(0).Build()); err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetEntityEvent).Int32(0).Byte(28).Build()); err != nil {
		return fatal(err)
	}
	if err := s.send(s.buildSyncPosition()); err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetPlayerInfo).VarInt(0).VarInt(0).Build()); err != nil {
		return fatal(err)
	}
	if err := s.send(protocol.NewBuilder(packetSetCenterChunk).VarInt(0).VarInt(0).Build()); err != nil {
		return fatal(err)
	}

	for x := int32(-2); x <= 2; x++ {
		for z := int32(-2); z <= 2; z++ {
			if err := s.send(buildChunkData(x, z)); err != nil {
				return fatal(err)
			}
		}
	}

	// Clients only consider the world ready after a second position
	// confirmation following chunk delivery.
	if err := s.send(s.buildSyncPosition()); err != nil {
		return fatal(err)
	}

	exists, err := s.srv.store.Exists(context.Background(), username)
	if err != nil {
		s.log.Error().Err(err).Msg("credential store failure")
		return kick(storeErrorReason)
	}
	instruction := "/register [password] [password]"
	if exists {
		instruction = "/login [password]"
	}
	frame = protocol.NewBuilder(packetSystemChat).
		String(chat.Text(instruction).String()).
		Build()
	if err := s.send(frame); err != nil {
		return fatal(err)
	}

	return transition(phasePlay)
}

// handleLoginPluginResponse rejects login sub-packets this server never
// solicits; a client sending them is speaking some forwarding dialect we do
// not.
func (s *session) handleLoginPluginResponse(*bytes.Reader) result {
	return kick("Unexpected login response.")
}

func (s *session) buildSyncPosition() []byte {
	return protocol.NewBuilder(packetSyncPosition).
		Float64(0).  // x
		Float64(0).  // y
		Float64(0).  // z
		Float32(0).  // yaw
		Float32(0).  // pitch
		Byte(0).     // flags: all absolute
		VarInt(42).  // teleport id
		Bool(false). // dismount vehicle
		Build()
}

func buildChunkData(x, z int32) []byte {
	data := bytes.Repeat(emptySection, sectionsPerChunk)
	heightmap := nbt.NamedTag{Tag: nbt.Compound{
		{Name: "MOTION_BLOCKING", Tag: nbt.LongArray(make([]int64, 36))},
	}}

	return protocol.NewBuilder(packetChunkData).
		Int32(x).
		Int32(z).
		NBT(heightmap).
		VarInt(int32(len(data))).
		Raw(data).
		VarInt(0).  // block entities
		Bool(true). // trust edges for light updates
		VarInt(0).  // sky light mask bitset
		VarInt(0).  // block light mask bitset
		VarInt(0).  // empty sky light mask bitset
		VarInt(0).  // empty block light mask bitset
		VarInt(0).  // sky light arrays
		VarInt(0).  // block light arrays
		Build()
}

// offlineUUID derives the name-based (version 3) UUID offline-mode servers
// assign to a username.
func offlineUUID(username string) [16]byte {
	return [16]byte(uuid.NewMD5(uuid.Nil, []byte("OfflinePlayer:"+username)))
}
