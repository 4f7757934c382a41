package server

// phase is the session's protocol stage. The handshake's next-state field is
// assigned to it directly, so out-of-range client values surface as an
// unknown phase at dispatch.
type phase int32

const (
	phaseHandshake phase = 0
	phaseStatus    phase = 1
	phaseLogin     phase = 2
	phasePlay      phase = 3
	phaseClosed    phase = -1
)

func (p phase) String() string {
	switch p {
	case phaseHandshake:
		return "handshake"
	case phaseStatus:
		return "status"
	case phaseLogin:
		return "login"
	case phasePlay:
		return "play"
	case phaseClosed:
		return "closed"
	}
	return "unknown"
}

// Packet IDs for the target client version (1.19.2, protocol 760). These are
// version-specific; a client from another version will not complete the
// handshake end to end.
const (
	// Serverbound.
	packetHandshake           int32 = 0x00
	packetStatusRequest       int32 = 0x00
	packetPingRequest         int32 = 0x01
	packetLoginStart          int32 = 0x00
	packetLoginPluginResponse int32 = 0x02
	packetChatCommand         int32 = 0x04
	packetKeepAliveInt        int32 = 0x20
	packetKeepAliveLong       int32 = 0x12

	// Clientbound.
	packetStatusResponse  int32 = 0x00
	packetPingResponse    int32 = 0x01
	packetLoginSuccess    int32 = 0x02
	packetPluginMessage   int32 = 0x16
	packetDisconnect      int32 = 0x19
	packetEntityEvent     int32 = 0x1A
	packetKeepAliveLongCB int32 = 0x20
	packetChunkData       int32 = 0x21
	packetJoinGame        int32 = 0x25
	packetKeepAliveIntCB  int32 = 0x2F
	packetPlayerInfo      int32 = 0x37
	packetSyncPosition    int32 = 0x39
	packetHeldItemSlot    int32 = 0x4A
	packetSetCenterChunk  int32 = 0x4B
	packetUpdateRecipes   int32 = 0x6A
	packetUpdateTags      int32 = 0x6B
	packetSystemChat      int32 = 0x5D
)

// ProtocolVersion is reported in the status document.
const ProtocolVersion = 760
