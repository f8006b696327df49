package protocol

// MsgType is the closed enumeration of message kinds. Values below
// SrvMsg are client-to-server requests; the rest are server-to-client
// notifications.
type MsgType uint16

const (
	Login MsgType = iota
	CreateGame
	JoinGame
	LeaveGame
	Shoot
	Logout
	GetStats
	GetGameList
	SrvMsg
	SrvGameList
	SrvGameCreated
	SrvGameStart
	SrvShotResult
	SrvGameOver
	SrvBoard
	SrvStats
)

func (t MsgType) String() string {
	switch t {
	case Login:
		return "LOGIN"
	case CreateGame:
		return "CREATE_GAME"
	case JoinGame:
		return "JOIN_GAME"
	case LeaveGame:
		return "LEAVE_GAME"
	case Shoot:
		return "SHOOT"
	case Logout:
		return "LOGOUT"
	case GetStats:
		return "GET_STATS"
	case GetGameList:
		return "GET_GAME_LIST"
	case SrvMsg:
		return "S_MSG"
	case SrvGameList:
		return "S_GAME_LIST"
	case SrvGameCreated:
		return "S_GAME_CREATED"
	case SrvGameStart:
		return "S_GAME_START"
	case SrvShotResult:
		return "S_SHOT_RESULT"
	case SrvGameOver:
		return "S_GAME_OVER"
	case SrvBoard:
		return "S_BOARD"
	case SrvStats:
		return "S_STATS"
	default:
		return "UNKNOWN"
	}
}

// IsRequest reports whether the type is a client-to-server request
func (t MsgType) IsRequest() bool {
	return t <= GetGameList
}

// ServerSender is the sender field of server-originated packets
const ServerSender = "SERVER"

// Packet is the fixed-layout message exchanged over the transport.
// Payload is opaque formatted text for human display; X, Y and
// ShotResult carry meaning only for SHOOT and S_SHOT_RESULT.
type Packet struct {
	Type       MsgType
	Sender     string
	GameName   string
	Payload    string
	X          int
	Y          int
	ShotResult int
}
