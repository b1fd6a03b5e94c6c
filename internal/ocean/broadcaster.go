package ocean

// Broadcaster is the messaging channel the manager talks through. Every
// ocean id doubles as the name of its broadcast room.
type Broadcaster interface {
	Join(connID, roomCode string)
	Emit(connID string, action string, data interface{})
	Broadcast(roomCode string, action string, data interface{})
	CloseRoom(roomCode string)
	ConnectionCount() int
}
