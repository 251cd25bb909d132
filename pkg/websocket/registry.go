package websocket

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// DefaultRooms is the fixed voice room catalog
var DefaultRooms = []string{"general", "movies", "music", "sports"}

// ErrUnknownRoom rejects joins to rooms outside the catalog
var ErrUnknownRoom = errors.New("unknown room")

// Message is a signaling frame relayed between room peers
type Message struct {
	Type string      `json:"type"`
	From string      `json:"from,omitempty"`
	To   string      `json:"to,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// Member is the presence view of a connected participant
type Member struct {
	SessionID string `json:"sid"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// room owns the session state of one voice room. All access goes through
// its own mutex, so rooms never contend with each other.
type room struct {
	mu      sync.Mutex
	members map[string]*Client
}

// RoomRegistry owns per-room session state for the voice signaling relay.
// Presence lives here, keyed by room, not in process-wide maps.
type RoomRegistry struct {
	rooms  map[string]*room
	logger *logger.Logger
}

// NewRoomRegistry creates a registry over the given room catalog
func NewRoomRegistry(roomNames []string, log *logger.Logger) *RoomRegistry {
	rooms := make(map[string]*room, len(roomNames))
	for _, name := range roomNames {
		rooms[name] = &room{members: make(map[string]*Client)}
	}
	return &RoomRegistry{rooms: rooms, logger: log}
}

// Join adds a client to a room and announces the updated member list
func (r *RoomRegistry) Join(roomName string, client *Client) error {
	rm, ok := r.rooms[roomName]
	if !ok {
		return ErrUnknownRoom
	}

	rm.mu.Lock()
	rm.members[client.SessionID] = client
	rm.mu.Unlock()

	client.room = roomName

	r.logger.Info("Voice room joined",
		logger.String("room", roomName),
		logger.String("session_id", client.SessionID),
	)

	r.relayExcept(roomName, client.SessionID, Message{Type: "user_joined", From: client.SessionID})
	r.broadcastPresence(roomName)
	return nil
}

// Leave removes a client from its room and announces the change
func (r *RoomRegistry) Leave(client *Client) {
	rm, ok := r.rooms[client.room]
	if !ok {
		return
	}

	rm.mu.Lock()
	if _, present := rm.members[client.SessionID]; !present {
		rm.mu.Unlock()
		return
	}
	delete(rm.members, client.SessionID)
	rm.mu.Unlock()

	r.logger.Info("Voice room left",
		logger.String("room", client.room),
		logger.String("session_id", client.SessionID),
	)

	r.relayExcept(client.room, client.SessionID, Message{Type: "user_left", From: client.SessionID})
	r.broadcastPresence(client.room)
}

// Members lists the current participants of a room
func (r *RoomRegistry) Members(roomName string) []Member {
	rm, ok := r.rooms[roomName]
	if !ok {
		return nil
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	members := make([]Member, 0, len(rm.members))
	for _, c := range rm.members {
		members = append(members, Member{SessionID: c.SessionID, Name: c.Name, Role: c.Role})
	}
	return members
}

// RelayToPeer forwards a signaling frame to one participant of the room
func (r *RoomRegistry) RelayToPeer(roomName, sessionID string, msg Message) {
	rm, ok := r.rooms[roomName]
	if !ok {
		return
	}

	rm.mu.Lock()
	peer, present := rm.members[sessionID]
	rm.mu.Unlock()
	if !present {
		return
	}

	r.send(peer, msg)
}

// relayExcept sends a frame to every room participant but one
func (r *RoomRegistry) relayExcept(roomName, exceptID string, msg Message) {
	rm, ok := r.rooms[roomName]
	if !ok {
		return
	}

	rm.mu.Lock()
	peers := make([]*Client, 0, len(rm.members))
	for id, c := range rm.members {
		if id != exceptID {
			peers = append(peers, c)
		}
	}
	rm.mu.Unlock()

	for _, peer := range peers {
		r.send(peer, msg)
	}
}

// broadcastPresence pushes the full member list to everyone in the room
func (r *RoomRegistry) broadcastPresence(roomName string) {
	members := r.Members(roomName)
	msg := Message{Type: "room_users", Data: members}

	rm := r.rooms[roomName]
	rm.mu.Lock()
	peers := make([]*Client, 0, len(rm.members))
	for _, c := range rm.members {
		peers = append(peers, c)
	}
	rm.mu.Unlock()

	for _, peer := range peers {
		r.send(peer, msg)
	}
}

func (r *RoomRegistry) send(c *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("Failed to marshal signaling frame", logger.Err(err))
		return
	}
	select {
	case c.Send <- data:
	default:
		r.logger.Warn("Client send buffer full",
			logger.String("session_id", c.SessionID),
		)
	}
}
