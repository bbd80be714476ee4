package events

import (
	"sync"

	"github.com/google/uuid"
)

// room holds one user's subscriber set. A sync.Map keyed by user ID backs
// the bus itself (many distinct users, mostly uncontended); a sync.RWMutex
// protects each room's small subscriber map, the same mix the teacher's
// mcp server uses for its session table (sync.Map across sessions, plain
// locking for anything nested inside one).
type room struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

// Bus fans out Events to per-user subscriber channels. A job only ever
// publishes into its owning user's room; a subscriber only ever receives
// events for the room it joined.
type Bus struct {
	rooms sync.Map // userID -> *room
}

// NewBus constructs an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) roomFor(userID string) *room {
	v, _ := b.rooms.LoadOrStore(userID, &room{subscribers: make(map[string]chan Event)})
	return v.(*room)
}

// Subscribe joins userID's room and returns a receive-only channel of
// events plus an unsubscribe func the caller must call when done listening.
// The channel is buffered; a subscriber that falls behind has events
// dropped rather than blocking Publish.
func (b *Bus) Subscribe(userID string) (ch <-chan Event, unsubscribe func()) {
	r := b.roomFor(userID)
	id := uuid.New().String()
	buffered := make(chan Event, 64)

	r.mu.Lock()
	r.subscribers[id] = buffered
	r.mu.Unlock()

	unsub := func() {
		r.mu.Lock()
		if sub, ok := r.subscribers[id]; ok {
			delete(r.subscribers, id)
			close(sub)
		}
		r.mu.Unlock()
	}
	return buffered, unsub
}

// Publish delivers evt to every current subscriber of userID's room.
// A no-op if the user has no room (no one has ever subscribed).
func (b *Bus) Publish(userID string, evt Event) {
	v, ok := b.rooms.Load(userID)
	if !ok {
		return
	}
	r := v.(*room)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.subscribers {
		select {
		case sub <- evt:
		default:
		}
	}
}

// SubscriberCount reports how many active subscribers userID's room has.
func (b *Bus) SubscriberCount(userID string) int {
	v, ok := b.rooms.Load(userID)
	if !ok {
		return 0
	}
	r := v.(*room)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}
