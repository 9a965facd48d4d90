package bus

import (
	"sync"

	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// EventKind identifies the kind of auction event being fanned out.
type EventKind string

const (
	EventNewAuction           EventKind = "newAuction"
	EventBidPlaced            EventKind = "bidPlaced"
	EventAuctionUpdated       EventKind = "auctionUpdated"
	EventAuctionStatusChanged EventKind = "auctionStatusChanged"
)

// Event is one message delivered to observers. newAuction events carry no
// auction room and go to every registered observer.
type Event struct {
	Kind      EventKind `json:"type"`
	AuctionID string    `json:"auction_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// Publisher is the write side of the bus, the only part the bid engine and
// the scheduler see.
type Publisher interface {
	// Publish delivers an event to every observer joined to the auction's room.
	Publish(auctionID string, kind EventKind, payload any)
	// Broadcast delivers an event to every registered observer.
	Broadcast(kind EventKind, payload any)
}

// observer is one registered connection plus the set of rooms it joined.
type observer struct {
	ch    chan Event
	rooms map[string]struct{}
}

// Bus is an in-process notification fan-out with per-auction rooms.
// Events for one auction are enqueued to each subscriber in publish order;
// delivery is best-effort: a subscriber whose buffer is full loses the
// event rather than stalling the committing writer, and reconciles by
// re-fetching auction state. The event stream is a convenience, not a
// source of truth.
type Bus struct {
	mu        sync.Mutex
	observers map[string]*observer // key: observerID
	buffer    int
}

// NewBus creates a bus whose observers buffer up to buffer events each.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	return &Bus{
		observers: make(map[string]*observer),
		buffer:    buffer,
	}
}

// Register adds an observer and returns its event channel. The channel is
// closed by Unregister.
func (b *Bus) Register(observerID string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, ok := b.observers[observerID]; ok {
		close(prev.ch)
	}
	obs := &observer{
		ch:    make(chan Event, b.buffer),
		rooms: make(map[string]struct{}),
	}
	b.observers[observerID] = obs
	return obs.ch
}

// Unregister removes the observer from every room and closes its channel.
// Called on explicit disconnect and on connection loss alike.
func (b *Bus) Unregister(observerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	obs, ok := b.observers[observerID]
	if !ok {
		return
	}
	delete(b.observers, observerID)
	close(obs.ch)
}

// Join subscribes the observer to one auction's room.
func (b *Bus) Join(observerID, auctionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if obs, ok := b.observers[observerID]; ok {
		obs.rooms[auctionID] = struct{}{}
	}
}

// Leave removes the observer from one auction's room.
func (b *Bus) Leave(observerID, auctionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if obs, ok := b.observers[observerID]; ok {
		delete(obs.rooms, auctionID)
	}
}

// RoomSize returns how many observers are joined to the auction's room.
func (b *Bus) RoomSize(auctionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, obs := range b.observers {
		if _, ok := obs.rooms[auctionID]; ok {
			n++
		}
	}
	return n
}

// Publish delivers the event to every observer in the auction's room.
// Enqueueing happens under the bus lock, so two events published in commit
// order arrive in each subscriber's channel in that order.
func (b *Bus) Publish(auctionID string, kind EventKind, payload any) {
	ev := Event{Kind: kind, AuctionID: auctionID, Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, obs := range b.observers {
		if _, ok := obs.rooms[auctionID]; !ok {
			continue
		}
		b.deliverLocked(id, obs, ev)
	}
}

// Broadcast delivers the event to every registered observer regardless of
// room membership.
func (b *Bus) Broadcast(kind EventKind, payload any) {
	ev := Event{Kind: kind, Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, obs := range b.observers {
		b.deliverLocked(id, obs, ev)
	}
}

func (b *Bus) deliverLocked(observerID string, obs *observer, ev Event) {
	select {
	case obs.ch <- ev:
	default:
		// Slow observer: drop rather than block the committing writer.
		utils.Warn("dropping event for slow observer", map[string]any{
			"observer_id": observerID,
			"event":       string(ev.Kind),
			"auction_id":  ev.AuctionID,
		})
	}
}
