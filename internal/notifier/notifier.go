package notifier

import (
	"log"
	"sync"
)

type EventType string

const (
	EventHired EventType = "hired"
)

type GigRef struct {
	Id    string `json:"id"`
	Title string `json:"title"`
}

type BidRef struct {
	Id    string  `json:"id"`
	Price float64 `json:"price"`
}

// Event is the closed set of payloads a subscriber can receive.
// Fields beyond Type and Message are filled per event kind.
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	Gig     GigRef    `json:"gig"`
	Bid     BidRef    `json:"bid"`
}

const subscriberBuffer = 8

// Hub fans events out to per-recipient channels. Delivery is best effort:
// a recipient with no live subscription, or one whose buffer is full,
// misses the event. The durable hire state is recorded by the service
// layer before anything is published here.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe registers a listener for the given recipient id and returns
// the event channel together with a cancel func. Cancel is safe to call
// more than once; the channel is closed on cancel.
func (h *Hub) Subscribe(recipientId string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[recipientId] = append(h.subscribers[recipientId], ch)
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			channels := h.subscribers[recipientId]
			for i, c := range channels {
				if c == ch {
					h.subscribers[recipientId] = append(channels[:i], channels[i+1:]...)
					break
				}
			}
			if len(h.subscribers[recipientId]) == 0 {
				delete(h.subscribers, recipientId)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish sends the event to every live subscription of the recipient
// without blocking. Drops are logged and otherwise ignored.
func (h *Hub) Publish(recipientId string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	channels, ok := h.subscribers[recipientId]
	if !ok {
		return
	}

	for _, ch := range channels {
		select {
		case ch <- event:
		default:
			log.Printf("notifier: dropped %s event for recipient %s", event.Type, recipientId)
		}
	}
}
