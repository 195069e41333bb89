package chat

import (
	"sync"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/models"
)

const subscriberBuffer = 64

// Hub fans chat events out to the open streams of each user. Events published
// while a user has no stream are kept in a bounded backlog and replayed to the
// next subscriber.
type Hub struct {
	mu          sync.Mutex
	subs        map[models.ID]map[chan Event]struct{}
	backlog     map[models.ID][]Event
	backlogSize int
}

func NewHub(backlogSize int) *Hub {
	if backlogSize <= 0 {
		backlogSize = 32
	}
	return &Hub{
		subs:        make(map[models.ID]map[chan Event]struct{}),
		backlog:     make(map[models.ID][]Event),
		backlogSize: backlogSize,
	}
}

func (h *Hub) Publish(user models.ID, events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[user]
	if len(subs) == 0 {
		queued := append(h.backlog[user], events...)
		if len(queued) > h.backlogSize {
			queued = queued[len(queued)-h.backlogSize:]
		}
		h.backlog[user] = queued
		return
	}
	for ch := range subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
				// slow reader; the next poll resynchronises it
			}
		}
	}
}

// Subscribe returns the user's event channel and a cancel func that must be
// called when the stream ends.
func (h *Hub) Subscribe(user models.ID) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	for _, ev := range h.backlog[user] {
		select {
		case ch <- ev:
		default:
		}
	}
	delete(h.backlog, user)
	if h.subs[user] == nil {
		h.subs[user] = make(map[chan Event]struct{})
	}
	h.subs[user][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[user], ch)
			if len(h.subs[user]) == 0 {
				delete(h.subs, user)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (h *Hub) Subscribers(user models.ID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[user])
}

// Dispatch publishes each event at its scheduled time. Events already due
// are published immediately.
func (h *Hub) Dispatch(user models.ID, events []Event, now time.Time) {
	for _, ev := range events {
		ev := ev
		wait := ev.At.Sub(now)
		if wait <= 0 {
			h.Publish(user, ev)
			continue
		}
		time.AfterFunc(wait, func() { h.Publish(user, ev) })
	}
}
