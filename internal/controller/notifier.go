package controller

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/markusressel/asus2go/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type Signal string

const (
	NotifyProfile Signal = "NotifyProfile"
	NotifyLed     Signal = "NotifyLed"
	NotifyGfx     Signal = "NotifyGfx"
	NotifyAnime   Signal = "NotifyAnime"
	NotifyBios    Signal = "NotifyBios"
	NotifyCharge  Signal = "NotifyCharge"
)

// Notification is a change event emitted after a successful state change
type Notification struct {
	Signal Signal `json:"signal"`
	Value  any    `json:"value"`
}

// Notifier distributes notifications to all current subscribers.
// Publishing never blocks: a subscriber that does not keep up loses notifications.
type Notifier struct {
	subscribers cmap.ConcurrentMap[string, *subscriber]
	nextId      atomic.Uint64

	published cmap.ConcurrentMap[string, uint64]
	dropped   atomic.Uint64
}

type NotifierStats struct {
	Published   map[Signal]uint64
	Dropped     uint64
	Subscribers int
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan Notification
	closed bool
}

func NewNotifier() *Notifier {
	return &Notifier{
		subscribers: cmap.New[*subscriber](),
		published:   cmap.New[uint64](),
	}
}

// Subscribe registers a new subscriber, the returned id is used to Unsubscribe
func (n *Notifier) Subscribe(buffer int) (string, <-chan Notification) {
	id := strconv.FormatUint(n.nextId.Add(1), 10)
	sub := &subscriber{ch: make(chan Notification, buffer)}
	n.subscribers.Set(id, sub)
	return id, sub.ch
}

// Unsubscribe removes the subscriber and closes its channel
func (n *Notifier) Unsubscribe(id string) {
	sub, ok := n.subscribers.Pop(id)
	if !ok {
		return
	}
	sub.mu.Lock()
	defer sub.mu.Unlock()
	sub.closed = true
	close(sub.ch)
}

func (n *Notifier) Publish(signal Signal, value any) {
	notification := Notification{Signal: signal, Value: value}
	n.published.Upsert(string(signal), 1, func(exist bool, valueInMap uint64, newValue uint64) uint64 {
		if exist {
			return valueInMap + newValue
		}
		return newValue
	})
	for item := range n.subscribers.IterBuffered() {
		if !item.Val.send(item.Key, notification) {
			n.dropped.Add(1)
		}
	}
}

func (n *Notifier) Stats() NotifierStats {
	stats := NotifierStats{
		Published:   map[Signal]uint64{},
		Dropped:     n.dropped.Load(),
		Subscribers: n.subscribers.Count(),
	}
	for item := range n.published.IterBuffered() {
		stats.Published[Signal(item.Key)] = item.Val
	}
	return stats
}

func (n *Notifier) SubscriberCount() int {
	return n.subscribers.Count()
}

// send delivers without blocking, false if the notification was dropped
func (s *subscriber) send(id string, notification Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- notification:
		return true
	default:
		ui.Debug("Dropping %s notification for slow subscriber %s", notification.Signal, id)
		return false
	}
}
