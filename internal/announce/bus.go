// Package announce carries short status messages meant for assistive
// technology (live regions). A Bus is injected wherever state changes need
// to be announced.
package announce

import "sync"

type Priority string

const (
	Polite    Priority = "polite"
	Assertive Priority = "assertive"
)

// Message is a single announcement.
type Message struct {
	Text     string
	Priority Priority
}

// Announcer is the narrow interface components depend on.
type Announcer interface {
	Announce(text string, priority Priority)
}

// Bus fans announcements out to subscribers and remembers the last
// message per priority.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Message)
	last   map[Priority]Message
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]func(Message)),
		last: make(map[Priority]Message),
	}
}

// Announce publishes text. An empty priority is treated as Polite.
func (b *Bus) Announce(text string, priority Priority) {
	if priority != Assertive {
		priority = Polite
	}
	msg := Message{Text: text, Priority: priority}

	b.mu.Lock()
	b.last[priority] = msg
	handlers := make([]func(Message), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(msg)
	}
}

// Subscribe registers fn for every future announcement. The returned
// function removes the subscription.
func (b *Bus) Subscribe(fn func(Message)) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Last returns the most recent message of the given priority.
func (b *Bus) Last(priority Priority) (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg, ok := b.last[priority]
	return msg, ok
}

// Nop discards announcements.
type Nop struct{}

func (Nop) Announce(string, Priority) {}
