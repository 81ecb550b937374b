// Package bus is Mote's in-process publish/subscribe primitive. Device
// subsystems (device/bit, device/powergate, device/transport, ...) and
// host-side links (host/link) pass messages.* values between goroutines
// over fixed, two-level topics — there is no hierarchical addressing and
// no wildcard subscription anywhere in Mote, so unlike a general MQTT-style
// broker this is a flat map keyed on Topic rather than a trie.
package bus

import "sync"

const defaultQLen = 3

// Topic names a channel as a domain and a name within it, e.g.
// Topic{"power", "state"} or Topic{"transport", name}.
type Topic struct {
	Domain string
	Name   string
}

// Message is one published value. Retained messages are replayed to any
// subscription made after they were published, so a late subscriber (e.g.
// a newly connected host) still sees the latest state.
type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// Subscription is a single subscriber's view of a Topic.
type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }

// topicState holds a topic's subscribers and its retained message, if any.
type topicState struct {
	subs     []*Subscription
	retained *Message
}

// Bus routes Messages by Topic. The zero value is not usable; use NewBus.
type Bus struct {
	mu     sync.Mutex
	topics map[Topic]*topicState
	qLen   int
}

// NewBus creates a Bus whose subscriber channels buffer queueLen messages
// before the oldest pending one is dropped to make room for the newest
// (see tryDeliver). queueLen <= 0 falls back to a small default.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = defaultQLen
	}
	return &Bus{topics: make(map[Topic]*topicState), qLen: queueLen}
}

func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

func (b *Bus) stateFor(topic Topic) *topicState {
	ts := b.topics[topic]
	if ts == nil {
		ts = &topicState{}
		b.topics[topic] = ts
	}
	return ts
}

// Publish delivers msg to every current subscriber of msg.Topic. If
// msg.Retained, it also becomes the topic's retained message, replacing
// whatever was retained before.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	ts := b.stateFor(msg.Topic)
	if msg.Retained {
		ts.retained = msg
	}
	subs := append([]*Subscription(nil), ts.subs...)
	b.mu.Unlock()

	for _, sub := range subs {
		tryDeliver(sub.ch, msg)
	}
}

func (b *Bus) subscribe(topic Topic, conn *Connection) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan *Message, b.qLen), conn: conn}

	b.mu.Lock()
	ts := b.stateFor(topic)
	ts.subs = append(ts.subs, sub)
	retained := ts.retained
	b.mu.Unlock()

	if retained != nil {
		tryDeliver(sub.ch, retained)
	}
	return sub
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ts := b.topics[sub.topic]
	if ts == nil {
		return
	}
	ts.subs = removeSub(ts.subs, sub)
}

func removeSub(list []*Subscription, target *Subscription) []*Subscription {
	out := list[:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func trySend(ch chan *Message, m *Message) bool {
	select {
	case ch <- m:
		return true
	default:
		return false
	}
}

func drainOne(ch chan *Message) {
	select {
	case <-ch:
	default:
	}
}

// tryDeliver never blocks the publisher: a full subscriber queue has its
// oldest message dropped to make room for the new one.
func tryDeliver(ch chan *Message, msg *Message) {
	if trySend(ch, msg) {
		return
	}
	drainOne(ch)
	trySend(ch, msg)
}

// Connection scopes a set of subscriptions so a component can tear all of
// them down at once with Disconnect.
type Connection struct {
	bus *Bus
	id  string

	mu   sync.Mutex
	subs []*Subscription
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := c.bus.subscribe(topic, c)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub)
	c.mu.Lock()
	c.subs = removeSub(c.subs, sub)
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect unsubscribes and closes every subscription this Connection
// has made.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub)
		close(sub.ch)
	}
}
