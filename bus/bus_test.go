package bus

import (
	"testing"
	"time"
)

var topicGeo = Topic{"config", "geo"}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(topicGeo)

	conn.Publish(conn.NewMessage(topicGeo, "hello", false))

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "hello" {
			t.Errorf("expected payload 'hello', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	s1 := conn.Subscribe(topicGeo)
	s2 := conn.Subscribe(topicGeo)

	conn.Publish(conn.NewMessage(topicGeo, "hello", false))

	for _, s := range []*Subscription{s1, s2} {
		select {
		case got := <-s.Channel():
			if got.Payload.(string) != "hello" {
				t.Errorf("expected payload 'hello', got %v", got.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for message")
		}
	}
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(topicGeo, "persist", true))

	sub := conn.Subscribe(topicGeo)

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "persist" {
			t.Errorf("expected retained payload 'persist', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for retained message")
	}
}

func TestRetainedMessageReplaced(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(topicGeo, "first", true))
	conn.Publish(conn.NewMessage(topicGeo, "second", true))

	sub := conn.Subscribe(topicGeo)

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "second" {
			t.Errorf("expected latest retained payload 'second', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for retained message")
	}
}

func TestUnsubscribeClosesChannelAndStopsDelivery(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(topicGeo)
	conn.Unsubscribe(sub)

	if _, ok := <-sub.Channel(); ok {
		t.Fatal("expected channel to be closed after Unsubscribe")
	}

	// publishing after Unsubscribe must not deliver to (or panic on) the
	// now-closed channel.
	conn.Publish(conn.NewMessage(topicGeo, "late", false))
}

func TestDisconnectTearsDownAllSubscriptions(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	s1 := conn.Subscribe(topicGeo)
	s2 := conn.Subscribe(Topic{"config", "other"})

	conn.Disconnect()

	for _, s := range []*Subscription{s1, s2} {
		if _, ok := <-s.Channel(); ok {
			t.Fatal("expected channel to be closed after Disconnect")
		}
	}
}

func TestDeliveryDropsOldestWhenQueueFull(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(topicGeo)

	conn.Publish(conn.NewMessage(topicGeo, "m1", false))
	conn.Publish(conn.NewMessage(topicGeo, "m2", false))
	conn.Publish(conn.NewMessage(topicGeo, "m3", false)) // drops m1

	got := []string{(<-sub.Channel()).Payload.(string), (<-sub.Channel()).Payload.(string)}
	if got[0] != "m2" || got[1] != "m3" {
		t.Fatalf("expected [m2 m3] after drop-oldest delivery, got %v", got)
	}
}

func TestDistinctTopicsDoNotCrossDeliver(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	subGeo := conn.Subscribe(topicGeo)
	subOther := conn.Subscribe(Topic{"config", "other"})

	conn.Publish(conn.NewMessage(topicGeo, "geo", false))

	select {
	case got := <-subGeo.Channel():
		if got.Payload.(string) != "geo" {
			t.Fatalf("unexpected payload: %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message on subscribed topic")
	}

	select {
	case got := <-subOther.Channel():
		t.Fatalf("unexpected message on unrelated topic: %#v", got)
	case <-time.After(60 * time.Millisecond):
	}
}
