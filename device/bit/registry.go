// Package bit aggregates built-in-test results from device subsystems
// into a single BITCollection snapshot (§9 design note: a message-passing
// aggregator, chosen over a process-wide mutex on the collection itself
// so that no subsystem blocks waiting on another's update).
package bit

import (
	"context"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/messages"
)

// TopicUpdate is where subsystems publish individual BIT updates.
var TopicUpdate = bus.Topic{"bit", "update"}

// TopicState is where Run retained-publishes the full BITCollection after
// every applied update.
var TopicState = bus.Topic{"bit", "state"}

// Update is the payload a subsystem publishes to report one record's
// latest result.
type Update struct {
	Group  string // "wifi" | "lidar" | "imu" | "encoders" | "power"
	Record messages.BIT
}

// Registry owns the canonical BITCollection, built by draining Updates
// published to TopicUpdate. It is the single writer; Snapshot gives
// readers a point-in-time copy.
type Registry struct {
	conn *bus.Connection

	collection messages.BITCollection
	index      map[string]int // "group/name" -> index into that group's slice
}

// NewRegistry creates a Registry bound to conn. Call Run to start
// draining updates; it returns when ctx is cancelled.
func NewRegistry(conn *bus.Connection) *Registry {
	return &Registry{conn: conn, index: map[string]int{}}
}

// Run drains BIT updates until ctx is cancelled, applying each to the
// in-memory collection and republishing a full snapshot, retained, on
// the state topic so late subscribers see the latest result set.
func (r *Registry) Run(ctx context.Context) {
	sub := r.conn.Subscribe(TopicUpdate)
	defer r.conn.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			u, ok := msg.Payload.(Update)
			if !ok {
				continue
			}
			r.apply(u)
			r.conn.Publish(r.conn.NewMessage(TopicState, r.Snapshot(), true))
		}
	}
}

func (r *Registry) apply(u Update) {
	group := r.group(u.Group)
	if group == nil {
		return
	}
	key := u.Group + "/" + u.Record.Name
	if i, ok := r.index[key]; ok {
		(*group)[i].Result = u.Record.Result
		return
	}
	if len(*group) >= messages.MaxBITsPerGroup {
		return
	}
	r.index[key] = len(*group)
	*group = append(*group, u.Record)
}

func (r *Registry) group(name string) *[]messages.BIT {
	switch name {
	case "wifi":
		return &r.collection.WiFi
	case "lidar":
		return &r.collection.LiDAR
	case "imu":
		return &r.collection.IMU
	case "encoders":
		return &r.collection.Encoders
	case "power":
		return &r.collection.Power
	default:
		return nil
	}
}

// Snapshot returns a defensive copy of the current collection, suitable
// for embedding directly in an outbound State message.
func (r *Registry) Snapshot() messages.BITCollection {
	var out messages.BITCollection
	for i, g := range r.collection.Groups() {
		dst := out.Groups()[i]
		*dst = append([]messages.BIT(nil), (*g)...)
	}
	return out
}

// Report is a convenience publisher subsystems use instead of importing
// bus directly: it builds and publishes an Update on TopicUpdate.
func Report(conn *bus.Connection, group, name string, result messages.BITResult) {
	msg := conn.NewMessage(TopicUpdate, Update{
		Group:  group,
		Record: messages.BIT{Name: name, Result: result},
	}, false)
	conn.Publish(msg)
}
