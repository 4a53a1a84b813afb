package ecs

import (
	"github.com/phanxgames/rampart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for rampart lifecycle events.
// Subscribe to this in your ECS systems to react to services starting and
// stopping or views opening and closing.
var LifecycleEventType = events.NewEventType[rampart.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) rampart.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event rampart.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}
