// Package ecs provides ECS adapters for rampart's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges rampart lifecycle
// events (service phases, scene activation, view open and close) into a
// [Donburi] world as typed events. Subscribe to [LifecycleEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
