package rampart

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EventKind identifies a kind of lifecycle event.
type EventKind uint8

const (
	EventServiceInitialized   EventKind = iota // a service finished its setup hook
	EventServiceActivated                      // a service became active
	EventServiceDeactivated                    // a service left the active state
	EventServiceDeinitialized                  // a service finished its teardown hook
	EventSceneActivated                        // every service has been activated
	EventSceneDeactivated                      // the scene left the active state
	EventViewOpened                            // a view switched to open
	EventViewClosed                            // a view switched to closed
)

func (k EventKind) String() string {
	switch k {
	case EventServiceInitialized:
		return "service-initialized"
	case EventServiceActivated:
		return "service-activated"
	case EventServiceDeactivated:
		return "service-deactivated"
	case EventServiceDeinitialized:
		return "service-deinitialized"
	case EventSceneActivated:
		return "scene-activated"
	case EventSceneDeactivated:
		return "scene-deactivated"
	case EventViewOpened:
		return "view-opened"
	case EventViewClosed:
		return "view-closed"
	default:
		return "unknown"
	}
}

// LifecycleEvent carries a phase transition to an optional EventSink.
type LifecycleEvent struct {
	Kind EventKind
	// Name is the service or view name. Empty for scene-level events.
	Name  string
	Frame uint64
}

// EventSink is the interface for optional lifecycle observers (for example an
// ECS world). When set on a Scene, every transition is forwarded to it.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}
