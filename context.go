package rampart

import "fmt"

// ContextVersion is bumped whenever a SharedContext slot is removed or its
// meaning changes. Adding a slot does not bump it.
const ContextVersion = 1

// Slot names a SharedContext field for Require.
type Slot uint8

// Recognized slots, with their producers and consumers:
//
//	SlotCamera  produced by Scene.PrepareContext; read by gameplay and UI services
//	SlotCanvas  produced by Scene.PrepareContext; read by the UIManager
//	SlotUI      produced by the UIManager setup hook; read by anything opening views
//	SlotLevel   produced by a level-loading service; read by spawning and economy services
const (
	SlotCamera Slot = iota
	SlotCanvas
	SlotUI
	SlotLevel
)

func (s Slot) String() string {
	switch s {
	case SlotCamera:
		return "camera"
	case SlotCanvas:
		return "canvas"
	case SlotUI:
		return "ui"
	case SlotLevel:
		return "level"
	default:
		return fmt.Sprintf("slot(%d)", uint8(s))
	}
}

// Level is the handle a level-loading collaborator publishes into the
// context. The core never looks inside it.
type Level interface {
	Name() string
}

// SharedContext is the record of long-lived subsystems shared by every
// service in a Scene. The Scene owns it; services borrow a pointer between
// their setup and teardown hooks and must not retain it afterwards.
//
// There is no locking: the frame loop is the only writer.
type SharedContext struct {
	Camera *Camera
	Canvas *Node
	UI     *UIManager
	Level  Level

	// Managers holds other manager handles by name.
	Managers map[string]any

	Paused   bool
	HasInput bool
	Visible  bool
}

// Require returns an error wrapping ErrMissingSlot naming the first empty
// slot, or nil when every listed slot is populated.
func (c *SharedContext) Require(slots ...Slot) error {
	for _, s := range slots {
		if c.empty(s) {
			return fmt.Errorf("%w: %s", ErrMissingSlot, s)
		}
	}
	return nil
}

func (c *SharedContext) empty(s Slot) bool {
	switch s {
	case SlotCamera:
		return c.Camera == nil
	case SlotCanvas:
		return c.Canvas == nil
	case SlotUI:
		return c.UI == nil
	case SlotLevel:
		return c.Level == nil
	}
	return true
}

// Manager returns the manager handle registered under name.
func (c *SharedContext) Manager(name string) (any, bool) {
	m, ok := c.Managers[name]
	return m, ok
}

// SetManager publishes a manager handle under name.
func (c *SharedContext) SetManager(name string, m any) {
	if c.Managers == nil {
		c.Managers = make(map[string]any)
	}
	c.Managers[name] = m
}

// reset clears every slot. Called when the Scene drops its context.
func (c *SharedContext) reset() {
	*c = SharedContext{}
}

// ManagerAs returns the manager registered under name as a T.
func ManagerAs[T any](c *SharedContext, name string) (T, bool) {
	var zero T
	m, ok := c.Managers[name]
	if !ok {
		return zero, false
	}
	typed, ok := m.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
