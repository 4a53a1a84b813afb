package rampart

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// UIConfig configures a UIManager.
type UIConfig struct {
	// Name is the service name. Defaults to "ui".
	Name string
	// DisableTransitions makes every Open and Close instant.
	DisableTransitions bool
}

// UIManager is the service hosting the widget tree. At setup it discovers
// every widget under its root node, initializes each once, caches views by
// name and opens start-open views instantly. Each frame it advances view
// fades, ticks the widget tree and ticks the open views.
type UIManager struct {
	svc  *Service
	cfg  UIConfig
	root *Node

	roots  []*Widget
	views  map[string]*View
	order  []*View // discovery order, for deterministic iteration
	active []*View // open views, ascending priority
	clicks []Vec2

	ticking []*View // scratch snapshot of active for Tick
}

// NewUIManager creates a UIManager for the tree under root. When root is
// nil the scene canvas is used.
func NewUIManager(root *Node, cfg UIConfig) *UIManager {
	if cfg.Name == "" {
		cfg.Name = "ui"
	}
	m := &UIManager{cfg: cfg, root: root}
	m.svc = NewService(cfg.Name, m)
	return m
}

// Service returns the service to register with a Scene.
func (m *UIManager) Service() *Service { return m.svc }

// Log returns the manager's logger.
func (m *UIManager) Log() logrus.FieldLogger { return m.svc.Log() }

// Root returns the root node of the managed tree.
func (m *UIManager) Root() *Node { return m.root }

// OnInitialize discovers and initializes the widget tree, builds the view
// cache and opens start-open views without a fade.
func (m *UIManager) OnInitialize(owner *Scene, ctx *SharedContext) error {
	if m.root == nil {
		if err := ctx.Require(SlotCanvas); err != nil {
			return err
		}
		m.root = ctx.Canvas
	}
	if ctx.UI == nil {
		ctx.UI = m
	}
	m.views = make(map[string]*View)

	if w := m.root.widget; w != nil {
		m.roots = []*Widget{w}
	} else {
		m.roots = collectTopWidgets(m.root)
	}
	for _, w := range m.roots {
		w.Initialize(m, nil)
		m.index(w)
	}
	for _, v := range m.order {
		if v.StartOpen {
			v.Open(true)
		}
	}
	m.Log().WithFields(logrus.Fields{
		"widgets": len(m.roots),
		"views":   len(m.views),
	}).Debug("ui initialized")
	return nil
}

// collectTopWidgets returns the first hosted widget on every path below n.
func collectTopWidgets(n *Node) []*Widget {
	var found []*Widget
	for _, c := range n.children {
		if c.disposed {
			continue
		}
		if c.widget != nil {
			found = append(found, c.widget)
			continue
		}
		found = append(found, collectTopWidgets(c)...)
	}
	return found
}

// index adds every view under w to the cache. A second view with the same
// name is ignored with a warning.
func (m *UIManager) index(w *Widget) {
	if m.views == nil {
		return
	}
	w.walk(func(c *Widget) {
		c.root = m
		v := c.view
		if v == nil {
			return
		}
		name := c.Name()
		if existing, ok := m.views[name]; ok {
			if existing != v {
				m.Log().WithField("view", name).Warn("duplicate view name, keeping the first")
			}
			return
		}
		m.views[name] = v
		m.order = append(m.order, v)
		if v.open {
			m.viewChanged(v)
		}
	})
}

// unindex drops every view under w from the cache and the active set and
// detaches the subtree from this manager. Views keep their open state.
func (m *UIManager) unindex(w *Widget) {
	w.walk(func(c *Widget) {
		c.root = nil
		v := c.view
		if v == nil || m.views[c.Name()] != v {
			return
		}
		delete(m.views, c.Name())
		order := make([]*View, 0, len(m.order))
		for _, o := range m.order {
			if o != v {
				order = append(order, o)
			}
		}
		m.order = order
		for i, a := range m.active {
			if a == v {
				copy(m.active[i:], m.active[i+1:])
				m.active[len(m.active)-1] = nil
				m.active = m.active[:len(m.active)-1]
				break
			}
		}
	})
	m.Log().WithField("widget", w.Name()).Debug("widget detached from ui")
}

// OnDeactivate closes every view instantly so no fade survives a
// deactivate/activate cycle.
func (m *UIManager) OnDeactivate() {
	m.clicks = m.clicks[:0]
	for _, v := range m.order {
		v.Close(true)
		v.cancelTransition()
	}
}

// OnDeinitialize tears the widget tree down and clears the cache.
func (m *UIManager) OnDeinitialize() {
	for _, v := range m.order {
		v.Close(true)
	}
	for _, w := range m.roots {
		w.Deinitialize()
	}
	m.roots = nil
	m.views = nil
	m.order = nil
	m.active = nil
	m.clicks = nil
	if ctx := m.svc.Context(); ctx != nil && ctx.UI == m {
		ctx.UI = nil
	}
}

// Tick routes one queued click, advances view fades, ticks the widget tree,
// then ticks open views in priority order. Hooks may open or close views or
// tear the manager down mid-frame; iteration works on snapshots and stops
// once the cache is gone.
func (m *UIManager) Tick(dt float64) {
	m.processInput()
	for _, v := range m.order {
		if m.views == nil {
			return
		}
		v.Update(float32(dt))
	}
	for _, w := range m.roots {
		if m.views == nil {
			return
		}
		if w.host.disposed || w.view != nil {
			continue
		}
		w.Tick(dt)
	}
	m.ticking = append(m.ticking[:0], m.active...)
	for _, v := range m.ticking {
		if m.views == nil {
			break
		}
		if !v.open || v.host.disposed {
			continue
		}
		v.Widget.Tick(dt)
	}
	clear(m.ticking)
}

// View returns the cached view named name. It reports false when the view
// does not exist or the cache has not been built.
func (m *UIManager) View(name string) (*View, bool) {
	v, ok := m.views[name]
	return v, ok
}

// ViewOf returns the first cached view whose hooks value is a T, along with
// the typed hooks.
func ViewOf[T any](m *UIManager) (T, *View, bool) {
	var zero T
	if m == nil {
		return zero, nil, false
	}
	for _, v := range m.order {
		if h, ok := v.hooks.(T); ok {
			return h, v, true
		}
	}
	return zero, nil, false
}

// OpenView opens the view named name.
func (m *UIManager) OpenView(name string, instant bool) error {
	v, err := m.lookup(name)
	if err != nil {
		return err
	}
	v.Open(instant)
	return nil
}

// CloseView closes the view named name.
func (m *UIManager) CloseView(name string, instant bool) error {
	v, err := m.lookup(name)
	if err != nil {
		return err
	}
	v.Close(instant)
	return nil
}

// ToggleView toggles the view named name.
func (m *UIManager) ToggleView(name string, instant bool) error {
	v, err := m.lookup(name)
	if err != nil {
		return err
	}
	v.Toggle(instant)
	return nil
}

// OpenViewOf opens the first view whose hooks value is a T.
func OpenViewOf[T any](m *UIManager, instant bool) error {
	_, v, ok := ViewOf[T](m)
	if !ok {
		return fmt.Errorf("%w: %T", ErrViewNotFound, (*T)(nil))
	}
	v.Open(instant)
	return nil
}

// CloseViewOf closes the first view whose hooks value is a T.
func CloseViewOf[T any](m *UIManager, instant bool) error {
	_, v, ok := ViewOf[T](m)
	if !ok {
		return fmt.Errorf("%w: %T", ErrViewNotFound, (*T)(nil))
	}
	v.Close(instant)
	return nil
}

func (m *UIManager) lookup(name string) (*View, error) {
	v, ok := m.views[name]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrViewNotFound, name)
		m.Log().WithError(err).Warn("view lookup failed")
		return nil, err
	}
	return v, nil
}

// Views returns every cached view in discovery order. The returned slice
// MUST NOT be mutated.
func (m *UIManager) Views() []*View {
	return m.order
}

// ActiveViews returns the open views in ascending priority, so the last
// element is the topmost. The returned slice MUST NOT be mutated.
func (m *UIManager) ActiveViews() []*View {
	return m.active
}

// TopView returns the open view with the highest priority.
func (m *UIManager) TopView() (*View, bool) {
	if len(m.active) == 0 {
		return nil, false
	}
	return m.active[len(m.active)-1], true
}

// viewChanged keeps the active set in step with a view's open state and
// reports the change to the scene.
func (m *UIManager) viewChanged(v *View) {
	idx := -1
	for i, a := range m.active {
		if a == v {
			idx = i
			break
		}
	}
	kind := EventViewClosed
	if v.open {
		kind = EventViewOpened
		if idx < 0 {
			m.active = append(m.active, v)
			sort.SliceStable(m.active, func(i, j int) bool {
				return m.active[i].Priority < m.active[j].Priority
			})
		}
	} else if idx >= 0 {
		copy(m.active[idx:], m.active[idx+1:])
		m.active[len(m.active)-1] = nil
		m.active = m.active[:len(m.active)-1]
	}
	if owner := m.svc.Owner(); owner != nil {
		owner.emit(kind, v.Name())
	}
}
