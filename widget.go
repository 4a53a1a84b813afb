package rampart

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Widget hooks. A widget's hooks value implements only the ones it needs.
// Per-frame work uses the same Ticker interface as services.
type (
	// WidgetSetup runs once per Initialize, after the children have been
	// initialized. Returning an error leaves the widget uninitialized.
	WidgetSetup interface {
		Setup(w *Widget) error
	}
	// WidgetTeardown runs once per Deinitialize.
	WidgetTeardown interface {
		Teardown()
	}
	// VisibleHook runs when the widget becomes visible, before its children.
	VisibleHook interface {
		OnVisible()
	}
	// HiddenHook runs when the widget is hidden, before its children.
	HiddenHook interface {
		OnHidden()
	}
)

// Widget is a node of the UI lifecycle tree. It is hosted on a Node of the
// composition hierarchy and propagates Initialize, Visible, Hidden and Tick
// to the widgets below it.
//
// Children are discovered at Initialize by walking the host's subtree. The
// walk stops at any node hosting its own widget: nested widgets own their
// own children. The tree tracks membership only; host nodes may be disposed
// externally at any time and are then skipped.
//
// Invariant: visible implies initialized, an enabled host, and a visible
// owner (a widget without an owner treats it as visible).
type Widget struct {
	host  *Node
	hooks any
	view  *View

	root     *UIManager
	owner    *Widget
	children []*Widget

	initialized bool
	visible     bool

	log logrus.FieldLogger
}

// NewWidget hosts a widget on host. A container node is created when host
// is nil. hooks may be nil.
func NewWidget(host *Node, hooks any) *Widget {
	if host == nil {
		host = NewNode("widget")
	}
	w := &Widget{host: host, hooks: hooks}
	host.widget = w
	return w
}

// Name returns the host node's name.
func (w *Widget) Name() string { return w.host.Name }

// Host returns the node this widget is hosted on.
func (w *Widget) Host() *Node { return w.host }

// Hooks returns the hooks value passed to NewWidget.
func (w *Widget) Hooks() any { return w.hooks }

// View returns the View this widget belongs to, or nil.
func (w *Widget) View() *View { return w.view }

// Root returns the UIManager that initialized this widget, or nil.
func (w *Widget) Root() *UIManager { return w.root }

// Owner returns the parent widget, or nil for a tree root.
func (w *Widget) Owner() *Widget { return w.owner }

// Children returns the child widgets. The returned slice MUST NOT be mutated.
func (w *Widget) Children() []*Widget { return w.children }

// IsInitialized reports whether the widget has been initialized.
func (w *Widget) IsInitialized() bool { return w.initialized }

// IsVisible reports whether the widget is visible.
func (w *Widget) IsVisible() bool { return w.visible }

// SetEnabled enables or disables the host node. The widget and its subtree
// raise Visible or Hidden as a result.
func (w *Widget) SetEnabled(enabled bool) {
	w.host.SetEnabled(enabled)
}

func (w *Widget) logger() logrus.FieldLogger {
	if w.log != nil {
		return w.log
	}
	return defaultLogger().WithField("widget", w.host.Name)
}

// Initialize discovers the children, initializes them with this widget as
// their owner, runs the setup hook and, when the host is enabled, raises
// Visible. No-op when already initialized.
func (w *Widget) Initialize(root *UIManager, owner *Widget) {
	if w.initialized {
		return
	}
	w.root = root
	w.owner = owner
	if root != nil {
		w.log = root.Log().WithField("widget", w.host.Name)
	}
	w.children = w.discover()
	for _, c := range w.children {
		c.Initialize(root, w)
	}
	if h, ok := w.hooks.(WidgetSetup); ok {
		if err := callHook(func() error { return h.Setup(w) }); err != nil {
			w.logger().WithError(err).Error("widget setup failed")
			for _, c := range w.children {
				c.Deinitialize()
			}
			return
		}
	}
	w.initialized = true
	if w.host.EnabledInHierarchy() {
		w.Visible()
	}
}

// discover collects the widgets hosted below this widget's host, stopping
// at each hosting node. Children added with AddChild before Initialize are
// kept.
func (w *Widget) discover() []*Widget {
	found := make([]*Widget, 0, len(w.children))
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if c.disposed {
				continue
			}
			if c.widget != nil {
				found = append(found, c.widget)
				continue
			}
			walk(c)
		}
	}
	walk(w.host)
	for _, c := range w.children {
		if !containsWidget(found, c) {
			found = append(found, c)
		}
	}
	return found
}

// Visible marks the widget visible, runs its hook, then raises Visible on
// each child. Rejected when uninitialized, when the host is disabled or
// disposed, or when the owner is not visible.
func (w *Widget) Visible() {
	if w.visible || !w.canBeVisible() {
		return
	}
	w.visible = true
	if h, ok := w.hooks.(VisibleHook); ok {
		if err := callHook(func() error { h.OnVisible(); return nil }); err != nil {
			w.logger().WithError(err).Error("visible hook failed")
		}
	}
	for _, c := range w.children {
		c.Visible()
	}
}

// Hidden marks the widget hidden, runs its hook, then hides each child.
func (w *Widget) Hidden() {
	if !w.visible {
		return
	}
	w.visible = false
	if h, ok := w.hooks.(HiddenHook); ok {
		if err := callHook(func() error { h.OnHidden(); return nil }); err != nil {
			w.logger().WithError(err).Error("hidden hook failed")
		}
	}
	for _, c := range w.children {
		c.Hidden()
	}
}

func (w *Widget) canBeVisible() bool {
	if !w.initialized || !w.host.EnabledInHierarchy() {
		return false
	}
	return w.owner == nil || w.owner.visible
}

// refresh raises Visible or Hidden to match the current host and owner state.
func (w *Widget) refresh() {
	if w.canBeVisible() {
		w.Visible()
	} else {
		w.Hidden()
	}
}

// Tick runs the per-frame hook while visible, then ticks every child. Child
// views managed by a UIManager are skipped; the manager ticks open views
// itself.
func (w *Widget) Tick(dt float64) {
	if !w.visible {
		return
	}
	if h, ok := w.hooks.(Ticker); ok {
		if err := callHook(func() error { h.Tick(dt); return nil }); err != nil {
			w.logger().WithError(err).Error("tick hook failed")
		}
	}
	for _, c := range w.children {
		if c == nil || c.host.disposed || (c.view != nil && c.root != nil) {
			continue
		}
		c.Tick(dt)
	}
}

// AddChild attaches child below this widget after discovery. The child's
// host node is moved under this widget's host so that the next Initialize
// rediscovers it. When this widget is initialized the child is initialized
// under it. Adding nil, an existing child, or an ancestor is rejected and
// logged.
func (w *Widget) AddChild(child *Widget) error {
	if child == nil {
		w.logger().WithError(ErrNilChild).Error("add child rejected")
		return ErrNilChild
	}
	if containsWidget(w.children, child) {
		err := fmt.Errorf("%w: %s", ErrDuplicateChild, child.Name())
		w.logger().WithError(err).Error("add child rejected")
		return err
	}
	if child == w || isOwnerOf(child, w) || isAncestor(child.host, w.host) {
		err := fmt.Errorf("%w: %s", ErrWidgetCycle, child.Name())
		w.logger().WithError(err).Error("add child rejected")
		return err
	}
	if child.owner != nil {
		child.owner.children = removeWidget(child.owner.children, child)
	}
	if !isAncestor(w.host, child.host) {
		w.host.AddChild(child.host)
	}
	child.owner = w
	w.children = append(w.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
	if !w.initialized {
		return nil
	}
	if child.initialized {
		child.refresh()
	} else {
		child.Initialize(w.root, w)
	}
	if w.root != nil {
		w.root.index(child)
	}
	return nil
}

// RemoveChild detaches child from this widget and its host from this
// widget's host. The child keeps its own lifecycle state and becomes the
// root of its own tree; its views leave the UIManager cache and the caller
// owns its teardown. Removing a widget that is not a child is rejected and
// logged.
func (w *Widget) RemoveChild(child *Widget) error {
	if child == nil || !containsWidget(w.children, child) {
		name := "<nil>"
		if child != nil {
			name = child.Name()
		}
		err := fmt.Errorf("%w: %s", ErrNotChild, name)
		w.logger().WithError(err).Error("remove child rejected")
		return err
	}
	w.children = removeWidget(w.children, child)
	child.owner = nil
	child.host.RemoveFromParent()
	if child.root != nil {
		child.root.unindex(child)
	}
	child.refresh()
	return nil
}

// Deinitialize hides the widget, deinitializes its children, runs the
// teardown hook, cancels any view transition, and resets all state so the
// next Initialize starts from scratch.
func (w *Widget) Deinitialize() {
	if !w.initialized {
		return
	}
	w.Hidden()
	for _, c := range w.children {
		c.Deinitialize()
	}
	if w.view != nil {
		w.view.cancelTransition()
	}
	if h, ok := w.hooks.(WidgetTeardown); ok {
		if err := callHook(func() error { h.Teardown(); return nil }); err != nil {
			w.logger().WithError(err).Error("widget teardown failed")
		}
	}
	w.children = nil
	w.initialized = false
	w.root = nil
	w.owner = nil
}

// walk visits w and every widget below it, parent first.
func (w *Widget) walk(fn func(*Widget)) {
	fn(w)
	for _, c := range w.children {
		c.walk(fn)
	}
}

// --- Helpers ---

func containsWidget(list []*Widget, w *Widget) bool {
	for _, c := range list {
		if c == w {
			return true
		}
	}
	return false
}

func removeWidget(list []*Widget, w *Widget) []*Widget {
	for i, c := range list {
		if c == w {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// isOwnerOf reports whether candidate is an owner (transitively) of w.
func isOwnerOf(candidate, w *Widget) bool {
	for p := w.owner; p != nil; p = p.owner {
		if p == candidate {
			return true
		}
	}
	return false
}
