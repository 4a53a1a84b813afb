package rampart

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// View hooks, in addition to the widget hooks.
type (
	// OpenHook runs after a view switches to open.
	OpenHook interface {
		OnOpen()
	}
	// CloseHook runs after a view switches to closed.
	CloseHook interface {
		OnClose()
	}
)

// ViewConfig describes a View at composition time.
type ViewConfig struct {
	// Name is the cache key used by the UIManager. Defaults to the host name.
	Name string
	// Priority orders open views for the host (higher draws on top). The view
	// itself never enforces it.
	Priority int
	// StartOpen makes the UIManager open the view instantly at setup.
	StartOpen bool
	// FadeDuration is the cross-fade length in seconds. Zero or less makes
	// every transition instant.
	FadeDuration float32
	// Ease is the fade easing function. Defaults to ease.Linear.
	Ease ease.TweenFunc
	// Bounds is the screen area that receives clicks. Empty bounds cover
	// the whole screen.
	Bounds Rect
}

// View is a widget with an open/closed state shown through a cross-fade of
// the host's Alpha between 0 and 1.
//
// Interaction (the host's Interactable flag) switches immediately on both
// Open and Close; only the opacity animates. While a fade is in flight the
// two can disagree: an opening view accepts input before it is fully shown.
//
// At most one transition is in flight. Starting another cancels the first
// synchronously; transitions are never queued.
type View struct {
	*Widget

	Priority     int
	StartOpen    bool
	FadeDuration float32
	Ease         ease.TweenFunc
	Bounds       Rect

	open       bool
	transition *fade
}

// NewView hosts a closed view on host. A node named cfg.Name is created when
// host is nil.
func NewView(host *Node, cfg ViewConfig, hooks any) *View {
	if host == nil {
		host = NewNode(cfg.Name)
	} else if cfg.Name != "" {
		host.Name = cfg.Name
	}
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	v := &View{
		Widget:       NewWidget(host, hooks),
		Priority:     cfg.Priority,
		StartOpen:    cfg.StartOpen,
		FadeDuration: cfg.FadeDuration,
		Ease:         cfg.Ease,
		Bounds:       cfg.Bounds,
	}
	v.Widget.view = v
	host.Alpha = 0
	host.Interactable = false
	return v
}

// IsOpen reports whether the view is open. A closing view reports false
// while its fade is still running.
func (v *View) IsOpen() bool { return v.open }

// Transitioning reports whether a fade is in flight.
func (v *View) Transitioning() bool { return v.transition != nil }

// Alpha returns the host's current opacity.
func (v *View) Alpha() float64 { return v.host.Alpha }

// Open opens the view. Interaction is enabled immediately; the opacity
// snaps to 1 when instant is true or fading is disabled, and fades in from
// its current value otherwise. No-op when already open.
func (v *View) Open(instant bool) {
	if v.open {
		return
	}
	v.open = true
	v.host.Interactable = true
	v.transitionTo(1, instant)
	if h, ok := v.hooks.(OpenHook); ok {
		if err := callHook(func() error { h.OnOpen(); return nil }); err != nil {
			v.logger().WithError(err).Error("open hook failed")
		}
	}
	if v.root != nil {
		v.root.viewChanged(v)
	}
}

// Close closes the view. Interaction is disabled immediately; the opacity
// snaps or fades toward 0 as in Open. No-op when already closed.
func (v *View) Close(instant bool) {
	if !v.open {
		return
	}
	v.open = false
	v.host.Interactable = false
	v.transitionTo(0, instant)
	if h, ok := v.hooks.(CloseHook); ok {
		if err := callHook(func() error { h.OnClose(); return nil }); err != nil {
			v.logger().WithError(err).Error("close hook failed")
		}
	}
	if v.root != nil {
		v.root.viewChanged(v)
	}
}

// Toggle closes an open view and opens a closed one.
func (v *View) Toggle(instant bool) {
	if v.open {
		v.Close(instant)
	} else {
		v.Open(instant)
	}
}

// Update advances the in-flight fade by dt seconds.
func (v *View) Update(dt float32) {
	if v.transition == nil {
		return
	}
	if v.transition.update(dt) {
		v.transition = nil
	}
}

func (v *View) transitionTo(to float64, instant bool) {
	v.cancelTransition()
	if instant || v.FadeDuration <= 0 || !v.fadesEnabled() {
		v.host.Alpha = to
		return
	}
	v.transition = newFade(v.host, to, v.FadeDuration, v.Ease)
}

func (v *View) fadesEnabled() bool {
	return v.root == nil || !v.root.cfg.DisableTransitions
}

// cancelTransition drops the in-flight fade, leaving the opacity where it is.
func (v *View) cancelTransition() {
	v.transition = nil
}

// fade animates a node's Alpha with a single gween tween. If the node is
// disposed the fade stops immediately.
type fade struct {
	tween  *gween.Tween
	target *Node
}

func newFade(target *Node, to float64, duration float32, fn ease.TweenFunc) *fade {
	return &fade{
		tween:  gween.New(float32(target.Alpha), float32(to), duration, fn),
		target: target,
	}
}

// update advances the tween and writes the value to the target. It reports
// whether the fade has finished.
func (f *fade) update(dt float32) bool {
	if f.target.IsDisposed() {
		return true
	}
	val, finished := f.tween.Update(dt)
	f.target.Alpha = float64(val)
	return finished
}
