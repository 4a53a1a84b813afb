package rampart

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the world view published in the SharedContext camera slot.
// Services steer it; Scene.LateTick advances it once per frame while the
// scene is active. A scroll in flight takes precedence over follow, and
// bounds are applied last.
type Camera struct {
	// X and Y are the world point shown at the viewport center.
	X, Y float64
	// Zoom is the number of screen pixels per world unit. Zero or less is
	// treated as 1.
	Zoom float64
	// Viewport is the screen rectangle the camera maps onto.
	Viewport Rect

	follow *cameraFollow
	scroll *cameraScroll
	bounds *Rect
}

type cameraFollow struct {
	target *Node
	offset Vec2
	lerp   float64
}

type cameraScroll struct {
	x, y *gween.Tween
}

func newCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// Follow tracks node's position plus the offset. Each frame the camera moves
// lerp of the remaining distance; 1 snaps. Following stops when the node is
// disposed.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	if node == nil {
		c.follow = nil
		return
	}
	c.follow = &cameraFollow{target: node, offset: Vec2{X: offsetX, Y: offsetY}, lerp: lerp}
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() { c.follow = nil }

// Following returns the tracked node, or nil.
func (c *Camera) Following() *Node {
	if c.follow == nil {
		return nil
	}
	return c.follow.target
}

// ScrollTo moves the camera to (x, y) over duration seconds. A duration of
// zero or less jumps at once. A later call replaces a scroll in flight.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.scroll = nil
		c.X, c.Y = x, y
		c.clamp()
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scroll = &cameraScroll{
		x: gween.New(float32(c.X), float32(x), duration, easeFn),
		y: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo is in flight.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds keeps the visible area inside r.
func (c *Camera) SetBounds(r Rect) {
	c.bounds = &r
	c.clamp()
}

// ClearBounds removes the bounds.
func (c *Camera) ClearBounds() { c.bounds = nil }

// Bounds returns the current bounds, if any.
func (c *Camera) Bounds() (Rect, bool) {
	if c.bounds == nil {
		return Rect{}, false
	}
	return *c.bounds, true
}

// VisibleRect returns the world rectangle covered by the viewport.
func (c *Camera) VisibleRect() Rect {
	z := c.zoom()
	w, h := c.Viewport.Width/z, c.Viewport.Height/z
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// WorldToScreen maps a world point to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	z := c.zoom()
	return c.Viewport.X + c.Viewport.Width/2 + (wx-c.X)*z,
		c.Viewport.Y + c.Viewport.Height/2 + (wy-c.Y)*z
}

// ScreenToWorld maps screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	z := c.zoom()
	return c.X + (sx-c.Viewport.X-c.Viewport.Width/2)/z,
		c.Y + (sy-c.Viewport.Y-c.Viewport.Height/2)/z
}

// update advances scroll or follow, then applies bounds.
func (c *Camera) update(dt float32) {
	switch {
	case c.scroll != nil:
		x, doneX := c.scroll.x.Update(dt)
		y, doneY := c.scroll.y.Update(dt)
		c.X, c.Y = float64(x), float64(y)
		if doneX && doneY {
			c.scroll = nil
		}
	case c.follow != nil:
		f := c.follow
		if f.target.IsDisposed() {
			c.follow = nil
			break
		}
		c.X += (f.target.X + f.offset.X - c.X) * f.lerp
		c.Y += (f.target.Y + f.offset.Y - c.Y) * f.lerp
	}
	c.clamp()
}

// clamp keeps the visible area inside the bounds, centering on any axis
// where the bounds are smaller than the view.
func (c *Camera) clamp() {
	if c.bounds == nil {
		return
	}
	b := *c.bounds
	z := c.zoom()
	halfW, halfH := c.Viewport.Width/(2*z), c.Viewport.Height/(2*z)
	c.X = clampAxis(c.X, b.X+halfW, b.X+b.Width-halfW)
	c.Y = clampAxis(c.Y, b.Y+halfH, b.Y+b.Height-halfH)
}

func clampAxis(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(v, hi))
}
