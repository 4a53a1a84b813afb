package rampart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

// viewHooks counts open and close hooks.
type viewHooks struct {
	opens, closes, ticks int
}

func (h *viewHooks) OnOpen()      { h.opens++ }
func (h *viewHooks) OnClose()     { h.closes++ }
func (h *viewHooks) Tick(float64) { h.ticks++ }

func newFadingView(name string, hooks any) *View {
	return NewView(nil, ViewConfig{Name: name, FadeDuration: 1, Ease: ease.Linear}, hooks)
}

func TestNewViewStartsClosed(t *testing.T) {
	v := newFadingView("shop", nil)

	assert.Equal(t, "shop", v.Name())
	assert.False(t, v.IsOpen())
	assert.False(t, v.Transitioning())
	assert.Equal(t, 0.0, v.Alpha())
	assert.False(t, v.Host().Interactable)
	assert.Same(t, v, v.Widget.View())
}

func TestNewViewRenamesHost(t *testing.T) {
	host := NewNode("node")
	v := NewView(host, ViewConfig{Name: "pause"}, nil)
	assert.Equal(t, "pause", host.Name)
	assert.Same(t, host, v.Host())

	kept := NewView(NewNode("hud"), ViewConfig{}, nil)
	assert.Equal(t, "hud", kept.Name())
}

func TestViewOpenInstant(t *testing.T) {
	h := &viewHooks{}
	v := newFadingView("shop", h)

	v.Open(true)

	assert.True(t, v.IsOpen())
	assert.False(t, v.Transitioning())
	assert.Equal(t, 1.0, v.Alpha())
	assert.True(t, v.Host().Interactable)
	assert.Equal(t, 1, h.opens)
}

func TestViewOpenFadesWithImmediateInteraction(t *testing.T) {
	v := newFadingView("shop", nil)

	v.Open(false)

	assert.True(t, v.IsOpen())
	assert.True(t, v.Host().Interactable)
	assert.True(t, v.Transitioning())
	assert.Equal(t, 0.0, v.Alpha())

	v.Update(0.5)
	assert.InDelta(t, 0.5, v.Alpha(), 1e-3)
	assert.True(t, v.Transitioning())

	v.Update(0.5)
	assert.InDelta(t, 1.0, v.Alpha(), 1e-6)
	assert.False(t, v.Transitioning())
}

func TestViewCloseDisablesInteractionImmediately(t *testing.T) {
	h := &viewHooks{}
	v := newFadingView("shop", h)
	v.Open(true)

	v.Close(false)

	assert.False(t, v.IsOpen())
	assert.False(t, v.Host().Interactable)
	assert.Equal(t, 1.0, v.Alpha())
	assert.True(t, v.Transitioning())
	assert.Equal(t, 1, h.closes)

	v.Update(1)
	assert.InDelta(t, 0.0, v.Alpha(), 1e-6)
}

func TestViewCloseWhenClosedIsNoOp(t *testing.T) {
	h := &viewHooks{}
	v := newFadingView("shop", h)

	v.Close(false)

	assert.False(t, v.IsOpen())
	assert.False(t, v.Transitioning())
	assert.Equal(t, 0, h.closes)
}

func TestViewOpenWhenOpenIsNoOp(t *testing.T) {
	h := &viewHooks{}
	v := newFadingView("shop", h)
	v.Open(false)
	v.Update(0.25)
	alpha := v.Alpha()

	v.Open(true)

	assert.Equal(t, 1, h.opens)
	assert.Equal(t, alpha, v.Alpha())
	assert.True(t, v.Transitioning())
}

func TestViewOpenDuringCloseTransition(t *testing.T) {
	v := newFadingView("shop", nil)
	v.Open(true)
	v.Close(false)
	v.Update(0.5)
	require.InDelta(t, 0.5, v.Alpha(), 1e-3)
	closing := v.transition

	v.Open(false)

	assert.True(t, v.IsOpen())
	assert.True(t, v.Host().Interactable)
	assert.NotSame(t, closing, v.transition)
	// The new fade starts where the cancelled one stopped.
	assert.InDelta(t, 0.5, v.Alpha(), 1e-3)
	v.Update(0.5)
	assert.InDelta(t, 0.75, v.Alpha(), 1e-3)
	v.Update(0.5)
	assert.InDelta(t, 1.0, v.Alpha(), 1e-6)
	assert.False(t, v.Transitioning())
}

func TestViewInstantCancelsTransition(t *testing.T) {
	v := newFadingView("shop", nil)
	v.Open(false)
	v.Update(0.3)

	v.Close(true)

	assert.False(t, v.Transitioning())
	assert.Equal(t, 0.0, v.Alpha())
	v.Update(1)
	assert.Equal(t, 0.0, v.Alpha())
}

func TestViewZeroFadeIsInstant(t *testing.T) {
	v := NewView(nil, ViewConfig{Name: "hud"}, nil)
	v.Open(false)
	assert.False(t, v.Transitioning())
	assert.Equal(t, 1.0, v.Alpha())
}

func TestViewToggle(t *testing.T) {
	v := newFadingView("shop", nil)
	v.Toggle(true)
	assert.True(t, v.IsOpen())
	v.Toggle(true)
	assert.False(t, v.IsOpen())
}

func TestViewFadeStopsOnDisposedHost(t *testing.T) {
	v := newFadingView("shop", nil)
	v.Open(false)
	v.Host().Dispose()

	v.Update(0.1)

	assert.False(t, v.Transitioning())
}

func TestViewDeinitializeCancelsTransition(t *testing.T) {
	v := newFadingView("shop", nil)
	v.Initialize(nil, nil)
	v.Open(false)
	v.Update(0.2)

	v.Deinitialize()

	assert.False(t, v.Transitioning())
	assert.False(t, v.IsInitialized())
}

type panickyOpen struct{}

func (panickyOpen) OnOpen() { panic("open exploded") }

func TestViewOpenHookPanicIsIsolated(t *testing.T) {
	v := NewView(nil, ViewConfig{Name: "bad"}, panickyOpen{})
	v.log = quietLogger()

	v.Open(true)

	assert.True(t, v.IsOpen())
	assert.Equal(t, 1.0, v.Alpha())
}
