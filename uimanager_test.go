package rampart

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

type pauseHooks struct{ viewHooks }
type shopHooks struct{ viewHooks }
type mapHooks struct{ viewHooks }

// hudHooks ticks with the widget tree.
type hudHooks struct{ ticks int }

func (h *hudHooks) Tick(float64) { h.ticks++ }

type uiFixture struct {
	scene *Scene
	ui    *UIManager
	hook  *test.Hook
	sink  *eventLog

	hud               *hudHooks
	pause, shop, mapV *View
	pauseH            *pauseHooks
	shopH             *shopHooks
}

// newUIFixture builds canvas -> hud -> {pause, shop, map}, with the shop
// opening at start.
func newUIFixture(cfg UIConfig) *uiFixture {
	f := &uiFixture{hud: &hudHooks{}, pauseH: &pauseHooks{}, shopH: &shopHooks{}}
	f.scene, f.hook = newTestScene()
	f.sink = &eventLog{}
	f.scene.SetEventSink(f.sink)

	hud := NewWidget(NewNode("hud"), f.hud)
	f.scene.Canvas().AddChild(hud.Host())
	f.pause = NewView(nil, ViewConfig{Name: "pause", Priority: 10, FadeDuration: 0.5, Ease: ease.Linear}, f.pauseH)
	f.shop = NewView(nil, ViewConfig{Name: "shop", Priority: 5, StartOpen: true, FadeDuration: 0.5}, f.shopH)
	f.mapV = NewView(nil, ViewConfig{Name: "map", Priority: 1, FadeDuration: 0.5}, &mapHooks{})
	hud.Host().AddChild(f.pause.Host())
	hud.Host().AddChild(f.shop.Host())
	hud.Host().AddChild(f.mapV.Host())

	f.ui = NewUIManager(nil, cfg)
	f.scene.Add(f.ui.Service())
	return f
}

func (f *uiFixture) start() {
	f.scene.Initialize()
	f.scene.Activate()
}

func TestUIManagerStartOpenViewIsInstant(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	open := 0
	for _, v := range f.ui.Views() {
		if v.IsOpen() {
			open++
		}
	}
	assert.Equal(t, 1, open)
	assert.True(t, f.shop.IsOpen())
	assert.Equal(t, 1.0, f.shop.Alpha())
	assert.False(t, f.shop.Transitioning())
	assert.Equal(t, 0.0, f.pause.Alpha())
}

func TestUIManagerPublishesContextSlot(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	assert.Same(t, f.ui, f.scene.Context().UI)
	assert.NoError(t, f.scene.Context().Require(SlotUI))
	assert.Same(t, f.scene.Canvas(), f.ui.Root())
}

func TestUIManagerInitializesWidgetsOnce(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	for _, v := range f.ui.Views() {
		assert.True(t, v.IsInitialized(), v.Name())
		assert.Same(t, f.ui, v.Root(), v.Name())
	}
	hud := f.scene.Canvas().Find("hud").Widget()
	assert.Len(t, hud.Children(), 3)
}

func TestUIManagerViewLookup(t *testing.T) {
	f := newUIFixture(UIConfig{})

	_, ok := f.ui.View("pause")
	assert.False(t, ok, "cache is empty before setup")

	f.start()
	v, ok := f.ui.View("pause")
	assert.True(t, ok)
	assert.Same(t, f.pause, v)

	_, ok = f.ui.View("inventory")
	assert.False(t, ok)
}

func TestUIManagerOpenViewByName(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	require.NoError(t, f.ui.OpenView("pause", false))
	assert.True(t, f.pause.IsOpen())
	assert.True(t, f.pause.Transitioning())

	require.NoError(t, f.ui.CloseView("shop", true))
	assert.False(t, f.shop.IsOpen())

	require.NoError(t, f.ui.ToggleView("map", true))
	assert.True(t, f.mapV.IsOpen())
}

func TestUIManagerMissingViewIsNotFound(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	err := f.ui.OpenView("inventory", false)
	assert.ErrorIs(t, err, ErrViewNotFound)
	assert.ErrorIs(t, f.ui.CloseView("inventory", false), ErrViewNotFound)
	assert.ErrorIs(t, f.ui.ToggleView("inventory", false), ErrViewNotFound)
	assert.Equal(t, 3, countEntries(f.hook, "view lookup failed"))
}

type inventoryHooks struct{}

func TestUIManagerTypedLookup(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	h, v, ok := ViewOf[*pauseHooks](f.ui)
	require.True(t, ok)
	assert.Same(t, f.pauseH, h)
	assert.Same(t, f.pause, v)

	require.NoError(t, OpenViewOf[*pauseHooks](f.ui, true))
	assert.True(t, f.pause.IsOpen())
	require.NoError(t, CloseViewOf[*shopHooks](f.ui, true))
	assert.False(t, f.shop.IsOpen())

	_, _, ok = ViewOf[*inventoryHooks](f.ui)
	assert.False(t, ok)
	err := OpenViewOf[*inventoryHooks](f.ui, true)
	assert.ErrorIs(t, err, ErrViewNotFound)
	assert.Contains(t, err.Error(), "inventoryHooks")
	assert.ErrorIs(t, CloseViewOf[*inventoryHooks](f.ui, true), ErrViewNotFound)

	_, _, ok = ViewOf[*pauseHooks](nil)
	assert.False(t, ok)
}

func TestUIManagerActiveViewsByPriority(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	require.NoError(t, f.ui.OpenView("pause", true))
	require.NoError(t, f.ui.OpenView("map", true))

	assert.Equal(t, []*View{f.mapV, f.shop, f.pause}, f.ui.ActiveViews())
	top, ok := f.ui.TopView()
	assert.True(t, ok)
	assert.Same(t, f.pause, top)

	require.NoError(t, f.ui.CloseView("pause", false))
	assert.Equal(t, []*View{f.mapV, f.shop}, f.ui.ActiveViews())
}

func TestUIManagerTicksOnlyOpenViews(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	f.scene.Tick(0.1)

	assert.Equal(t, 1, f.hud.ticks)
	assert.Equal(t, 1, f.shopH.ticks)
	assert.Equal(t, 0, f.pauseH.ticks)

	require.NoError(t, f.ui.OpenView("pause", false))
	f.scene.Tick(0.1)
	assert.Equal(t, 1, f.pauseH.ticks)
	assert.Equal(t, 2, f.shopH.ticks)
}

func TestUIManagerTickAdvancesFades(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()
	require.NoError(t, f.ui.OpenView("pause", false))

	f.scene.Tick(0.25)
	assert.InDelta(t, 0.5, f.pause.Alpha(), 1e-3)
	f.scene.Tick(0.25)
	assert.InDelta(t, 1.0, f.pause.Alpha(), 1e-6)
	assert.False(t, f.pause.Transitioning())
}

func TestUIManagerDisableTransitions(t *testing.T) {
	f := newUIFixture(UIConfig{DisableTransitions: true})
	f.start()

	require.NoError(t, f.ui.OpenView("pause", false))

	assert.False(t, f.pause.Transitioning())
	assert.Equal(t, 1.0, f.pause.Alpha())
}

func TestUIManagerDeactivateClosesViewsInstantly(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()
	require.NoError(t, f.ui.OpenView("pause", false))
	f.scene.Tick(0.1)
	require.True(t, f.pause.Transitioning())

	f.scene.Deactivate()

	for _, v := range f.ui.Views() {
		assert.False(t, v.IsOpen(), v.Name())
		assert.False(t, v.Transitioning(), v.Name())
		assert.Equal(t, 0.0, v.Alpha(), v.Name())
		assert.False(t, v.Host().Interactable, v.Name())
	}
	assert.Empty(t, f.ui.ActiveViews())

	// Reactivation does not reopen start-open views.
	f.scene.Activate()
	assert.False(t, f.shop.IsOpen())
}

func TestUIManagerDeinitializeClearsCache(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()

	f.scene.Deinitialize()

	_, ok := f.ui.View("pause")
	assert.False(t, ok)
	assert.Empty(t, f.ui.Views())
	assert.ErrorIs(t, f.ui.OpenView("pause", true), ErrViewNotFound)
	assert.False(t, f.pause.IsInitialized())
	assert.Nil(t, f.scene.Context().UI)

	// A fresh bring-up rebuilds the cache and reopens start-open views.
	f.start()
	_, ok = f.ui.View("pause")
	assert.True(t, ok)
	assert.True(t, f.shop.IsOpen())
}

func TestUIManagerEmitsViewEvents(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()
	f.sink.events = nil

	require.NoError(t, f.ui.OpenView("pause", true))
	require.NoError(t, f.ui.CloseView("pause", true))

	require.Len(t, f.sink.events, 2)
	assert.Equal(t, EventViewOpened, f.sink.events[0].Kind)
	assert.Equal(t, "pause", f.sink.events[0].Name)
	assert.Equal(t, EventViewClosed, f.sink.events[1].Kind)
}

func TestUIManagerIndexesViewsAddedLater(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()
	hud := f.scene.Canvas().Find("hud").Widget()

	inv := NewView(nil, ViewConfig{Name: "inventory", Priority: 3}, &inventoryHooks{})
	require.NoError(t, hud.AddChild(inv.Widget))

	v, ok := f.ui.View("inventory")
	require.True(t, ok)
	assert.Same(t, inv, v)
	require.NoError(t, OpenViewOf[*inventoryHooks](f.ui, true))
	assert.True(t, inv.IsOpen())
}

func TestUIManagerDuplicateViewNameKeepsFirst(t *testing.T) {
	f := newUIFixture(UIConfig{})
	dup := NewView(nil, ViewConfig{Name: "pause"}, nil)
	f.scene.Canvas().AddChild(dup.Host())

	f.start()

	v, ok := f.ui.View("pause")
	require.True(t, ok)
	assert.Same(t, f.pause, v)
	assert.Equal(t, 1, countEntries(f.hook, "duplicate view name, keeping the first"))
}

func TestUIManagerExplicitRoot(t *testing.T) {
	s, _ := newTestScene()
	root := NewNode("menu")
	v := NewView(nil, ViewConfig{Name: "title", StartOpen: true}, nil)
	root.AddChild(v.Host())
	ui := NewUIManager(root, UIConfig{Name: "menu-ui"})
	s.Add(ui.Service())

	s.Initialize()

	assert.Equal(t, "menu-ui", ui.Service().Name())
	assert.Same(t, root, ui.Root())
	assert.True(t, v.IsOpen())
}

func TestUIManagerWithoutCanvasFailsSetup(t *testing.T) {
	ui := NewUIManager(nil, UIConfig{})
	err := ui.Service().Initialize(nil, &SharedContext{})
	assert.ErrorIs(t, err, ErrMissingSlot)
	assert.False(t, ui.Service().IsInitialized())
}

// closeOthersOnTick closes another view from inside an open view's tick.
type closeOthersOnTick struct{ other *View }

func (h *closeOthersOnTick) Tick(float64) { h.other.Close(true) }

func TestUIManagerViewTickMayCloseViews(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()
	closer := NewView(nil, ViewConfig{Name: "closer", Priority: 0}, &closeOthersOnTick{other: f.shop})
	require.NoError(t, f.scene.Canvas().Find("hud").Widget().AddChild(closer.Widget))
	closer.Open(true)
	f.pause.Open(true)

	assert.NotPanics(t, func() { f.scene.Tick(0.016) })
	assert.False(t, f.shop.IsOpen())
	assert.Equal(t, []*View{closer, f.pause}, f.ui.ActiveViews())
	assert.Equal(t, 1, f.pauseH.ticks)
}

// teardownOnTickView deinitializes the scene from inside a view tick.
type teardownOnTickView struct{ scene *Scene }

func (h *teardownOnTickView) Tick(float64) { h.scene.Deinitialize() }

func TestUIManagerViewTickMayTearDownScene(t *testing.T) {
	f := newUIFixture(UIConfig{})
	quit := NewView(nil, ViewConfig{Name: "quit", Priority: 1, StartOpen: true}, &teardownOnTickView{scene: f.scene})
	f.scene.Canvas().AddChild(quit.Host())
	f.start()

	assert.NotPanics(t, func() { f.scene.Tick(0.016) })
	assert.False(t, f.scene.IsInitialized())
	_, ok := f.ui.View("shop")
	assert.False(t, ok)
	assert.Zero(t, f.shopH.ticks)
}

func TestUIManagerRemovedViewLeavesCache(t *testing.T) {
	f := newUIFixture(UIConfig{})
	f.start()
	hud := f.scene.Canvas().Find("hud").Widget()
	require.NotNil(t, hud)

	require.NoError(t, hud.RemoveChild(f.shop.Widget))

	_, ok := f.ui.View("shop")
	assert.False(t, ok)
	assert.NotContains(t, f.ui.Views(), f.shop)
	assert.NotContains(t, f.ui.ActiveViews(), f.shop)
	assert.Nil(t, f.shop.Root())
	assert.True(t, f.shop.IsOpen(), "detaching keeps the view's own state")

	// Opening or closing a detached view no longer reaches the manager.
	f.shop.Close(true)
	f.pause.Open(true)
	assert.Equal(t, []*View{f.pause}, f.ui.ActiveViews())

	// Reattaching indexes it again.
	require.NoError(t, hud.AddChild(f.shop.Widget))
	v, ok := f.ui.View("shop")
	require.True(t, ok)
	assert.Same(t, f.shop, v)
	assert.Same(t, f.ui, f.shop.Root())
}
