// Package rampart is a scene lifecycle orchestrator and UI view system for
// [Ebitengine] games.
//
// A [Scene] owns a [SharedContext] of long-lived subsystems (camera, canvas,
// UI manager, level) and an ordered registry of [Service] values. It drives
// every service through the same phases, always in registration order:
//
//	Initialize -> Activate -> Tick / LateTick ... -> Deactivate -> Deinitialize
//
// A [UIManager] is itself a service. It hosts a tree of [Widget] values
// attached to [Node] elements of the composition hierarchy, and a cache of
// named [View] values that open and close with a cross-fade.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	canvas := rampart.NewNode("canvas")
//	rampart.NewView(nil, rampart.ViewConfig{Name: "pause", Priority: 10, FadeDuration: 0.3}, nil)
//	// ... attach view hosts under canvas ...
//
//	scene := rampart.NewScene(rampart.SceneConfig{Canvas: canvas})
//	scene.Add(rampart.NewUIManager(nil, rampart.UIConfig{}).Service())
//	rampart.Run(scene, rampart.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself, or wrap the scene
// with [NewGame], and call the phase methods directly.
//
// # Services
//
// [NewService] wraps a behavior value. The behavior implements only the
// hooks it needs: [Initializer], [Activator], [Ticker], [LateTicker],
// [Deactivator], [Deinitializer], [Loader] and [Drawer]. The service owns the
// guard flags, so a hook never runs out of order:
//
//	type spawner struct{ level rampart.Level }
//
//	func (s *spawner) OnInitialize(_ *rampart.Scene, ctx *rampart.SharedContext) error {
//		if err := ctx.Require(rampart.SlotLevel); err != nil {
//			return err
//		}
//		s.level = ctx.Level
//		return nil
//	}
//
//	func (s *spawner) Tick(dt float64) { ... }
//
//	scene.Add(rampart.NewService("spawner", &spawner{}))
//
// A setup hook that fails (or panics) is logged. Its service is skipped by
// every later phase and the remaining services continue their bring-up.
//
// # Resumable activation
//
// A [Loader] returns a [Task] that [Scene.Activate] polls once per frame. No
// service is activated until every task has finished. Use [FromChannel] to
// wait on a goroutine, [AfterFrames] to wait a fixed number of frames, or
// implement Task directly.
//
// # Widgets and views
//
// A widget discovers its children by walking its host node's subtree and
// stops at any node hosting another widget. Visible and Hidden propagate
// parent first; a widget is never visible while its host is disabled or its
// owner is hidden. [Node.SetEnabled] re-evaluates visibility for the widgets
// below it.
//
// A [View] switches interaction immediately on Open and Close and fades its
// host's Alpha with a [gween] tween. Starting a new transition cancels the
// one in flight. [UIManager.OpenView], [OpenViewOf] and friends look views
// up in the manager's cache.
//
// # Input
//
// [Game] queues left-button presses on the [UIManager] with
// [UIManager.Click]. Each tick the manager hands one queued click to the
// topmost open view whose host is interactable and whose Bounds contain the
// point; the view's hooks receive it through [ClickHook]. Clicks are dropped
// while the window has no focus.
//
// # Layouts and configuration
//
// [LoadLayout] builds a composition hierarchy from a YAML manifest.
// [Config] carries window, UI and logging settings; the rampart command
// loads it with viper.
//
// # Logging
//
// All diagnostics go through [logrus]. Pass a logger in [SceneConfig];
// services and widgets derive field loggers from it.
//
// # Debug mode
//
// [Scene.SetDebugMode] logs per-frame tick timings and warns about deep or
// wide widget trees.
//
// # ECS integration
//
// [Scene.SetEventSink] forwards lifecycle events. The ecs sub-module bridges
// them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [logrus]: https://github.com/sirupsen/logrus
// [Donburi]: https://github.com/yohamta/donburi
package rampart
