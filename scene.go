package rampart

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// ContextProvider populates SharedContext slots from the environment during
// Scene.PrepareContext. A returned error is logged and does not stop the
// remaining providers.
type ContextProvider func(ctx *SharedContext) error

// SceneConfig holds the composition-time settings of a Scene.
type SceneConfig struct {
	// Name identifies the scene in log output.
	Name string
	// Logger receives all diagnostics. Defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger
	// Viewport is the screen rectangle of the camera created by PrepareContext.
	Viewport Rect
	// Canvas is the root of the UI composition hierarchy. A container named
	// "canvas" is created when nil.
	Canvas *Node
	// Providers run in order at the end of PrepareContext.
	Providers []ContextProvider
	// Debug enables per-frame timing logs and tree sanity warnings.
	Debug bool
}

// Scene is the top-level orchestrator. It owns the SharedContext and the
// ordered service registry and drives every lifecycle phase.
//
// Phase calls are always issued in registration order. Calling a phase out
// of order is not an error: the guard flags absorb it.
type Scene struct {
	name      string
	log       logrus.FieldLogger
	viewport  Rect
	canvas    *Node
	providers []ContextProvider

	composed []*Service
	services []*Service
	ctx      SharedContext

	contextReady bool
	initialized  bool
	active       bool
	activating   *activation

	sink   EventSink
	script *ScriptRunner
	debug  bool
	stats  debugStats
	frame  uint64
	quit   bool
}

// NewScene creates a scene from cfg. No phase runs until Initialize.
func NewScene(cfg SceneConfig) *Scene {
	if cfg.Name == "" {
		cfg.Name = "scene"
	}
	if cfg.Logger == nil {
		cfg.Logger = defaultLogger()
	}
	if cfg.Canvas == nil {
		cfg.Canvas = NewNode("canvas")
	}
	s := &Scene{
		name:      cfg.Name,
		log:       cfg.Logger.WithField("scene", cfg.Name),
		viewport:  cfg.Viewport,
		canvas:    cfg.Canvas,
		providers: cfg.Providers,
	}
	s.SetDebugMode(cfg.Debug)
	return s
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Log returns the scene logger.
func (s *Scene) Log() logrus.FieldLogger { return s.log }

// Canvas returns the root of the UI composition hierarchy.
func (s *Scene) Canvas() *Node { return s.canvas }

// Context returns the scene's SharedContext.
func (s *Scene) Context() *SharedContext { return &s.ctx }

// ContextReady reports whether PrepareContext has run since the last
// Deinitialize.
func (s *Scene) ContextReady() bool { return s.contextReady }

// IsInitialized reports whether Initialize has completed.
func (s *Scene) IsInitialized() bool { return s.initialized }

// IsActive reports whether every service has been activated.
func (s *Scene) IsActive() bool { return s.active }

// Activating reports whether Activate is waiting on Loader tasks.
func (s *Scene) Activating() bool { return s.activating != nil }

// Frame returns the number of Tick calls since the scene was created.
func (s *Scene) Frame() uint64 { return s.frame }

// Services returns the registry in registration order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Services() []*Service {
	return s.services
}

// Service returns the first registered service named name.
func (s *Scene) Service(name string) (*Service, bool) {
	for _, svc := range s.services {
		if svc.name == name {
			return svc, true
		}
	}
	return nil, false
}

// SetEventSink sets the optional lifecycle observer.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Add appends services to the composition scope. They are registered, in
// order, on the next Initialize; rejections are reported at that point.
func (s *Scene) Add(svcs ...*Service) {
	s.composed = append(s.composed, svcs...)
}

// Register adds svc to the registry. A nil or already registered service is
// rejected with a logged error and no state change. Before Initialize the
// service waits in the registry and is set up by Initialize; afterwards it
// is initialized immediately, and activated when the scene is active.
// Unlike Add, a registration does not survive Deinitialize.
func (s *Scene) Register(svc *Service) error {
	if err := s.register(svc); err != nil {
		return err
	}
	if !s.initialized {
		return nil
	}
	s.initService(svc)
	if s.active {
		svc.Activate()
	}
	return nil
}

func (s *Scene) register(svc *Service) error {
	if svc == nil {
		s.log.WithError(ErrNilService).Error("service registration rejected")
		return ErrNilService
	}
	for _, existing := range s.services {
		if existing == svc {
			err := fmt.Errorf("%w: %s", ErrDuplicateService, svc.name)
			s.log.WithError(err).WithField("service", svc.name).Error("service registration rejected")
			return err
		}
	}
	s.services = append(s.services, svc)
	return nil
}

func (s *Scene) initService(svc *Service) {
	if err := svc.Initialize(s, &s.ctx); err != nil {
		s.log.WithError(err).WithField("service", svc.name).Error("service setup failed, skipping")
	}
}

// PrepareContext populates the SharedContext: the camera (when absent),
// the canvas, the default flags, then every ContextProvider. No-op when the
// context is already prepared.
func (s *Scene) PrepareContext() {
	if s.contextReady {
		return
	}
	if s.ctx.Camera == nil {
		s.ctx.Camera = newCamera(s.viewport)
	}
	s.ctx.Canvas = s.canvas
	s.ctx.Visible = true
	s.ctx.HasInput = true
	for i, p := range s.providers {
		if p == nil {
			continue
		}
		if err := callHook(func() error { return p(&s.ctx) }); err != nil {
			s.log.WithError(err).WithField("provider", i).Warn("context provider failed")
		}
	}
	s.contextReady = true
}

// Initialize prepares the context if needed, registers every composed
// service, then initializes each registered service in registration order.
// A service whose setup fails is logged and skipped by later phases; the
// rest of the bring-up continues. No-op when already initialized.
func (s *Scene) Initialize() {
	if s.initialized {
		return
	}
	if !s.contextReady {
		s.PrepareContext()
	}
	for _, svc := range s.composed {
		_ = s.register(svc)
	}
	for _, svc := range s.services {
		if !svc.initialized {
			s.initService(svc)
		}
	}
	s.initialized = true
	s.log.WithField("services", len(s.services)).Debug("scene initialized")
}

// Activate starts every Loader task and, once all of them have finished,
// activates each initialized service in registration order and marks the
// scene active. If no task is pending activation completes before Activate
// returns; otherwise Tick polls the tasks once per frame. A failed task is
// logged and its service stays inactive.
//
// No-op when not initialized, already active, or already activating.
func (s *Scene) Activate() {
	if !s.initialized || s.active || s.activating != nil {
		return
	}
	act := &activation{}
	for _, svc := range s.services {
		if !svc.initialized {
			continue
		}
		if task := svc.load(); task != nil {
			act.pending = append(act.pending, pendingLoad{svc: svc, task: task})
		}
	}
	s.activating = act
	s.resumeActivation()
}

// resumeActivation polls the pending activation once and completes it when
// every task has finished.
func (s *Scene) resumeActivation() {
	act := s.activating
	for _, f := range act.poll() {
		s.log.WithError(f.err).WithField("service", f.svc.name).Error("service load failed, skipping activation")
	}
	if !act.done() {
		return
	}
	s.activating = nil
	for _, svc := range s.services {
		if !s.initialized {
			return
		}
		if act.failed[svc] {
			continue
		}
		svc.Activate()
	}
	if !s.initialized {
		return
	}
	s.active = true
	s.emit(EventSceneActivated, "")
	s.log.Debug("scene activated")
}

// Tick forwards a frame to every active service. While an activation is
// pending it only polls the activation.
func (s *Scene) Tick(dt float64) {
	s.frame++
	if s.activating != nil {
		s.resumeActivation()
		return
	}
	if !s.active {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	// A hook may deactivate or tear down the scene mid-frame.
	for _, svc := range s.services {
		if !s.active {
			return
		}
		svc.Tick(dt)
	}
	if s.debug {
		s.stats.tickTime = time.Since(t0)
	}
}

// LateTick forwards the late frame to every active service, then advances
// the camera.
func (s *Scene) LateTick(dt float64) {
	if !s.active {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	for _, svc := range s.services {
		if !s.active {
			return
		}
		svc.LateTick(dt)
	}
	if s.ctx.Camera != nil {
		s.ctx.Camera.update(float32(dt))
	}
	if s.debug {
		s.stats.lateTickTime = time.Since(t0)
		s.stats.serviceCount = len(s.services)
		s.stats.activeCount = 0
		for _, svc := range s.services {
			if svc.active {
				s.stats.activeCount++
			}
		}
		s.debugLog(s.stats)
	}
}

// Draw hands the host screen to every active Drawer service.
func (s *Scene) Draw(screen *ebiten.Image) {
	if !s.active {
		return
	}
	for _, svc := range s.services {
		if !s.active {
			return
		}
		svc.Draw(screen)
	}
}

// Deactivate deactivates every service in registration order. No-op when
// the scene is not active, including while an activation is still pending.
func (s *Scene) Deactivate() {
	if !s.active {
		return
	}
	s.active = false
	for _, svc := range s.services {
		svc.Deactivate()
	}
	s.emit(EventSceneDeactivated, "")
	s.log.Debug("scene deactivated")
}

// Deinitialize abandons any pending activation, deactivates, runs every
// teardown hook in registration order, and clears the registry and the
// context. No-op when not initialized.
func (s *Scene) Deinitialize() {
	if !s.initialized {
		return
	}
	s.activating = nil
	s.Deactivate()
	s.initialized = false
	svcs := s.services
	s.services = nil
	for _, svc := range svcs {
		svc.Deinitialize()
	}
	s.ctx.reset()
	s.contextReady = false
	s.log.Debug("scene deinitialized")
}

// Quit asks the host loop to stop after the current frame.
func (s *Scene) Quit() {
	s.quit = true
}

// QuitRequested reports whether Quit has been called.
func (s *Scene) QuitRequested() bool {
	return s.quit
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame tick
// timings are logged at debug level and widget tree depth and child count
// warnings are emitted.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that widget
// operations (which may run before a Scene is known) can check it cheaply.
var globalDebug bool

func (s *Scene) emit(kind EventKind, name string) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(LifecycleEvent{Kind: kind, Name: name, Frame: s.frame})
}
