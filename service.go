package rampart

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// Phase hooks. A service behavior implements only the phases it takes part
// in; every hook is optional.
type (
	// Initializer is the setup hook. Returning an error leaves the service
	// uninitialized and it is skipped by every later phase.
	Initializer interface {
		OnInitialize(owner *Scene, ctx *SharedContext) error
	}
	// Deinitializer is the teardown hook.
	Deinitializer interface {
		OnDeinitialize()
	}
	// Activator runs when the service becomes active.
	Activator interface {
		OnActivate()
	}
	// Deactivator runs when the service leaves the active state.
	Deactivator interface {
		OnDeactivate()
	}
	// Ticker runs once per frame while the service is active.
	Ticker interface {
		Tick(dt float64)
	}
	// LateTicker runs once per frame, after every Ticker, while active.
	LateTicker interface {
		LateTick(dt float64)
	}
	// Loader is polled by Scene.Activate before any service is activated.
	// It lets a service wait on an external asynchronous resource for as
	// many frames as it needs without blocking the host loop.
	Loader interface {
		Load(ctx *SharedContext) Task
	}
	// Drawer receives the host's screen while the service is active.
	Drawer interface {
		Draw(screen *ebiten.Image)
	}
)

// Service is the unit of composable behavior hosted by a Scene. It owns the
// lifecycle flags and guards; the behavior supplies the hooks.
//
// State machine:
//
//	Uninitialized -> Initialized -> Active -> Initialized -> Uninitialized
//
// Every guard is checked before a hook runs, so a hook can rely on its
// preconditions.
type Service struct {
	name     string
	behavior any

	owner *Scene
	ctx   *SharedContext
	log   logrus.FieldLogger

	initialized bool
	active      bool
}

// NewService creates a service named name whose hooks are implemented by
// behavior. behavior may be nil for a service with no hooks.
func NewService(name string, behavior any) *Service {
	return &Service{
		name:     name,
		behavior: behavior,
		log:      defaultLogger().WithField("service", name),
	}
}

// Name returns the service name.
func (s *Service) Name() string { return s.name }

// Behavior returns the hook implementation passed to NewService.
func (s *Service) Behavior() any { return s.behavior }

// Owner returns the Scene the service was initialized by, or nil.
func (s *Service) Owner() *Scene { return s.owner }

// Context returns the borrowed SharedContext, or nil outside of
// Initialize..Deinitialize.
func (s *Service) Context() *SharedContext { return s.ctx }

// Log returns the service's logger.
func (s *Service) Log() logrus.FieldLogger { return s.log }

// IsInitialized reports whether the setup hook has completed.
func (s *Service) IsInitialized() bool { return s.initialized }

// IsActive reports whether the service is active.
func (s *Service) IsActive() bool { return s.active }

// Initialize stores the owner and context and runs the setup hook. It is a
// no-op when already initialized. If the hook fails the references are
// dropped and the service stays uninitialized.
func (s *Service) Initialize(owner *Scene, ctx *SharedContext) error {
	if s.initialized {
		return nil
	}
	s.owner = owner
	s.ctx = ctx
	if owner != nil {
		s.log = owner.log.WithField("service", s.name)
	}
	if h, ok := s.behavior.(Initializer); ok {
		err := callHook(func() error { return h.OnInitialize(owner, ctx) })
		if err != nil {
			s.owner = nil
			s.ctx = nil
			return fmt.Errorf("initialize %s: %w", s.name, err)
		}
	}
	s.initialized = true
	s.emit(EventServiceInitialized)
	return nil
}

// Deinitialize deactivates the service, runs the teardown hook and drops
// the owner and context references. No-op when not initialized.
func (s *Service) Deinitialize() {
	if !s.initialized {
		return
	}
	s.Deactivate()
	if h, ok := s.behavior.(Deinitializer); ok {
		if err := callHook(func() error { h.OnDeinitialize(); return nil }); err != nil {
			s.log.WithError(err).Error("teardown hook failed")
		}
	}
	s.emit(EventServiceDeinitialized)
	s.initialized = false
	s.owner = nil
	s.ctx = nil
}

// Activate runs the activation hook. No-op unless initialized and inactive.
// A panicking hook leaves the service inactive.
func (s *Service) Activate() {
	if !s.initialized || s.active {
		return
	}
	s.active = true
	if h, ok := s.behavior.(Activator); ok {
		if err := callHook(func() error { h.OnActivate(); return nil }); err != nil {
			s.log.WithError(err).Error("activation hook failed")
			s.active = false
			return
		}
	}
	s.emit(EventServiceActivated)
}

// Deactivate runs the deactivation hook. No-op when inactive.
func (s *Service) Deactivate() {
	if !s.active {
		return
	}
	s.active = false
	if h, ok := s.behavior.(Deactivator); ok {
		if err := callHook(func() error { h.OnDeactivate(); return nil }); err != nil {
			s.log.WithError(err).Error("deactivation hook failed")
		}
	}
	s.emit(EventServiceDeactivated)
}

// Tick runs the per-frame hook while active. A panic is logged and the
// frame continues with the next service.
func (s *Service) Tick(dt float64) {
	if !s.active {
		return
	}
	if h, ok := s.behavior.(Ticker); ok {
		if err := callHook(func() error { h.Tick(dt); return nil }); err != nil {
			s.log.WithError(err).Error("tick hook failed")
		}
	}
}

// LateTick runs the late per-frame hook while active.
func (s *Service) LateTick(dt float64) {
	if !s.active {
		return
	}
	if h, ok := s.behavior.(LateTicker); ok {
		if err := callHook(func() error { h.LateTick(dt); return nil }); err != nil {
			s.log.WithError(err).Error("late tick hook failed")
		}
	}
}

// Draw forwards the screen to a Drawer behavior while active.
func (s *Service) Draw(screen *ebiten.Image) {
	if !s.active {
		return
	}
	if h, ok := s.behavior.(Drawer); ok {
		if err := callHook(func() error { h.Draw(screen); return nil }); err != nil {
			s.log.WithError(err).Error("draw hook failed")
		}
	}
}

// load starts the behavior's Loader task, or returns nil when it has none.
func (s *Service) load() Task {
	h, ok := s.behavior.(Loader)
	if !ok {
		return nil
	}
	var task Task
	err := callHook(func() error {
		task = h.Load(s.ctx)
		return nil
	})
	if err != nil {
		return Failed(err)
	}
	if task == nil {
		return Ready()
	}
	return task
}

func (s *Service) emit(kind EventKind) {
	if s.owner != nil {
		s.owner.emit(kind, s.name)
	}
}
