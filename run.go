package rampart

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

const defaultTPS = 60

// Game adapts a Scene to ebiten.Game. The first Update initializes and
// activates the scene; every Update forwards one Tick and one LateTick.
type Game struct {
	scene   *Scene
	cfg     RunConfig
	started bool
}

// NewGame wraps scene for use with ebiten.RunGame.
func NewGame(scene *Scene, cfg RunConfig) *Game {
	return &Game{scene: scene, cfg: cfg}
}

// Update advances the scene by one frame. It returns ebiten.Termination
// once Scene.Quit has been called.
func (g *Game) Update() error {
	s := g.scene
	if !g.started {
		g.started = true
		s.Initialize()
		s.Activate()
	}
	if s.script != nil {
		s.script.Step(s)
	}
	if s.contextReady {
		s.ctx.HasInput = ebiten.IsFocused()
		if s.ctx.UI != nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			s.ctx.UI.Click(float64(x), float64(y))
		}
	}
	dt := frameDelta()
	s.Tick(dt)
	s.LateTick(dt)
	if s.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// Draw hands the screen to the scene's Drawer services.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout returns the configured logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width <= 0 || g.cfg.Height <= 0 {
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}

// frameDelta returns the fixed update step in seconds.
func frameDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	return 1.0 / float64(tps)
}

// Run opens a window and drives scene until the window closes or Quit is
// called, then deinitializes it.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	err := ebiten.RunGame(NewGame(scene, cfg))
	scene.Deinitialize()
	return err
}
