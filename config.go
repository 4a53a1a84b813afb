package rampart

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Config is the application configuration: window, UI behavior and
// diagnostics. Field tags follow the config file keys.
type Config struct {
	Window   WindowConfig `mapstructure:"window" yaml:"window"`
	UI       UISettings   `mapstructure:"ui" yaml:"ui"`
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Debug    bool         `mapstructure:"debug" yaml:"debug"`
	// Layout is the path of a layout manifest (see LoadLayout).
	Layout string `mapstructure:"layout" yaml:"layout"`
}

// WindowConfig holds window settings for Run.
type WindowConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
}

// UISettings holds defaults applied to every view in a layout.
type UISettings struct {
	// FadeDuration is the default view fade in seconds.
	FadeDuration float32 `mapstructure:"fade_duration" yaml:"fade_duration"`
	// Ease names the default fade easing (see EaseByName).
	Ease               string `mapstructure:"ease" yaml:"ease"`
	DisableTransitions bool   `mapstructure:"disable_transitions" yaml:"disable_transitions"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "rampart",
			Width:  640,
			Height: 480,
		},
		UI: UISettings{
			FadeDuration: 0.25,
			Ease:         "linear",
		},
		LogLevel: "info",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.UI.FadeDuration < 0 {
		return fmt.Errorf("config: ui.fade_duration %v must not be negative", c.UI.FadeDuration)
	}
	if _, ok := EaseByName(c.UI.Ease); !ok {
		return fmt.Errorf("config: unknown ui.ease %q", c.UI.Ease)
	}
	return nil
}

// RunConfig returns the host loop settings.
func (c Config) RunConfig() RunConfig {
	return RunConfig{
		Title:  c.Window.Title,
		Width:  c.Window.Width,
		Height: c.Window.Height,
	}
}

// UIConfig returns the UIManager settings.
func (c Config) UIConfig() UIConfig {
	return UIConfig{DisableTransitions: c.UI.DisableTransitions}
}

// Viewport returns the full-window camera viewport.
func (c Config) Viewport() Rect {
	return Rect{Width: float64(c.Window.Width), Height: float64(c.Window.Height)}
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"inoutsine":  ease.InOutSine,
	"outbounce":  ease.OutBounce,
	"outelastic": ease.OutElastic,
}

// EaseByName returns the easing function for a case-insensitive name such
// as "linear" or "outCubic". An empty name selects linear.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	fn, ok := easings[key]
	return fn, ok
}
