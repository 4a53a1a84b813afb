package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/phanxgames/rampart"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every subcommand: the viper instance the
// flags are bound to, and the loaded configuration.
type app struct {
	v   *viper.Viper
	cfg rampart.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "rampart",
		Short: "Scene lifecycle and UI view runner",
		Long: `rampart loads a UI layout manifest, composes a scene around it and either
opens a window (play) or drives the scene headless from a lifecycle script
(script).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	// Global flags
	root.PersistentFlags().StringP("config", "c", "", "config file (default is ./rampart.yaml)")
	root.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("debug", false, "log per-frame timings and tree warnings")
	root.PersistentFlags().StringP("layout", "l", "", "layout manifest (YAML)")
	_ = a.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("layout", root.PersistentFlags().Lookup("layout"))

	root.AddCommand(newPlayCmd(a), newScriptCmd(a))
	return root
}

// setDefaults registers every DefaultConfig value with viper so that env
// overrides work for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	d := rampart.DefaultConfig()
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("ui.fade_duration", d.UI.FadeDuration)
	v.SetDefault("ui.ease", d.UI.Ease)
	v.SetDefault("ui.disable_transitions", d.UI.DisableTransitions)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("layout", d.Layout)
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v := a.v
	setDefaults(v)

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("rampart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RAMPART")
	// RAMPART_UI_FADE_DURATION for ui.fade_duration
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing ./rampart.yaml is fine; a missing --config file is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg rampart.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.log.SetLevel(level)
	return nil
}

// buildScene loads the configured layout and composes a scene with a
// UIManager over it.
func (a *app) buildScene() (*rampart.Scene, *rampart.UIManager, error) {
	path := a.cfg.Layout
	if path == "" {
		return nil, nil, fmt.Errorf("no layout given (use --layout or the layout config key)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read layout: %w", err)
	}
	layout, err := rampart.LoadLayout(data, a.cfg.UI, nil)
	if err != nil {
		return nil, nil, err
	}

	scene := rampart.NewScene(rampart.SceneConfig{
		Name:     a.cfg.Window.Title,
		Logger:   a.log,
		Viewport: a.cfg.Viewport(),
		Canvas:   layout.Root,
		Debug:    a.cfg.Debug,
	})
	ui := rampart.NewUIManager(nil, a.cfg.UIConfig())
	scene.Add(ui.Service())
	return scene, ui, nil
}
