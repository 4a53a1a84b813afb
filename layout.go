package rampart

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// layoutDoc is the top-level YAML structure of a layout manifest.
type layoutDoc struct {
	Root  string       `yaml:"root"`
	Nodes []layoutNode `yaml:"nodes"`
}

// layoutNode describes one node of the composition hierarchy. A node hosts
// a widget when widget is true or kind is set, and a view when view is set.
type layoutNode struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Widget   bool         `yaml:"widget"`
	Enabled  *bool        `yaml:"enabled"`
	View     *layoutView  `yaml:"view"`
	Children []layoutNode `yaml:"children"`
}

type layoutView struct {
	Priority  int       `yaml:"priority"`
	StartOpen bool      `yaml:"start_open"`
	Fade      *float32  `yaml:"fade"`
	Ease      string    `yaml:"ease"`
	Bounds    []float64 `yaml:"bounds"` // x, y, width, height
}

// HooksFactory returns the hooks value for a widget or view declared in a
// layout. kind is the node's kind key (may be empty); name is its name.
// Returning nil builds a widget without hooks.
type HooksFactory func(kind, name string) any

// Layout is a composition hierarchy built from a manifest.
type Layout struct {
	// Root is the canvas node; pass it as SceneConfig.Canvas or to
	// NewUIManager.
	Root    *Node
	Widgets map[string]*Widget
	Views   map[string]*View
}

// LoadLayout decodes a YAML layout manifest and builds its nodes, widgets
// and views. defaults supplies the fade duration and easing of views that
// do not set their own. hooks may be nil.
//
//	root: canvas
//	nodes:
//	  - name: hud
//	    widget: true
//	    children:
//	      - name: pause
//	        view: {priority: 10, fade: 0.3, ease: outCubic, bounds: [0, 0, 320, 240]}
func LoadLayout(data []byte, defaults UISettings, hooks HooksFactory) (*Layout, error) {
	var doc layoutDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("parse layout: no nodes")
	}
	defaultEase, ok := EaseByName(defaults.Ease)
	if !ok {
		return nil, fmt.Errorf("parse layout: unknown default ease %q", defaults.Ease)
	}
	if doc.Root == "" {
		doc.Root = "canvas"
	}

	b := &layoutBuilder{
		hooks:       hooks,
		defaults:    defaults,
		defaultEase: defaultEase,
		layout: &Layout{
			Root:    NewNode(doc.Root),
			Widgets: make(map[string]*Widget),
			Views:   make(map[string]*View),
		},
	}
	for i := range doc.Nodes {
		if err := b.build(b.layout.Root, &doc.Nodes[i]); err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
	}
	return b.layout, nil
}

type layoutBuilder struct {
	hooks       HooksFactory
	defaults    UISettings
	defaultEase ease.TweenFunc
	layout      *Layout
}

func (b *layoutBuilder) build(parent *Node, ln *layoutNode) error {
	if ln.Name == "" {
		return fmt.Errorf("node under %q has no name", parent.Name)
	}
	node := NewNode(ln.Name)
	if ln.Enabled != nil {
		node.Enabled = *ln.Enabled
	}
	parent.AddChild(node)

	var hooks any
	if b.hooks != nil && (ln.View != nil || ln.Widget || ln.Kind != "") {
		hooks = b.hooks(ln.Kind, ln.Name)
	}

	switch {
	case ln.View != nil:
		if _, dup := b.layout.Views[ln.Name]; dup {
			return fmt.Errorf("duplicate view %q", ln.Name)
		}
		fn := b.defaultEase
		if ln.View.Ease != "" {
			e, ok := EaseByName(ln.View.Ease)
			if !ok {
				return fmt.Errorf("view %q: unknown ease %q", ln.Name, ln.View.Ease)
			}
			fn = e
		}
		var bounds Rect
		switch len(ln.View.Bounds) {
		case 0:
		case 4:
			bb := ln.View.Bounds
			bounds = Rect{X: bb[0], Y: bb[1], Width: bb[2], Height: bb[3]}
		default:
			return fmt.Errorf("view %q: bounds needs 4 values, got %d", ln.Name, len(ln.View.Bounds))
		}
		fadeDur := b.defaults.FadeDuration
		if ln.View.Fade != nil {
			fadeDur = *ln.View.Fade
		}
		v := NewView(node, ViewConfig{
			Priority:     ln.View.Priority,
			StartOpen:    ln.View.StartOpen,
			FadeDuration: fadeDur,
			Ease:         fn,
			Bounds:       bounds,
		}, hooks)
		b.layout.Views[ln.Name] = v
		b.layout.Widgets[ln.Name] = v.Widget
	case ln.Widget || ln.Kind != "":
		b.layout.Widgets[ln.Name] = NewWidget(node, hooks)
	}

	for i := range ln.Children {
		if err := b.build(node, &ln.Children[i]); err != nil {
			return err
		}
	}
	return nil
}
