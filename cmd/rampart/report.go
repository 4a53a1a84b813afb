package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/rampart"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D7FF"))
	labelStyle  = lipgloss.NewStyle().Width(16)
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FAF")).
			Padding(0, 1)
)

func badge(on bool, yes, no string) string {
	if on {
		return onStyle.Render(yes)
	}
	return offStyle.Render(no)
}

// renderReport summarizes the scene after a headless run: one section for
// the scene, one row per service and one row per cached view.
func renderReport(scene *rampart.Scene, ui *rampart.UIManager, frames int, done bool) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Scene " + scene.Name()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("frames"), frames)
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("script"), badge(done, "done", "incomplete"))
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("state"), badge(scene.IsActive(), "active", "inactive"))

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Services"))
	b.WriteString("\n")
	for _, svc := range scene.Services() {
		fmt.Fprintf(&b, "%s%s %s\n",
			labelStyle.Render(svc.Name()),
			badge(svc.IsInitialized(), "initialized", "uninitialized"),
			badge(svc.IsActive(), "active", "inactive"))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Views"))
	b.WriteString("\n")
	for _, name := range viewNames(ui) {
		v, ok := ui.View(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s%s alpha=%.2f priority=%d\n",
			labelStyle.Render(name),
			badge(v.IsOpen(), "open", "closed"),
			v.Alpha(), v.Priority)
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

// viewNames lists the cached views: open views topmost first, then the
// closed ones in discovery order.
func viewNames(ui *rampart.UIManager) []string {
	if ui == nil {
		return nil
	}
	var names []string
	active := ui.ActiveViews()
	for i := len(active) - 1; i >= 0; i-- {
		names = append(names, active[i].Name())
	}
	for _, v := range ui.Views() {
		if !v.IsOpen() {
			names = append(names, v.Name())
		}
	}
	return names
}
