package rampart

// ClickHook is implemented by view hooks that accept pointer clicks.
type ClickHook interface {
	OnClick(x, y float64)
}

// Click queues a pointer click at the given screen coordinates. Clicks are
// consumed one per Tick, oldest first, and dropped while the context reports
// no input focus. Game.Update queues real left-button presses here; tests and
// scripts call it directly.
func (m *UIManager) Click(x, y float64) {
	m.clicks = append(m.clicks, Vec2{X: x, Y: y})
}

// ViewAt returns the topmost open view that accepts input at (x, y). A view
// accepts input when its host is interactable and enabled and the point lies
// inside its bounds. A view with empty bounds covers the whole screen.
func (m *UIManager) ViewAt(x, y float64) (*View, bool) {
	for i := len(m.active) - 1; i >= 0; i-- {
		v := m.active[i]
		if !v.host.Interactable || !v.host.EnabledInHierarchy() {
			continue
		}
		if v.Bounds.Width <= 0 || v.Bounds.Height <= 0 || v.Bounds.Contains(x, y) {
			return v, true
		}
	}
	return nil, false
}

// processInput pops one queued click and routes it to the view under it.
func (m *UIManager) processInput() {
	if len(m.clicks) == 0 {
		return
	}
	p := m.clicks[0]
	copy(m.clicks, m.clicks[1:])
	m.clicks = m.clicks[:len(m.clicks)-1]

	if ctx := m.svc.Context(); ctx != nil && !ctx.HasInput {
		return
	}
	v, ok := m.ViewAt(p.X, p.Y)
	if !ok {
		return
	}
	h, ok := v.hooks.(ClickHook)
	if !ok {
		return
	}
	if err := callHook(func() error { h.OnClick(p.X, p.Y); return nil }); err != nil {
		m.Log().WithError(err).WithField("view", v.Name()).Error("click hook failed")
	}
}
