package rampart

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// quietLogger discards everything.
func quietLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

// newTestScene returns a scene whose log entries, down to debug level, are
// captured by the returned hook.
func newTestScene() (*Scene, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return NewScene(SceneConfig{Name: "test", Logger: l}), hook
}

// countEntries returns how many captured entries have the given message.
func countEntries(hook *test.Hook, msg string) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Message == msg {
			n++
		}
	}
	return n
}

var errBoom = errors.New("boom")

// recorder is a service behavior that appends "<name>.<hook>" to a shared
// call log for every hook it runs.
type recorder struct {
	name  string
	calls *[]string

	initErr   error
	initPanic bool
	ctx       *SharedContext
	ticks     int
}

func newRecorder(name string, calls *[]string) *recorder {
	return &recorder{name: name, calls: calls}
}

func (r *recorder) record(hook string) {
	*r.calls = append(*r.calls, fmt.Sprintf("%s.%s", r.name, hook))
}

func (r *recorder) OnInitialize(_ *Scene, ctx *SharedContext) error {
	r.record("init")
	if r.initPanic {
		panic("setup exploded")
	}
	if r.initErr != nil {
		return r.initErr
	}
	r.ctx = ctx
	return nil
}

func (r *recorder) OnDeinitialize()  { r.record("deinit") }
func (r *recorder) OnActivate()      { r.record("activate") }
func (r *recorder) OnDeactivate()    { r.record("deactivate") }
func (r *recorder) Tick(float64)     { r.record("tick"); r.ticks++ }
func (r *recorder) LateTick(float64) { r.record("late") }

// loading is a recorder that also implements Loader.
type loading struct {
	*recorder
	task Task
}

func (l *loading) Load(*SharedContext) Task { return l.task }

// eventLog is an EventSink that keeps every event.
type eventLog struct {
	events []LifecycleEvent
}

func (e *eventLog) EmitEvent(ev LifecycleEvent) {
	e.events = append(e.events, ev)
}

func (e *eventLog) kinds() []EventKind {
	out := make([]EventKind, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Kind
	}
	return out
}
