package rampart

import "errors"

// Task is a resumable unit of work polled once per frame. Poll must never
// block: it reports whether the work has finished and, if so, how.
type Task interface {
	Poll() (done bool, err error)
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func() (bool, error)

// Poll calls f.
func (f TaskFunc) Poll() (bool, error) {
	return f()
}

// Ready returns a Task that is already complete.
func Ready() Task {
	return TaskFunc(func() (bool, error) { return true, nil })
}

// Failed returns a Task that is already complete with err.
func Failed(err error) Task {
	return TaskFunc(func() (bool, error) { return true, err })
}

// FromChannel returns a Task that completes when ch yields a value or is
// closed. The sender owns whatever goroutine produces the result; the task
// itself only performs a non-blocking receive.
func FromChannel(ch <-chan error) Task {
	var (
		done bool
		err  error
	)
	return TaskFunc(func() (bool, error) {
		if done {
			return true, err
		}
		select {
		case e, ok := <-ch:
			done = true
			if ok {
				err = e
			}
			return true, err
		default:
			return false, nil
		}
	})
}

// AfterFrames returns a Task that completes on its n-th poll.
func AfterFrames(n int) Task {
	polls := 0
	return TaskFunc(func() (bool, error) {
		polls++
		return polls >= n, nil
	})
}

// activation tracks a Scene.Activate that is waiting on Loader tasks.
type activation struct {
	pending []pendingLoad
	failed  map[*Service]bool
}

type pendingLoad struct {
	svc  *Service
	task Task
}

type loadFailure struct {
	svc *Service
	err error
}

// poll advances every pending task once. Finished tasks are removed; failed
// ones are remembered so their services are skipped at completion.
func (a *activation) poll() []loadFailure {
	var failures []loadFailure
	kept := a.pending[:0]
	for _, p := range a.pending {
		var done bool
		err := callHook(func() error {
			var e error
			done, e = p.task.Poll()
			return e
		})
		if errors.Is(err, ErrHookPanic) {
			done = true
		}
		if !done {
			kept = append(kept, p)
			continue
		}
		if err != nil {
			if a.failed == nil {
				a.failed = make(map[*Service]bool)
			}
			a.failed[p.svc] = true
			failures = append(failures, loadFailure{svc: p.svc, err: err})
		}
	}
	for i := len(kept); i < len(a.pending); i++ {
		a.pending[i] = pendingLoad{}
	}
	a.pending = kept
	return failures
}

func (a *activation) done() bool {
	return len(a.pending) == 0
}
