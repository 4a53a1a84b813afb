package rampart

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// defaultLogger is used by components that have not been attached to a Scene
// yet (for example a Widget built before its manager is initialized).
func defaultLogger() logrus.FieldLogger {
	return logrus.StandardLogger()
}

// callHook runs fn and converts a panic into an error wrapping ErrHookPanic.
// One broken component must not take down the bring-up of its siblings.
func callHook(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHookPanic, r)
		}
	}()
	return fn()
}
