package rampart

import "errors"

// Sentinel errors returned by rejected operations. They are usually wrapped
// with the offending name, so compare with errors.Is.
var (
	ErrNilService       = errors.New("rampart: nil service")
	ErrDuplicateService = errors.New("rampart: service already registered")
	ErrNilChild         = errors.New("rampart: nil child widget")
	ErrDuplicateChild   = errors.New("rampart: widget is already a child")
	ErrNotChild         = errors.New("rampart: widget is not a child")
	ErrWidgetCycle      = errors.New("rampart: adding widget would create a cycle")
	ErrViewNotFound     = errors.New("rampart: view not found")
	ErrMissingSlot      = errors.New("rampart: required context slot is empty")
	ErrHookPanic        = errors.New("rampart: lifecycle hook panicked")
)
