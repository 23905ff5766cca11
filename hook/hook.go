package hook

import "fmt"

// Interface models a guarded block of work: Try runs the work, Catch maps a
// Try error (or recovered panic) to the final error, Finally always runs.
type Interface interface {
	Try() error
	Catch(err error) error
	Finally()
}

// Call executes the hook, converting a panic inside Try into an error routed
// through Catch. Used to invoke subscriber callbacks so one misbehaving
// listener cannot take down the caller.
func Call(h Interface) (err error) {
	if h == nil {
		return fmt.Errorf("hook cannot be nil")
	}

	defer h.Finally()

	defer func() {
		if r := recover(); r != nil {
			err = h.Catch(fmt.Errorf("panic occurred during hook execution: %v", r))
		}
	}()

	tryErr := h.Try()
	if tryErr != nil {
		err = h.Catch(tryErr)
		return err
	}

	return nil
}

// Func adapts a plain function to Interface. Catch passes the error through
// unchanged and Finally is a no-op.
type Func func() error

func (f Func) Try() error            { return f() }
func (f Func) Catch(err error) error { return err }
func (f Func) Finally()              {}

// Safe runs fn under Call, returning any error or recovered panic.
func Safe(fn func()) error {
	return Call(Func(func() error {
		fn()
		return nil
	}))
}
