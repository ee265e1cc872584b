package daemon

import "fmt"

// StartupFatalError aborts the daemon before any actor was started
type StartupFatalError struct {
	Reason string
	Err    error
}

func (e *StartupFatalError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *StartupFatalError) Unwrap() error {
	return e.Err
}
