// Package alert carries the transient user-visible notices the storefront
// emits for recoverable conditions (stock clamps, removed lines, duplicate
// wishlist entries). Notices never abort the operation that raised them.
package alert

import "log"

type Level string

const (
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

type Notifier interface {
	Notify(level Level, message string)
}

// Func adapts a function to the Notifier interface.
type Func func(level Level, message string)

func (f Func) Notify(level Level, message string) { f(level, message) }

// Log writes notices to the process log. The default sink when no UI
// collaborator is attached.
type Log struct{}

func (Log) Notify(level Level, message string) {
	log.Printf("[%s] %s", level, message)
}

// Recorder collects notices for assertions in tests.
type Recorder struct {
	Notices []Notice
}

type Notice struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(level Level, message string) {
	r.Notices = append(r.Notices, Notice{Level: level, Message: message})
}
