// Package callback implements the progress and logging callback
// contracts shared by every external entry point (spec.md §6,
// "Callback contracts"). It is deliberately built on nothing but
// closures and a registry map: the contract is a plain function pointer
// invoked synchronously, not a push-based sink or a metrics registry, so
// there is no framework here to wire a third-party logging/metrics
// library into (see DESIGN.md's "callback" entry for this package).
package callback

import (
	"sync"
)

// Level is a log callback's severity, matching spec.md §6's
// "level ∈ {Verbose, Info, Warning, Error}" exactly.
type Level int

const (
	Verbose Level = iota
	Info
	Warning
	Error
)

// String renders the level the way a log line would show it.
func (l Level) String() string {
	switch l {
	case Verbose:
		return "VERBOSE"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogFunc is the log callback contract: level, an optional domain tag,
// and the message. Implementations must be reentrant-safe (spec.md §6:
// "invoked synchronously from any thread").
type LogFunc func(level Level, domain, message string)

// ProgressFunc is the progress callback contract: an optional status
// string and progress in [0,1]. Returning true requests cancellation.
type ProgressFunc func(status string, progress float64) (cancel bool)

// Handle identifies one registered log callback, returned by Register
// and consumed by Unregister (spec.md §6: "RegisterLogCallback /
// Unregister — Log sink management").
type Handle uint32

// Logger fans a single log event out to every currently registered
// LogFunc. The zero value is ready to use.
type Logger struct {
	mu       sync.RWMutex
	next     Handle
	handlers map[Handle]LogFunc
}

// NewLogger returns a ready-to-use Logger.
func NewLogger() *Logger {
	return &Logger{handlers: make(map[Handle]LogFunc)}
}

// Register adds fn to the fan-out set and returns a Handle to remove it
// later. Complexity: O(1) amortized.
func (l *Logger) Register(fn LogFunc) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handlers == nil {
		l.handlers = make(map[Handle]LogFunc)
	}
	l.next++
	h := l.next
	l.handlers[h] = fn
	return h
}

// Unregister removes the callback identified by h. Unregistering an
// unknown or already-removed handle is a no-op.
func (l *Logger) Unregister(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.handlers, h)
}

// Log fans the event out to every registered handler. Safe for
// concurrent use alongside Register/Unregister from any goroutine.
func (l *Logger) Log(level Level, domain, message string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, fn := range l.handlers {
		fn(level, domain, message)
	}
}

// Verbosef, Infof, Warningf, and Errorf are convenience wrappers around Log
// at the matching severity.
func (l *Logger) Verbosef(domain, message string) { l.Log(Verbose, domain, message) }
func (l *Logger) Infof(domain, message string)    { l.Log(Info, domain, message) }
func (l *Logger) Warningf(domain, message string) { l.Log(Warning, domain, message) }
func (l *Logger) Errorf(domain, message string)   { l.Log(Error, domain, message) }

// Throttled wraps a ProgressFunc so the kernel only polls it every
// interval checkpoints, matching spec.md §4.C/§6's "polled at bounded
// intervals" contract without every caller needing to implement its own
// counter.
type Throttled struct {
	fn       ProgressFunc
	interval int
	count    int
}

// NewThrottled returns a Throttled progress poller; interval<=0 means
// "poll every call" (interval 1).
func NewThrottled(fn ProgressFunc, interval int) *Throttled {
	if interval <= 0 {
		interval = 1
	}
	return &Throttled{fn: fn, interval: interval}
}

// Poll increments the internal counter and, every interval calls,
// invokes the wrapped ProgressFunc; other calls return false (no
// cancellation) without invoking fn.
func (t *Throttled) Poll(status string, progress float64) bool {
	if t.fn == nil {
		return false
	}
	t.count++
	if t.count%t.interval != 0 {
		return false
	}
	return t.fn(status, progress)
}
