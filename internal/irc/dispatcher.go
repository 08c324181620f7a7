package irc

import (
	"container/list"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
)

var (
	// ErrNotListener is returned when registering a value that implements
	// none of the listener groups.
	ErrNotListener = errors.New("irc: value implements no listener interface")
	// ErrNotComparable is returned when registering a value that cannot be
	// identified for later removal (e.g. a func or a struct holding a map).
	ErrNotComparable = errors.New("irc: listener is not comparable, register a pointer instead")
)

// HandlerError describes a handler that panicked during dispatch.
type HandlerError struct {
	Kind     Kind
	Observer string // dynamic type of the observer
	Value    any    // recovered value
	Stack    []byte
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("irc: %s handler of %s panicked: %v", e.Kind, e.Observer, e.Value)
}

func (e *HandlerError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Dispatcher delivers events to an ordered set of observers.
//
// Notify runs every handler on the calling goroutine, in registration order.
// Add and Remove may be called at any time, including from inside a handler;
// they take effect for the next Notify. The zero value is ready to use.
type Dispatcher struct {
	// ErrorHandler receives recovered handler panics. Defaults to logging.
	ErrorHandler func(err *HandlerError)

	mu       sync.Mutex
	entries  *list.List
	index    map[any][]*list.Element
	snapshot []any
	stale    bool
}

// Add appends an observer. Adding the same observer twice registers it twice
// and it receives every event twice.
func (d *Dispatcher) Add(o any) error {
	if o == nil || !implementsAny(o) {
		return ErrNotListener
	}
	if !hashable(o) {
		return ErrNotComparable
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		d.entries = list.New()
		d.index = make(map[any][]*list.Element)
	}
	el := d.entries.PushBack(o)
	d.index[o] = append(d.index[o], el)
	d.stale = true
	return nil
}

// Remove drops the most recent registration of o. Removing an observer that
// is not registered does nothing.
func (d *Dispatcher) Remove(o any) {
	if o == nil || !hashable(o) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	els := d.index[o]
	if len(els) == 0 {
		return
	}
	last := els[len(els)-1]
	d.entries.Remove(last)
	if len(els) == 1 {
		delete(d.index, o)
	} else {
		d.index[o] = els[:len(els)-1]
	}
	d.stale = true
}

// Len returns the number of registrations.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		return 0
	}
	return d.entries.Len()
}

// Notify delivers e to every registered observer that implements e's group.
// A panicking handler is reported to ErrorHandler and does not stop delivery
// to the remaining observers.
//
// A handler that causes another Notify on the same dispatcher gets that
// event delivered in full before the current fan-out resumes.
func (d *Dispatcher) Notify(c Conn, e Event) {
	if e == nil {
		return
	}
	for _, o := range d.observers() {
		d.call(c, e, o)
	}
}

func (d *Dispatcher) call(c Conn, e Event, o any) {
	defer func() {
		if r := recover(); r != nil {
			d.report(&HandlerError{
				Kind:     e.Kind(),
				Observer: fmt.Sprintf("%T", o),
				Value:    r,
				Stack:    debug.Stack(),
			})
		}
	}()
	e.deliver(c, o)
}

func (d *Dispatcher) report(err *HandlerError) {
	if d.ErrorHandler != nil {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("irc: error handler panicked: %v (reporting %v)", r, err)
			}
		}()
		d.ErrorHandler(err)
		return
	}
	log.Printf("%v\n%s", err, err.Stack)
}

// hashable reports whether o can be used as a map key. A comparable type can
// still hold an uncomparable dynamic value in an interface field.
func hashable(o any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	m := make(map[any]struct{}, 1)
	m[o] = struct{}{}
	return len(m) == 1
}

// observers returns the registry as of now. The returned slice is never
// modified afterwards, so an in-flight fan-out is unaffected by Add/Remove.
func (d *Dispatcher) observers() []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stale {
		return d.snapshot
	}
	snap := make([]any, 0, d.entries.Len())
	for el := d.entries.Front(); el != nil; el = el.Next() {
		snap = append(snap, el.Value)
	}
	d.snapshot = snap
	d.stale = false
	return snap
}
