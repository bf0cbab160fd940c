package registry

import "context"

// Deferred is the "defined" notification of a tag in a registry. It is
// resolved at most once, when the tag is defined for the first time. It
// never fails; a tag which is never defined leaves it pending forever.
type Deferred struct {
	tag       string
	done      chan struct{}
	callbacks []func()
}

func newDeferred(tag string) *Deferred {
	return &Deferred{tag: tag, done: make(chan struct{})}
}

// Tag returns the tag name d waits for.
func (d *Deferred) Tag() string {
	return d.tag
}

// Done returns a channel which is closed once d is resolved.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Resolved is true once the tag has been defined.
func (d *Deferred) Resolved() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Then registers f to be called when d is resolved. Callbacks run on the
// goroutine defining the tag, after the definition has completed, in the
// order they were registered. If d is already resolved, f is called
// immediately.
func (d *Deferred) Then(f func()) {
	if f == nil {
		return
	}
	if d.Resolved() {
		f()
		return
	}
	d.callbacks = append(d.callbacks, f)
}

// Wait blocks until d is resolved or ctx is done.
func (d *Deferred) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve resolves d and returns the callbacks to run.
func (d *Deferred) resolve() []func() {
	if d.Resolved() {
		return nil
	}
	close(d.done)
	cbs := d.callbacks
	d.callbacks = nil
	return cbs
}
