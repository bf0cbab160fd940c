package registry

import "github.com/npillmayer/scopedreg/dom"

// anchor is an entry of the creation context stack: the node a creation
// primitive has been invoked on, or a registry pushed by Registry.Upgrade.
type anchor struct {
	node     *dom.Node
	registry *Registry
}

// withContext runs create with a pushed onto the creation context stack.
// The entry is popped on every exit path, including panics.
func (e *Engine) withContext(a anchor, create func() error) error {
	e.context = append(e.context, a)
	depth := len(e.context)
	defer func() {
		e.context = e.context[:depth-1]
	}()
	return create()
}

// intercept is installed as the document's creation interceptor.
func (e *Engine) intercept(context *dom.Node, create func() error) error {
	return e.withContext(anchor{node: context}, create)
}

// currentContext returns the top of the creation context stack.
func (e *Engine) currentContext() (anchor, bool) {
	if len(e.context) == 0 {
		return anchor{}, false
	}
	return e.context[len(e.context)-1], true
}
