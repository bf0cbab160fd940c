package registry

import "github.com/npillmayer/scopedreg/dom"

// resolve determines the registry owning el. The tree root of el decides if
// it is a scope anchor; otherwise the top of the creation context stack is
// resolved instead.
func (e *Engine) resolve(el *dom.Node) (*Registry, error) {
	if r, ok := e.scopeOf(el.RootNode()); ok {
		return r, nil
	}
	if top, ok := e.currentContext(); ok {
		if top.registry != nil {
			return top.registry, nil
		}
		if r, ok := e.scopeOf(top.node.RootNode()); ok {
			return r, nil
		}
	}
	return nil, ErrNoValidScope
}

// scopeOf returns the registry of a tree root which is a scope anchor: the
// document, or a shadow root. Shadow roots attached without a registry of
// this engine belong to the global registry.
func (e *Engine) scopeOf(root *dom.Node) (*Registry, bool) {
	switch root.NodeType() {
	case dom.DocumentNode:
		if root == e.doc.Node() {
			return e.global, true
		}
	case dom.ShadowRootNode:
		if r, ok := root.ShadowRegistry().(*Registry); ok && r.engine == e {
			return r, true
		}
		return e.global, true
	}
	return nil, false
}

// RegistryFor returns the registry an element created under node would
// belong to.
func (e *Engine) RegistryFor(node *dom.Node) (*Registry, error) {
	r, err := e.resolve(node)
	if err != nil {
		return nil, failure("resolve", node.LocalName(), err)
	}
	return r, nil
}
