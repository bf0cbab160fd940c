package dom

import "fmt"

// ShadowRootInit configures a shadow root.
type ShadowRootInit struct {
	Mode     string          // "open" (default) or "closed"
	Registry ElementRegistry // registry the shadow tree is scoped to; nil for the document's
}

// AttachShadow attaches a shadow root to an element. An element may carry
// at most one shadow root.
func (n *Node) AttachShadow(init ShadowRootInit) (*Node, error) {
	if n.kind != ElementNode {
		return nil, fmt.Errorf("%w: cannot attach a shadow root to a %s", ErrNotSupported, n.kind)
	}
	if n.shadow != nil {
		return nil, fmt.Errorf("%w: %s already hosts a shadow root", ErrNotSupported, n)
	}
	mode := init.Mode
	if mode == "" {
		mode = "open"
	}
	if mode != "open" && mode != "closed" {
		return nil, fmt.Errorf("%w: shadow root mode %q", ErrSyntax, init.Mode)
	}
	sr := newNode(n.owner, ShadowRootNode, "")
	sr.host = n
	sr.mode = mode
	sr.registry = init.Registry
	n.shadow = sr
	tracer().Debugf("host: attached %s shadow root to %s", mode, n)
	return sr, nil
}

// ShadowRoot returns the shadow root hosted by an element, or nil.
func (n *Node) ShadowRoot() *Node {
	return n.shadow
}

// Host returns the host element of a shadow root, or nil.
func (n *Node) Host() *Node {
	return n.host
}

// Mode returns the mode of a shadow root.
func (n *Node) Mode() string {
	return n.mode
}

// ShadowRegistry returns the registry a shadow root has been attached with.
func (n *Node) ShadowRegistry() ElementRegistry {
	return n.registry
}
