package dom

// ElementConstructor is what the host's global element namespace maps a tag
// name to. The host calls Construct on an already allocated element of that
// tag, either when creating it or when upgrading an undefined element, and
// delivers lifecycle reactions to the constructor the element has been
// constructed with.
type ElementConstructor interface {
	Construct(el *Node) error
	ConnectedCallback(el *Node)
	DisconnectedCallback(el *Node)
	AdoptedCallback(el *Node, oldDoc, newDoc *Document)
}

// reactionQueue collects custom element reactions during a mutation.
// Reactions are run after the mutation is complete.
type reactionQueue []func()

// detach removes n from its parent, queueing disconnected reactions if n
// was connected.
func (q *reactionQueue) detach(n *Node) {
	p := n.Parent()
	if p == nil {
		return
	}
	wasConnected := n.IsConnected()
	p.RemoveChild(&n.Node)
	if !wasConnected {
		return
	}
	for _, x := range n.shadowIncludingDescendants() {
		if x.kind == ElementNode && x.state == StateCustom {
			el, ctor := x, x.ctor
			*q = append(*q, func() { ctor.DisconnectedCallback(el) })
		}
	}
}

// adopt moves n and its shadow-including descendants to doc, queueing
// adopted reactions.
func (q *reactionQueue) adopt(n *Node, doc *Document) {
	old := n.owner
	for _, x := range n.shadowIncludingDescendants() {
		x.owner = doc
		if x.kind == ElementNode && x.state == StateCustom {
			el, ctor := x, x.ctor
			*q = append(*q, func() { ctor.AdoptedCallback(el, old, doc) })
		}
	}
}

// connect queues connected reactions for n and its shadow-including
// descendants. Undefined elements get a chance to be upgraded first.
func (q *reactionQueue) connect(n *Node) {
	for _, x := range n.shadowIncludingDescendants() {
		if x.kind != ElementNode {
			continue
		}
		el := x
		switch x.state {
		case StateCustom:
			ctor := x.ctor
			*q = append(*q, func() { ctor.ConnectedCallback(el) })
		case StateUndefined:
			*q = append(*q, func() { el.owner.tryUpgrade(el) })
		}
	}
}

// run performs the queued reactions in order.
func (q reactionQueue) run() {
	for _, r := range q {
		r()
	}
}
