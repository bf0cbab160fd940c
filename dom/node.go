package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/scopedreg/tree"
	"golang.org/x/net/html"
)

// NodeType is the kind of a DOM node.
type NodeType uint8

// Kinds of nodes.
const (
	ErrorNode NodeType = iota
	DocumentNode
	ElementNode
	TextNode
	CommentNode
	ShadowRootNode
	FragmentNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case ShadowRootNode:
		return "shadow-root"
	case FragmentNode:
		return "fragment"
	}
	return "error"
}

// CustomElementState is the host's view of an element with respect to
// custom element construction.
type CustomElementState uint8

// Custom element states, as in the HTML standard.
const (
	StateUncustomized  CustomElementState = iota // not a valid custom element name
	StateUndefined                               // valid name, not constructed yet
	StatePrecustomized                           // construction in progress
	StateCustom                                  // constructed by an ElementConstructor
	StateFailed                                  // construction failed
)

func (s CustomElementState) String() string {
	return [...]string{"uncustomized", "undefined", "precustomized", "custom", "failed"}[s]
}

// ElementRegistry is the opaque value a shadow root may be scoped to.
// The host stores it and hands it back; it never interprets it.
type ElementRegistry interface {
	String() string
}

// Node is a node of a DOM tree.
type Node struct {
	tree.Node[*Node]                      // we build on top of general purpose tree
	kind             NodeType             // kind of node
	name             string               // lower-case local name for elements
	data             string               // character data of text and comment nodes
	attrs            []html.Attribute     // attributes in insertion order
	owner            *Document            // node document
	shadow           *Node                // shadow root attached to an element
	host             *Node                // host element of a shadow root
	mode             string               // "open" or "closed" for shadow roots
	registry         ElementRegistry      // registry a shadow root is scoped to
	state            CustomElementState   // custom element state of elements
	ctor             ElementConstructor   // constructor an element has been constructed with
	interceptor      AttributeInterceptor // intercepts attribute mutation
	instance         any                  // object bound to a custom element
}

func newNode(doc *Document, kind NodeType, name string) *Node {
	n := &Node{kind: kind, name: name, owner: doc}
	n.Payload = n // Payload will always reference the node itself
	return n
}

// fromTree gets the DOM node from a generic tree node.
func fromTree(t *tree.Node[*Node]) *Node {
	if t == nil {
		return nil
	}
	return t.Payload
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case ElementNode:
		return fmt.Sprintf("<%s>", n.name)
	case TextNode:
		return fmt.Sprintf("%q", n.data)
	}
	return n.NodeName()
}

// NodeType returns the kind of n.
func (n *Node) NodeType() NodeType {
	return n.kind
}

// NodeName returns the W3C node name: the upper-case tag name for elements,
// and "#text", "#comment", "#document", "#document-fragment" otherwise.
func (n *Node) NodeName() string {
	switch n.kind {
	case ElementNode:
		return n.TagName()
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	case ShadowRootNode, FragmentNode:
		return "#document-fragment"
	}
	return "#error"
}

// LocalName returns the lower-case local name of an element.
func (n *Node) LocalName() string {
	return n.name
}

// TagName returns the upper-case tag name of an element.
func (n *Node) TagName() string {
	return strings.ToUpper(n.name)
}

// Data returns the character data of a text or comment node.
func (n *Node) Data() string {
	return n.data
}

// OwnerDocument returns the document n belongs to.
func (n *Node) OwnerDocument() *Document {
	return n.owner
}

// ParentNode returns the parent of n or nil.
func (n *Node) ParentNode() *Node {
	return fromTree(n.Parent())
}

// ChildNodes returns a snapshot of the children of n.
func (n *Node) ChildNodes() []*Node {
	chs := n.Node.Children()
	nodes := make([]*Node, len(chs))
	for i, ch := range chs {
		nodes[i] = ch.Payload
	}
	return nodes
}

// Children returns the element children of n.
func (n *Node) Children() []*Node {
	var elems []*Node
	for _, ch := range n.ChildNodes() {
		if ch.kind == ElementNode {
			elems = append(elems, ch)
		}
	}
	return elems
}

// HasChildNodes is true if n has at least one child.
func (n *Node) HasChildNodes() bool {
	return n.ChildCount() > 0
}

// FirstChild returns the first child of n or nil.
func (n *Node) FirstChild() *Node {
	ch, _ := n.Child(0)
	return fromTree(ch)
}

// NextSibling returns the node following n or nil.
func (n *Node) NextSibling() *Node {
	return fromTree(n.Node.NextSibling())
}

// RootNode returns the root of the tree n is part of. For a node inside a
// shadow tree this is the shadow root, not the document.
func (n *Node) RootNode() *Node {
	return fromTree(n.Root())
}

// IsConnected is true if n is part of a document, possibly through one or
// more shadow roots.
func (n *Node) IsConnected() bool {
	r := n.RootNode()
	switch r.kind {
	case DocumentNode:
		return true
	case ShadowRootNode:
		return r.host != nil && r.host.IsConnected()
	}
	return false
}

// TextContent concatenates the text of all text descendants of n.
func (n *Node) TextContent() string {
	if n.kind == TextNode || n.kind == CommentNode {
		return n.data
	}
	var b strings.Builder
	n.Walk(func(t *tree.Node[*Node]) bool {
		if t.Payload.kind == TextNode {
			b.WriteString(t.Payload.data)
		}
		return true
	})
	return b.String()
}

// CustomElementState returns the custom element state of an element.
func (n *Node) CustomElementState() CustomElementState {
	return n.state
}

// IsDefined is true for elements matching the :defined pseudo-class.
func (n *Node) IsDefined() bool {
	return n.state == StateUncustomized || n.state == StateCustom
}

// Constructor returns the element constructor n has been constructed with.
func (n *Node) Constructor() ElementConstructor {
	return n.ctor
}

// Instance returns the object a custom element library bound to n, if any.
func (n *Node) Instance() any {
	return n.instance
}

// SetInstance binds an object to n. Custom element libraries use this to
// make an element appear as an instance of a library-defined type.
func (n *Node) SetInstance(obj any) {
	n.instance = obj
}

// ownerDoc returns the document of n; for a document node, its document.
func (n *Node) ownerDoc() *Document {
	return n.owner
}

// --- Shadow-including traversal --------------------------------------------

// shadowIncludingDescendants collects n and all of its shadow-including
// descendants in shadow-including tree order: an element, then its shadow
// tree, then its children.
func (n *Node) shadowIncludingDescendants() []*Node {
	var nodes []*Node
	var collect func(*Node)
	collect = func(x *Node) {
		x.Walk(func(t *tree.Node[*Node]) bool {
			nodes = append(nodes, t.Payload)
			if t.Payload.shadow != nil {
				collect(t.Payload.shadow)
			}
			return true
		})
	}
	collect(n)
	return nodes
}

// WalkShadowIncluding calls f for n and its shadow-including descendants,
// in shadow-including tree order.
func (n *Node) WalkShadowIncluding(f func(*Node)) {
	for _, x := range n.shadowIncludingDescendants() {
		f(x)
	}
}

// --- Mutation --------------------------------------------------------------

// AppendChild appends ch to the children of n. Appending a fragment moves
// the fragment's children.
func (n *Node) AppendChild(ch *Node) error {
	return n.InsertBefore(ch, nil)
}

// InsertBefore inserts ch as a child of n, before ref. If ref is nil, ch is
// appended. Inserting a fragment moves the fragment's children.
//
// Nodes from another document are adopted. If n is connected, connected
// reactions run for the inserted elements after the insertion is complete.
func (n *Node) InsertBefore(ch *Node, ref *Node) error {
	if err := n.checkPreInsert(ch, ref); err != nil {
		return err
	}
	nodes := []*Node{ch}
	if ch.kind == FragmentNode {
		nodes = ch.ChildNodes()
	}
	var q reactionQueue
	for _, c := range nodes {
		if c == ref {
			ref = c.NextSibling()
		}
		q.detach(c)
	}
	doc := n.ownerDoc()
	pos := -1
	if ref != nil {
		pos = n.IndexOfChild(&ref.Node)
	}
	for i, c := range nodes {
		if c.owner != doc {
			q.adopt(c, doc)
		}
		if pos < 0 {
			n.Node.AddChild(&c.Node)
		} else {
			n.Node.InsertChildAt(pos+i, &c.Node)
		}
	}
	if n.IsConnected() {
		for _, c := range nodes {
			q.connect(c)
		}
	}
	q.run()
	return nil
}

func (n *Node) checkPreInsert(ch *Node, ref *Node) error {
	if ch == nil {
		return fmt.Errorf("%w: cannot insert nil", ErrHierarchyRequest)
	}
	switch n.kind {
	case DocumentNode, ElementNode, ShadowRootNode, FragmentNode:
	default:
		return fmt.Errorf("%w: %s cannot have children", ErrHierarchyRequest, n.kind)
	}
	switch ch.kind {
	case DocumentNode, ShadowRootNode:
		return fmt.Errorf("%w: cannot insert a %s", ErrHierarchyRequest, ch.kind)
	}
	for a := n; a != nil; { // host-including ancestors
		if a == ch {
			return fmt.Errorf("%w: node is an ancestor", ErrHierarchyRequest)
		}
		if p := a.ParentNode(); p != nil {
			a = p
		} else {
			a = a.host
		}
	}
	if ref != nil && ref.ParentNode() != n {
		return ErrNotFound
	}
	return nil
}

// RemoveChild removes ch from the children of n. If ch was connected,
// disconnected reactions run for its elements.
func (n *Node) RemoveChild(ch *Node) error {
	if ch == nil || ch.ParentNode() != n {
		return ErrNotFound
	}
	var q reactionQueue
	q.detach(ch)
	q.run()
	return nil
}

// Remove removes n from its parent, if any.
func (n *Node) Remove() {
	if p := n.ParentNode(); p != nil {
		_ = p.RemoveChild(n)
	}
}

// replaceChildren replaces all children of n with nodes.
func (n *Node) replaceChildren(nodes []*Node) {
	var q reactionQueue
	for _, c := range n.ChildNodes() {
		q.detach(c)
	}
	q.run()
	frag := n.ownerDoc().CreateDocumentFragment()
	for _, c := range nodes {
		frag.Node.AddChild(&c.Node)
	}
	_ = n.AppendChild(frag)
}
