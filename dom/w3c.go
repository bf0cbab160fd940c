package dom

import (
	"strings"

	"github.com/npillmayer/scopedreg/dom/w3cdom"
	"golang.org/x/net/html"
)

// W3CNode is a read-only W3C view of a DOM node.
type W3CNode struct {
	n *Node
}

var _ w3cdom.Node = (*W3CNode)(nil)

// W3C wraps n into its W3C view. W3C(nil) is nil.
func W3C(n *Node) w3cdom.Node {
	if n == nil {
		return nil
	}
	return &W3CNode{n: n}
}

// FromW3C unwraps a W3C view created by W3C.
func FromW3C(w w3cdom.Node) *Node {
	if wn, ok := w.(*W3CNode); ok {
		return wn.n
	}
	return nil
}

// DOMNode returns the wrapped node.
func (w *W3CNode) DOMNode() *Node {
	return w.n
}

// NodeType is part of interface w3cdom.Node. Shadow roots and fragments
// report html.DocumentNode.
func (w *W3CNode) NodeType() html.NodeType {
	switch w.n.kind {
	case ElementNode:
		return html.ElementNode
	case TextNode:
		return html.TextNode
	case CommentNode:
		return html.CommentNode
	case DocumentNode, ShadowRootNode, FragmentNode:
		return html.DocumentNode
	}
	return html.ErrorNode
}

// NodeName is part of interface w3cdom.Node.
func (w *W3CNode) NodeName() string {
	return w.n.NodeName()
}

// NodeValue is part of interface w3cdom.Node.
func (w *W3CNode) NodeValue() string {
	return w.n.data
}

// LocalName is part of interface w3cdom.Node.
func (w *W3CNode) LocalName() string {
	return w.n.name
}

// HasAttributes is part of interface w3cdom.Node.
func (w *W3CNode) HasAttributes() bool {
	return len(w.n.attrs) > 0
}

// ParentNode is part of interface w3cdom.Node.
func (w *W3CNode) ParentNode() w3cdom.Node {
	return W3C(w.n.ParentNode())
}

// HasChildNodes is part of interface w3cdom.Node.
func (w *W3CNode) HasChildNodes() bool {
	return w.n.HasChildNodes()
}

// ChildNodes is part of interface w3cdom.Node.
func (w *W3CNode) ChildNodes() w3cdom.NodeList {
	return nodeList(w.n.ChildNodes())
}

// Children is part of interface w3cdom.Node.
func (w *W3CNode) Children() w3cdom.NodeList {
	return nodeList(w.n.Children())
}

// FirstChild is part of interface w3cdom.Node.
func (w *W3CNode) FirstChild() w3cdom.Node {
	return W3C(w.n.FirstChild())
}

// NextSibling is part of interface w3cdom.Node.
func (w *W3CNode) NextSibling() w3cdom.Node {
	return W3C(w.n.NextSibling())
}

// Attributes is part of interface w3cdom.Node.
func (w *W3CNode) Attributes() w3cdom.NamedNodeMap {
	return attrMap(w.n.Attributes())
}

// TextContent is part of interface w3cdom.Node.
func (w *W3CNode) TextContent() (string, error) {
	return w.n.TextContent(), nil
}

// IsConnected is part of interface w3cdom.Node.
func (w *W3CNode) IsConnected() bool {
	return w.n.IsConnected()
}

// GetRootNode is part of interface w3cdom.Node.
func (w *W3CNode) GetRootNode() w3cdom.Node {
	return W3C(w.n.RootNode())
}

// ShadowRoot is part of interface w3cdom.Node.
func (w *W3CNode) ShadowRoot() w3cdom.Node {
	return W3C(w.n.shadow)
}

// --- Lists -----------------------------------------------------------------

type nodeList []*Node

func (l nodeList) Length() int {
	return len(l)
}

func (l nodeList) Item(i int) w3cdom.Node {
	if i < 0 || i >= len(l) {
		return nil
	}
	return W3C(l[i])
}

func (l nodeList) String() string {
	names := make([]string, len(l))
	for i, n := range l {
		names[i] = n.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

type attr struct {
	a html.Attribute
}

func (a attr) Namespace() string { return a.a.Namespace }
func (a attr) Key() string       { return a.a.Key }
func (a attr) Value() string     { return a.a.Val }

type attrMap []html.Attribute

func (m attrMap) Length() int {
	return len(m)
}

func (m attrMap) Item(i int) w3cdom.Attr {
	if i < 0 || i >= len(m) {
		return nil
	}
	return attr{m[i]}
}

func (m attrMap) GetNamedItem(key string) w3cdom.Attr {
	key = strings.ToLower(key)
	for _, a := range m {
		if a.Key == key {
			return attr{a}
		}
	}
	return nil
}
