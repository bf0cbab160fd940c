package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SetInnerHTML replaces the children of n with the nodes parsed from markup,
// with n as creation context.
func (n *Node) SetInnerHTML(markup string) error {
	switch n.kind {
	case ElementNode, ShadowRootNode, FragmentNode, DocumentNode:
	default:
		return fmt.Errorf("%w: cannot set markup of a %s", ErrNotSupported, n.kind)
	}
	d := n.ownerDoc()
	return d.creating(n, func() error {
		nodes, err := d.parseFragment(n, markup)
		if err != nil {
			return err
		}
		n.replaceChildren(nodes)
		return nil
	})
}

// InsertAdjacentHTML parses markup and inserts the resulting nodes relative
// to the element n. position is one of "beforebegin", "afterbegin",
// "beforeend" and "afterend". n is the creation context.
func (n *Node) InsertAdjacentHTML(position, markup string) error {
	if n.kind != ElementNode {
		return fmt.Errorf("%w: adjacent markup on a %s", ErrNotSupported, n.kind)
	}
	var parent, ref *Node
	switch strings.ToLower(position) {
	case "beforebegin":
		parent, ref = n.ParentNode(), n
	case "afterend":
		parent, ref = n.ParentNode(), n.NextSibling()
	case "afterbegin":
		parent, ref = n, n.FirstChild()
	case "beforeend":
		parent, ref = n, nil
	default:
		return fmt.Errorf("%w: position %q", ErrSyntax, position)
	}
	if parent == nil || parent.kind == DocumentNode {
		return ErrNoModificationAllowed
	}
	d := n.ownerDoc()
	return d.creating(n, func() error {
		nodes, err := d.parseFragment(parent, markup)
		if err != nil {
			return err
		}
		frag := d.CreateDocumentFragment()
		for _, c := range nodes {
			frag.Node.AddChild(&c.Node)
		}
		return parent.InsertBefore(frag, ref)
	})
}

// InnerHTML serialises the children of n.
func (n *Node) InnerHTML() string {
	var b bytes.Buffer
	for _, ch := range n.ChildNodes() {
		h, _ := mirror(ch)
		if err := html.Render(&b, h); err != nil {
			tracer().Errorf("rendering %s: %v", ch, err)
		}
	}
	return b.String()
}

// OuterHTML serialises n including its children.
func (n *Node) OuterHTML() string {
	var b bytes.Buffer
	h, _ := mirror(n)
	if h.Type == html.DocumentNode {
		return n.InnerHTML()
	}
	if err := html.Render(&b, h); err != nil {
		tracer().Errorf("rendering %s: %v", n, err)
	}
	return b.String()
}

// parseFragment parses markup in the context of element (or body, for
// non-element contexts) and builds detached nodes of d.
func (d *Document) parseFragment(context *Node, markup string) ([]*Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	if context.kind == ElementNode {
		ctx = &html.Node{Type: html.ElementNode, Data: context.name, DataAtom: atom.Lookup([]byte(context.name))}
	}
	hns, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing markup: %v", ErrSyntax, err)
	}
	nodes := make([]*Node, 0, len(hns))
	for _, hn := range hns {
		n, err := d.build(hn)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// build creates a detached DOM subtree from a parsed HTML node. Elements are
// created (and constructed, where the tag is defined) before their children.
func (d *Document) build(hn *html.Node) (*Node, error) {
	var n *Node
	switch hn.Type {
	case html.ElementNode:
		var err error
		if n, err = d.createElement(strings.ToLower(hn.Data), hn.Attr); err != nil {
			return nil, err
		}
	case html.TextNode:
		n = d.CreateTextNode(hn.Data)
	case html.CommentNode:
		n = d.CreateComment(hn.Data)
	default: // doctype and others are dropped
		return nil, nil
	}
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		ch, err := d.build(c)
		if err != nil {
			return nil, err
		}
		if ch != nil {
			n.Node.AddChild(&ch.Node)
		}
	}
	return n, nil
}

// mirror builds an html.Node copy of the light tree of n. It returns the
// copy and a mapping back to the DOM nodes.
func mirror(n *Node) (*html.Node, map[*html.Node]*Node) {
	back := make(map[*html.Node]*Node)
	var copyOf func(*Node) *html.Node
	copyOf = func(x *Node) *html.Node {
		var h *html.Node
		switch x.kind {
		case ElementNode:
			attrs := make([]html.Attribute, len(x.attrs))
			copy(attrs, x.attrs)
			h = &html.Node{Type: html.ElementNode, Data: x.name,
				DataAtom: atom.Lookup([]byte(x.name)), Attr: attrs}
		case TextNode:
			h = &html.Node{Type: html.TextNode, Data: x.data}
		case CommentNode:
			h = &html.Node{Type: html.CommentNode, Data: x.data}
		default:
			h = &html.Node{Type: html.DocumentNode}
		}
		back[h] = x
		for _, ch := range x.ChildNodes() {
			h.AppendChild(copyOf(ch))
		}
		return h
	}
	return copyOf(n), back
}
