package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// CreationInterceptor wraps a host creation primitive. context is the node
// the primitive has been invoked on; create performs the native operation.
// An interceptor must call create at most once and return its error.
type CreationInterceptor func(context *Node, create func() error) error

// Document is a DOM document. It owns the host's single, flat namespace of
// custom element constructors.
type Document struct {
	node        *Node                         // the document node
	natives     map[string]ElementConstructor // global element namespace
	interceptor CreationInterceptor           // wraps creation primitives
	onError     func(error)                   // reports errors of reactions
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{natives: make(map[string]ElementConstructor)}
	d.node = newNode(d, DocumentNode, "#document")
	return d
}

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	hdoc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	d := NewDocument()
	for c := hdoc.FirstChild; c != nil; c = c.NextSibling {
		n, err := d.build(c)
		if err != nil {
			return nil, err
		}
		if n != nil {
			if err := d.node.AppendChild(n); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// Node returns the document node, root of the document tree.
func (d *Document) Node() *Node {
	return d.node
}

// DocumentElement returns the first element child of the document node.
func (d *Document) DocumentElement() *Node {
	for _, ch := range d.node.ChildNodes() {
		if ch.kind == ElementNode {
			return ch
		}
	}
	return nil
}

// Body returns the first <body> element of the document, or nil.
func (d *Document) Body() *Node {
	b, _ := d.node.QuerySelector("body")
	return b
}

// SetCreationInterceptor installs ci at the creation extension point,
// replacing any interceptor installed before.
func (d *Document) SetCreationInterceptor(ci CreationInterceptor) {
	d.interceptor = ci
}

// SetErrorHandler sets the function errors of reactions are reported to.
// Reactions run after a mutation has completed, so there is no caller to
// return these errors to.
func (d *Document) SetErrorHandler(h func(error)) {
	d.onError = h
}

func (d *Document) reportError(err error) {
	if d.onError != nil {
		d.onError(err)
		return
	}
	tracer().Errorf("dom: %v", err)
}

func (d *Document) creating(context *Node, create func() error) error {
	if d.interceptor == nil {
		return create()
	}
	return d.interceptor(context, create)
}

// --- Creation primitives ---------------------------------------------------

// CreateElement creates an element with the document node as creation
// context.
func (d *Document) CreateElement(tag string) (*Node, error) {
	return d.node.CreateElement(tag)
}

// CreateElement creates an element in the scope of n, which must be a
// document or a shadow root. The element is not inserted anywhere.
func (n *Node) CreateElement(tag string) (*Node, error) {
	if n.kind != DocumentNode && n.kind != ShadowRootNode {
		return nil, fmt.Errorf("%w: cannot create elements on a %s", ErrNotSupported, n.kind)
	}
	if !ValidElementName(tag) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCharacter, tag)
	}
	d := n.ownerDoc()
	var el *Node
	err := d.creating(n, func() (err error) {
		el, err = d.createElement(strings.ToLower(tag), nil)
		return
	})
	return el, err
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(data string) *Node {
	t := newNode(d, TextNode, "")
	t.data = data
	return t
}

// CreateComment creates a comment node.
func (d *Document) CreateComment(data string) *Node {
	c := newNode(d, CommentNode, "")
	c.data = data
	return c
}

// CreateDocumentFragment creates an empty fragment.
func (d *Document) CreateDocumentFragment() *Node {
	return newNode(d, FragmentNode, "")
}

// ImportNode creates a copy of src in d, with the document node as creation
// context.
func (d *Document) ImportNode(src *Node, deep bool) (*Node, error) {
	return d.node.ImportNode(src, deep)
}

// ImportNode creates a copy of src in the document of n, with n as creation
// context. n must be a document or a shadow root.
func (n *Node) ImportNode(src *Node, deep bool) (*Node, error) {
	if n.kind != DocumentNode && n.kind != ShadowRootNode {
		return nil, fmt.Errorf("%w: cannot import into a %s", ErrNotSupported, n.kind)
	}
	d := n.ownerDoc()
	var clone *Node
	err := d.creating(n, func() (err error) {
		clone, err = d.clone(src, deep)
		return
	})
	return clone, err
}

// CloneNode copies n, with n as creation context.
func (n *Node) CloneNode(deep bool) (*Node, error) {
	d := n.ownerDoc()
	var clone *Node
	err := d.creating(n, func() (err error) {
		clone, err = d.clone(n, deep)
		return
	})
	return clone, err
}

// AdoptNode moves n to d, removing it from its parent first.
func (d *Document) AdoptNode(n *Node) error {
	if n.kind == DocumentNode || n.kind == ShadowRootNode {
		return fmt.Errorf("%w: cannot adopt a %s", ErrNotSupported, n.kind)
	}
	var q reactionQueue
	q.detach(n)
	if n.owner != d {
		q.adopt(n, d)
	}
	q.run()
	return nil
}

// createElement allocates an element with its attributes already present
// and, if the tag has a constructor in the global namespace, constructs it.
func (d *Document) createElement(name string, attrs []html.Attribute) (*Node, error) {
	el := newNode(d, ElementNode, name)
	for _, a := range attrs {
		el.setAttr(strings.ToLower(a.Key), a.Val)
	}
	ctor, ok := d.natives[name]
	if !ok {
		if ValidCustomElementName(name) {
			el.state = StateUndefined
		}
		return el, nil
	}
	if err := d.construct(el, ctor); err != nil {
		return nil, err
	}
	return el, nil
}

func (d *Document) clone(src *Node, deep bool) (*Node, error) {
	var c *Node
	switch src.kind {
	case ElementNode:
		var err error
		if c, err = d.createElement(src.name, src.attrs); err != nil {
			return nil, err
		}
	case TextNode:
		c = d.CreateTextNode(src.data)
	case CommentNode:
		c = d.CreateComment(src.data)
	case FragmentNode:
		c = d.CreateDocumentFragment()
	default:
		return nil, fmt.Errorf("%w: cannot clone a %s", ErrNotSupported, src.kind)
	}
	if deep {
		for _, ch := range src.ChildNodes() {
			cc, err := d.clone(ch, true)
			if err != nil {
				return nil, err
			}
			c.Node.AddChild(&cc.Node)
		}
	}
	return c, nil
}

// --- Global element namespace ----------------------------------------------

// DefineElement maps tag to ctor in the document's global element namespace.
// Every tag may be defined only once. Connected undefined elements with that
// tag are upgraded, in shadow-including tree order.
func (d *Document) DefineElement(tag string, ctor ElementConstructor) error {
	tag = strings.ToLower(tag)
	if !ValidCustomElementName(tag) {
		return fmt.Errorf("%w: %q is not a valid custom element name", ErrSyntax, tag)
	}
	if ctor == nil {
		return fmt.Errorf("%w: constructor for %q is nil", ErrNotSupported, tag)
	}
	if _, exists := d.natives[tag]; exists {
		return fmt.Errorf("%w: %q has already been defined", ErrNotSupported, tag)
	}
	d.natives[tag] = ctor
	tracer().Debugf("host: defined <%s>", tag)
	var candidates []*Node
	d.node.WalkShadowIncluding(func(x *Node) {
		if x.kind == ElementNode && x.name == tag && x.state == StateUndefined {
			candidates = append(candidates, x)
		}
	})
	for _, el := range candidates {
		d.tryUpgrade(el)
	}
	return nil
}

// LookupElement returns the constructor for tag, if any.
func (d *Document) LookupElement(tag string) (ElementConstructor, bool) {
	ctor, ok := d.natives[strings.ToLower(tag)]
	return ctor, ok
}

// AllocateElement allocates an element of tag bound to ctor without running
// the constructor's construction protocol. It is the host's base element
// constructor, used when a library constructs an element directly.
func (d *Document) AllocateElement(tag string, ctor ElementConstructor) (*Node, error) {
	tag = strings.ToLower(tag)
	if registered, ok := d.natives[tag]; !ok || registered != ctor {
		return nil, fmt.Errorf("%w: %q is not defined with this constructor", ErrNotSupported, tag)
	}
	el := newNode(d, ElementNode, tag)
	el.state = StateCustom
	el.ctor = ctor
	return el, nil
}

// Upgrade tries to upgrade every undefined element in root's
// shadow-including inclusive descendants, connected or not.
func (d *Document) Upgrade(root *Node) {
	var candidates []*Node
	root.WalkShadowIncluding(func(x *Node) {
		if x.kind == ElementNode && x.state == StateUndefined {
			candidates = append(candidates, x)
		}
	})
	for _, el := range candidates {
		d.tryUpgrade(el)
	}
}

// tryUpgrade constructs an undefined element if its tag has a constructor.
// A connected element receives its connected reaction afterwards.
func (d *Document) tryUpgrade(el *Node) {
	ctor, ok := d.natives[el.name]
	if !ok || el.state != StateUndefined {
		return
	}
	if err := d.construct(el, ctor); err != nil {
		d.reportError(err)
		return
	}
	if el.IsConnected() {
		ctor.ConnectedCallback(el)
	}
}

func (d *Document) construct(el *Node, ctor ElementConstructor) error {
	el.state = StatePrecustomized
	el.ctor = ctor
	if err := ctor.Construct(el); err != nil {
		el.state = StateFailed
		el.ctor = nil
		return fmt.Errorf("constructing <%s>: %w", el.name, err)
	}
	el.state = StateCustom
	return nil
}
