package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// AttrValue is an attribute value which may be null (attribute absent).
type AttrValue struct {
	value   string
	present bool
}

// NullValue is the value of an absent attribute.
var NullValue = AttrValue{}

// ValueOf wraps a present attribute value.
func ValueOf(s string) AttrValue {
	return AttrValue{value: s, present: true}
}

// Get returns the value and whether it is present.
func (v AttrValue) Get() (string, bool) {
	return v.value, v.present
}

// IsNull is true for absent attributes.
func (v AttrValue) IsNull() bool {
	return !v.present
}

func (v AttrValue) String() string {
	if !v.present {
		return "null"
	}
	return fmt.Sprintf("%q", v.value)
}

// AttributeInterceptor wraps attribute mutation of a single element.
// mutate performs the native mutation; an interceptor must call it exactly
// once.
type AttributeInterceptor interface {
	InterceptSetAttribute(el *Node, name, value string, mutate func())
	InterceptRemoveAttribute(el *Node, name string, mutate func())
}

// SetAttributeInterceptor installs ai on an element, replacing any
// interceptor installed before. A nil ai restores native behaviour.
func (n *Node) SetAttributeInterceptor(ai AttributeInterceptor) {
	n.interceptor = ai
}

// AttributeInterceptor returns the interceptor installed on n, if any.
func (n *Node) AttributeInterceptor() AttributeInterceptor {
	return n.interceptor
}

// GetAttribute returns the value of an attribute and whether it is present.
func (n *Node) GetAttribute(name string) (string, bool) {
	return n.Attribute(name).Get()
}

// Attribute returns the value of an attribute, NullValue if absent.
func (n *Node) Attribute(name string) AttrValue {
	name = strings.ToLower(name)
	for _, a := range n.attrs {
		if a.Key == name {
			return ValueOf(a.Val)
		}
	}
	return NullValue
}

// HasAttribute is true if n carries an attribute name.
func (n *Node) HasAttribute(name string) bool {
	return !n.Attribute(name).IsNull()
}

// Attributes returns a copy of the attributes of n, in insertion order.
func (n *Node) Attributes() []html.Attribute {
	attrs := make([]html.Attribute, len(n.attrs))
	copy(attrs, n.attrs)
	return attrs
}

// SetAttribute sets an attribute of an element, going through the
// element's attribute interceptor, if any.
func (n *Node) SetAttribute(name, value string) error {
	if n.kind != ElementNode {
		return fmt.Errorf("%w: %s has no attributes", ErrNotSupported, n.kind)
	}
	if !ValidAttributeName(name) {
		return fmt.Errorf("%w: attribute %q", ErrInvalidCharacter, name)
	}
	name = strings.ToLower(name)
	mutate := func() { n.setAttr(name, value) }
	if n.interceptor != nil {
		n.interceptor.InterceptSetAttribute(n, name, value, mutate)
		return nil
	}
	mutate()
	return nil
}

// RemoveAttribute removes an attribute of an element, going through the
// element's attribute interceptor, if any.
func (n *Node) RemoveAttribute(name string) {
	if n.kind != ElementNode {
		return
	}
	name = strings.ToLower(name)
	mutate := func() { n.removeAttr(name) }
	if n.interceptor != nil {
		n.interceptor.InterceptRemoveAttribute(n, name, mutate)
		return
	}
	mutate()
}

func (n *Node) setAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Key == name {
			n.attrs[i].Val = value
			return
		}
	}
	n.attrs = append(n.attrs, html.Attribute{Key: name, Val: value})
}

func (n *Node) removeAttr(name string) {
	for i := range n.attrs {
		if n.attrs[i].Key == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}
