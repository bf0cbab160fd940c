package registry

import (
	"strings"

	"github.com/npillmayer/scopedreg/dom"
)

// Element is an instance of a custom element class. It is bound to the host
// element it has been constructed on.
type Element interface {
	Host() *dom.Node
}

// HTMLElement is the base for element types of custom element classes.
// Embed it and initialize it with the node handed out by Super.
type HTMLElement struct {
	*dom.Node
}

// Host returns the host element.
func (h HTMLElement) Host() *dom.Node {
	return h.Node
}

// Super is the base element constructor handed to Class.Construct. During an
// upgrade it returns the element being upgraded; otherwise it allocates a new
// element for a class defined in the global registry.
type Super func() (*dom.Node, error)

// Class describes a custom element class. Construct is required, all
// callbacks are optional.
type Class struct {
	Name                     string
	Construct                func(super Super) (Element, error)
	ObservedAttributes       []string
	ConnectedCallback        func(el Element)
	DisconnectedCallback     func(el Element)
	AdoptedCallback          func(el Element, oldDoc, newDoc *dom.Document)
	AttributeChangedCallback func(el Element, name string, oldValue, newValue dom.AttrValue)
}

func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}
	if c.Name == "" {
		return "<anonymous class>"
	}
	return c.Name
}

// DefineOptions are options for Registry.Define.
type DefineOptions struct {
	Extends string // built-in element to extend; not supported
}

// Definition is the immutable snapshot of a class taken when it has been
// defined for a tag in a registry.
type Definition struct {
	tag              string
	class            *Class
	registry         *Registry
	construct        func(Super) (Element, error)
	connected        func(Element)
	disconnected     func(Element)
	adopted          func(Element, *dom.Document, *dom.Document)
	attributeChanged func(Element, string, dom.AttrValue, dom.AttrValue)
	observed         []string
	observedSet      map[string]bool
	standIn          *standIn // set for definitions of the global registry only
}

func newDefinition(r *Registry, tag string, cls *Class) *Definition {
	def := &Definition{
		tag:              tag,
		class:            cls,
		registry:         r,
		construct:        cls.Construct,
		connected:        cls.ConnectedCallback,
		disconnected:     cls.DisconnectedCallback,
		adopted:          cls.AdoptedCallback,
		attributeChanged: cls.AttributeChangedCallback,
		observedSet:      make(map[string]bool, len(cls.ObservedAttributes)),
	}
	for _, a := range cls.ObservedAttributes {
		a = strings.ToLower(a)
		if !def.observedSet[a] {
			def.observedSet[a] = true
			def.observed = append(def.observed, a)
		}
	}
	return def
}

// Tag returns the tag name the class has been defined for.
func (def *Definition) Tag() string {
	return def.tag
}

// Class returns the class the definition has been made from.
func (def *Definition) Class() *Class {
	return def.class
}

// Registry returns the registry holding the definition.
func (def *Definition) Registry() *Registry {
	return def.registry
}

// ObservedAttributes returns the lower-case names of observed attributes.
func (def *Definition) ObservedAttributes() []string {
	return append([]string(nil), def.observed...)
}

// Observes is true if changes of attribute name are notified.
func (def *Definition) Observes(name string) bool {
	return def.attributeChanged != nil && def.observedSet[strings.ToLower(name)]
}

// IsGlobal is true for definitions of the global registry. Only classes
// with a global definition may be constructed directly.
func (def *Definition) IsGlobal() bool {
	return def.standIn != nil
}

func (def *Definition) String() string {
	return "<" + def.tag + "> as " + def.class.String() + " in " + def.registry.String()
}
