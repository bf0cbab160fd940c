package manifest

import (
	"fmt"
	"strings"

	"github.com/npillmayer/scopedreg/dom"
	"github.com/npillmayer/scopedreg/registry"
)

// Set is a manifest applied to a document.
type Set struct {
	engine     *registry.Engine
	registries map[string]*registry.Registry
	names      []string
	log        *Log
}

// Element is the instance type of manifest components.
type Element struct {
	registry.HTMLElement
	Component *Component
	Registry  string
}

// Apply creates the registries of m, renders its mounts and defines its
// components, in this order.
func Apply(e *registry.Engine, m *Manifest) (*Set, error) {
	s := &Set{
		engine:     e,
		registries: map[string]*registry.Registry{GlobalRegistry: e.Global()},
		names:      []string{GlobalRegistry},
		log:        &Log{},
	}
	for _, rs := range m.Registries {
		if _, ok := s.registries[rs.Name]; ok {
			continue
		}
		var opts []registry.RegistryOption
		if rs.Redefine {
			opts = append(opts, registry.AllowRedefinition())
		}
		s.registries[rs.Name] = e.NewRegistry(append(opts, registry.Named(rs.Name))...)
		s.names = append(s.names, rs.Name)
	}
	for i := range m.Mounts {
		if err := s.mount(&m.Mounts[i]); err != nil {
			return s, err
		}
	}
	for _, rs := range m.Registries {
		r := s.registries[rs.Name]
		for i := range rs.Components {
			c := &rs.Components[i]
			if _, err := r.Define(c.Tag, s.class(rs.Name, c)); err != nil {
				return s, err
			}
		}
	}
	tracer().Infof("manifest applied: %d registries", len(s.names))
	return s, nil
}

// Registry returns a registry of the set by name.
func (s *Set) Registry(name string) (*registry.Registry, bool) {
	r, ok := s.registries[name]
	return r, ok
}

// Names returns the registry names in order of declaration, "global" first.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Log returns the event log of the set's components.
func (s *Set) Log() *Log {
	return s.log
}

// Engine returns the engine the set has been applied with.
func (s *Set) Engine() *registry.Engine {
	return s.engine
}

func (s *Set) mount(mnt *Mount) error {
	targets, err := s.engine.Document().Node().QuerySelectorAll(mnt.Selector)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		tracer().Infof("mount %q matches no element", mnt.Selector)
	}
	for _, el := range targets {
		if err := s.render(el, &mnt.Shadow); err != nil {
			return fmt.Errorf("mount %q: %w", mnt.Selector, err)
		}
	}
	return nil
}

// render attaches a shadow root to el and fills it.
func (s *Set) render(el *dom.Node, sh *Shadow) error {
	shadowInit := dom.ShadowRootInit{Mode: sh.Mode}
	if sh.Registry != "" {
		r, ok := s.registries[sh.Registry]
		if !ok {
			return fmt.Errorf("%w: unknown registry %q", ErrInvalidManifest, sh.Registry)
		}
		shadowInit.Registry = r
	}
	sr, err := el.AttachShadow(shadowInit)
	if err != nil {
		return err
	}
	markup := sh.Template
	if sh.Styles != "" {
		sheet, err := ParseStyles(sh.Styles)
		if err != nil {
			return err
		}
		markup = "<style>" + sheet.String() + "</style>" + markup
	}
	return sr.SetInnerHTML(markup)
}

// class creates the element class of a component of registry reg.
func (s *Set) class(reg string, c *Component) *registry.Class {
	name := c.Class
	if name == "" {
		name = className(c.Tag)
	}
	tag := strings.ToLower(c.Tag)
	event := func(kind EventKind, detail string) {
		s.log.add(Event{Kind: kind, Tag: tag, Class: name, Registry: reg, Detail: detail})
	}
	return &registry.Class{
		Name:               name,
		ObservedAttributes: c.Observed,
		Construct: func(super registry.Super) (registry.Element, error) {
			el, err := super()
			if err != nil {
				return nil, err
			}
			event(Constructed, "")
			if c.Shadow != nil {
				if err := s.render(el, c.Shadow); err != nil {
					return nil, err
				}
			}
			return &Element{HTMLElement: registry.HTMLElement{Node: el}, Component: c, Registry: reg}, nil
		},
		ConnectedCallback: func(registry.Element) {
			event(Connected, "")
		},
		DisconnectedCallback: func(registry.Element) {
			event(Disconnected, "")
		},
		AdoptedCallback: func(registry.Element, *dom.Document, *dom.Document) {
			event(Adopted, "")
		},
		AttributeChangedCallback: func(_ registry.Element, attr string, old, new dom.AttrValue) {
			event(AttributeChanged, fmt.Sprintf("%s: %s → %s", attr, old, new))
		},
	}
}

// className derives a class name from a tag, e.g. "x-card" → "XCard".
func className(tag string) string {
	var b strings.Builder
	for _, part := range strings.Split(strings.ToLower(tag), "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
