package registry

import (
	"github.com/npillmayer/scopedreg/dom"
)

// standIn is the constructor registered with the host for a tag. There is
// one per tag and engine, whichever registries define the tag. It delegates
// to the definition of the registry owning the element.
type standIn struct {
	e   *Engine
	tag string
}

var _ dom.ElementConstructor = (*standIn)(nil)

// ensureStandIn registers the stand-in for tag with the host, once.
func (e *Engine) ensureStandIn(tag string) (*standIn, error) {
	if s, ok := e.standIns[tag]; ok {
		return s, nil
	}
	s := &standIn{e: e, tag: tag}
	e.standIns[tag] = s
	if err := e.doc.DefineElement(tag, s); err != nil {
		delete(e.standIns, tag)
		return nil, err
	}
	tracer().Debugf("stand-in for <%s> registered with host", tag)
	return s, nil
}

// Construct is called by the host for a freshly allocated element of the
// tag, or for an undefined element being upgraded by the host.
func (s *standIn) Construct(el *dom.Node) error {
	r, err := s.e.resolve(el)
	if err != nil {
		return failure("construct", s.tag, err)
	}
	if def, ok := r.definitions[s.tag]; ok {
		return s.e.upgrade(el, def, pathImmediate)
	}
	r.RegisterPendingUpgrade(el, s.tag, true)
	return nil
}

// ConnectedCallback forwards to the connected hook of an upgraded element.
// A waiting element is registered with the registry of its new scope, and
// upgraded right away if that registry defines the tag.
func (s *standIn) ConnectedCallback(el *dom.Node) {
	e := s.e
	if def, ok := e.definitionOf(el); ok {
		if def.connected != nil {
			def.connected(e.InstanceOf(el))
		}
		return
	}
	if e.UpgradeError(el) != nil {
		return
	}
	r, err := e.resolve(el)
	if err != nil {
		e.reportError(failure("connect", s.tag, err))
		return
	}
	def, ok := r.definitions[s.tag]
	if !ok {
		r.RegisterPendingUpgrade(el, s.tag, true)
		return
	}
	if err := e.upgrade(el, def, pathDeferred); err != nil {
		e.reportError(err)
		return
	}
	if def.connected != nil {
		def.connected(e.InstanceOf(el))
	}
}

// DisconnectedCallback forwards to the disconnected hook of an upgraded
// element. A waiting element stops waiting.
func (s *standIn) DisconnectedCallback(el *dom.Node) {
	e := s.e
	if def, ok := e.definitionOf(el); ok {
		if def.disconnected != nil {
			def.disconnected(e.InstanceOf(el))
		}
		return
	}
	if r, ok := e.pending.get(el); ok {
		r.RegisterPendingUpgrade(el, s.tag, false)
	}
}

// AdoptedCallback forwards to the adopted hook of an upgraded element.
func (s *standIn) AdoptedCallback(el *dom.Node, oldDoc, newDoc *dom.Document) {
	e := s.e
	if def, ok := e.definitionOf(el); ok && def.adopted != nil {
		def.adopted(e.InstanceOf(el), oldDoc, newDoc)
	}
}
