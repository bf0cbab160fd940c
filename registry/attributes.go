package registry

import (
	"github.com/npillmayer/scopedreg/dom"
)

// attributeAdapter simulates attribute observation for the elements of a
// class. It is installed as attribute interceptor on upgraded elements and
// notifies the attribute-changed hook of the element's bound definition.
type attributeAdapter struct {
	e     *Engine
	class *Class
}

var _ dom.AttributeInterceptor = (*attributeAdapter)(nil)

// installAdapter creates the adapter of cls, once. Classes without observed
// attributes or without attribute-changed hook get none.
func (e *Engine) installAdapter(cls *Class) {
	if len(cls.ObservedAttributes) == 0 || cls.AttributeChangedCallback == nil {
		return
	}
	if _, ok := e.adapters[cls]; ok {
		return
	}
	e.adapters[cls] = &attributeAdapter{e: e, class: cls}
}

// observer returns the definition and instance to notify about a change of
// attribute name of el. Elements still under construction are not notified;
// they see their attributes when the upgrade replays them.
func (a *attributeAdapter) observer(el *dom.Node, name string) (*Definition, Element, bool) {
	def, ok := a.e.definitionOf(el)
	if !ok || !def.Observes(name) {
		return nil, nil, false
	}
	obj := a.e.InstanceOf(el)
	if obj == nil {
		return nil, nil, false
	}
	return def, obj, true
}

func (a *attributeAdapter) InterceptSetAttribute(el *dom.Node, name, value string, mutate func()) {
	def, obj, ok := a.observer(el, name)
	if !ok {
		mutate()
		return
	}
	old := el.Attribute(name)
	mutate()
	def.attributeChanged(obj, name, old, el.Attribute(name))
}

// InterceptRemoveAttribute notifies (name, old, null). Removing an absent
// attribute notifies nothing.
func (a *attributeAdapter) InterceptRemoveAttribute(el *dom.Node, name string, mutate func()) {
	def, obj, ok := a.observer(el, name)
	if !ok {
		mutate()
		return
	}
	old := el.Attribute(name)
	mutate()
	if old.IsNull() {
		return
	}
	def.attributeChanged(obj, name, old, dom.NullValue)
}
