package registry

import (
	"github.com/npillmayer/scopedreg/dom"
)

// upgrade turns el into an instance of def's class, without allocating a
// new element. el is handed to the class constructor through the single
// construction slot, which the constructor's call of Super consumes.
// Afterwards every observed attribute present on el is notified once, with
// a null old value.
//
// On failure el is left without a definition and will not be upgraded
// again, unless its tag is redefined.
func (e *Engine) upgrade(el *dom.Node, def *Definition, path string) error {
	e.bind(el, def)
	saved := e.handoff
	e.handoff = el
	obj, err := def.construct(e.super(def))
	consumed := e.handoff == nil
	e.handoff = saved
	if err == nil && (!consumed || obj == nil || obj.Host() != el) {
		err = ErrBadConstructor
	}
	if err != nil {
		e.unbind(el)
		e.failures.set(el, err)
		e.metrics.upgradeErrors.Inc()
		tracer().Debugf("upgrade of %s as %s failed: %v", el, def.class, err)
		return failure("upgrade", def.tag, err)
	}
	el.SetInstance(obj)
	e.metrics.upgrades.WithLabelValues(path).Inc()
	tracer().Debugf("upgraded %s as %s (%s)", el, def.class, path)
	if def.attributeChanged == nil {
		return nil
	}
	for _, name := range def.observed {
		if v := el.Attribute(name); !v.IsNull() {
			def.attributeChanged(obj, name, dom.NullValue, v)
		}
	}
	return nil
}
