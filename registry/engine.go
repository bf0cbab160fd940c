package registry

import (
	"fmt"

	"github.com/npillmayer/scopedreg/dom"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine implements scoped registries for one document. It owns the global
// registry, the stand-ins registered with the host, the creation context
// stack and the bookkeeping of elements.
type Engine struct {
	doc        *dom.Document
	global     *Registry
	standIns   map[string]*standIn            // one per tag, across all registries
	byClass    map[*Class]*Definition         // global definitions, for direct construction
	adapters   map[*Class]*attributeAdapter   // attribute adapters installed per class
	context    []anchor                       // creation context stack
	handoff    *dom.Node                      // element under construction, consumed by Super
	defs       *sideTable[*Definition]        // element → bound definition
	pending    *sideTable[*Registry]          // element → registry it waits on
	failures   *sideTable[error]              // element → error of a failed upgrade
	registerer prometheus.Registerer
	metrics    *metrics
	onError    func(error)
}

// Install creates the engine for doc and hooks it into the document's
// extension points. A document must have at most one engine.
func Install(doc *dom.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:      doc,
		standIns: make(map[string]*standIn),
		byClass:  make(map[*Class]*Definition),
		adapters: make(map[*Class]*attributeAdapter),
		defs:     newSideTable[*Definition](),
		pending:  newSideTable[*Registry](),
		failures: newSideTable[error](),
	}
	e.global = newRegistry(e, true)
	for _, opt := range opts {
		opt(e)
	}
	e.metrics = newMetrics(e.registerer)
	doc.SetCreationInterceptor(e.intercept)
	doc.SetErrorHandler(e.reportError)
	tracer().Debugf("registry engine installed, global registry is %s", e.global.ID())
	return e
}

// Document returns the document e is installed on.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Global returns the document-level registry.
func (e *Engine) Global() *Registry {
	return e.global
}

// NewRegistry creates a scoped registry. It becomes effective for a shadow
// tree by attaching the shadow root with it:
//
//	host.AttachShadow(dom.ShadowRootInit{Registry: r})
func (e *Engine) NewRegistry(opts ...RegistryOption) *Registry {
	r := newRegistry(e, false)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Definition returns the definition an element has been upgraded with.
func (e *Engine) Definition(el *dom.Node) (*Definition, bool) {
	return e.definitionOf(el)
}

// PendingRegistry returns the registry an element is waiting on for a
// definition of its tag.
func (e *Engine) PendingRegistry(el *dom.Node) (*Registry, bool) {
	return e.pending.get(el)
}

// InstanceOf returns the class instance bound to an upgraded element, or
// nil if el has not been upgraded.
func (e *Engine) InstanceOf(el *dom.Node) Element {
	if _, ok := e.definitionOf(el); !ok {
		return nil
	}
	obj, _ := el.Instance().(Element)
	return obj
}

// UpgradeError returns the error of a failed upgrade of el, if any.
func (e *Engine) UpgradeError(el *dom.Node) error {
	err, _ := e.failures.get(el)
	return err
}

// As returns the instance bound to el if it is of type T.
func As[T Element](e *Engine, el *dom.Node) (T, bool) {
	obj, ok := e.InstanceOf(el).(T)
	return obj, ok
}

// New constructs an element of a class defined in the global registry,
// without going through a host creation primitive. Classes defined only in
// scoped registries cannot be constructed this way, as it would be
// ambiguous which scope the element belongs to.
func (e *Engine) New(cls *Class) (Element, error) {
	def, ok := e.byClass[cls]
	if !ok {
		return nil, failure("construct", cls.String(), ErrIllegalConstructor)
	}
	saved := e.handoff
	e.handoff = nil
	defer func() { e.handoff = saved }()
	obj, err := def.construct(e.super(def))
	if err != nil {
		e.metrics.upgradeErrors.Inc()
		return nil, failure("construct", def.tag, err)
	}
	if obj == nil || obj.Host() == nil {
		e.metrics.upgradeErrors.Inc()
		return nil, failure("construct", def.tag, ErrBadConstructor)
	}
	el := obj.Host()
	if _, bound := e.definitionOf(el); !bound {
		e.metrics.upgradeErrors.Inc()
		return nil, failure("construct", def.tag, ErrBadConstructor)
	}
	el.SetInstance(obj)
	e.metrics.upgrades.WithLabelValues(pathDirect).Inc()
	tracer().Debugf("constructed %s directly as %s", el, def.class)
	return obj, nil
}

// super returns the base element constructor for the class of def. It hands
// out the element under construction exactly once; further calls allocate a
// new element, which requires a global definition of the class.
func (e *Engine) super(def *Definition) Super {
	return func() (*dom.Node, error) {
		if el := e.handoff; el != nil {
			e.handoff = nil
			return el, nil
		}
		global, ok := e.byClass[def.class]
		if !ok {
			return nil, failure("construct", def.tag, ErrIllegalConstructor)
		}
		return e.allocate(global)
	}
}

// allocate uses the host's base element constructor to create an element
// bound to a global definition.
func (e *Engine) allocate(def *Definition) (*dom.Node, error) {
	el, err := e.doc.AllocateElement(def.tag, def.standIn)
	if err != nil {
		return nil, failure("construct", def.tag, err)
	}
	e.bind(el, def)
	return el, nil
}

func (e *Engine) definitionOf(el *dom.Node) (*Definition, bool) {
	if el == nil {
		return nil, false
	}
	return e.defs.get(el)
}

// bind replaces the pending registry of el by def and installs the
// attribute adapter of def's class.
func (e *Engine) bind(el *dom.Node, def *Definition) {
	if r, ok := e.pending.get(el); ok {
		r.RegisterPendingUpgrade(el, el.LocalName(), false)
	}
	e.defs.set(el, def)
	e.failures.delete(el)
	if a := e.adapters[def.class]; a != nil {
		el.SetAttributeInterceptor(a)
	}
}

func (e *Engine) unbind(el *dom.Node) {
	e.defs.delete(el)
	el.SetAttributeInterceptor(nil)
	el.SetInstance(nil)
}

func (e *Engine) reportError(err error) {
	if e.onError != nil {
		e.onError(err)
		return
	}
	tracer().Errorf("%v", err)
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine(%d tags)", len(e.standIns))
}
