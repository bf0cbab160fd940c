package registry

import (
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/npillmayer/scopedreg/dom"
)

// Registry is a scoped custom element registry. It maps tag names to
// definitions for one tree scope and keeps the elements of its scope which
// wait for a definition.
type Registry struct {
	id                uuid.UUID
	name              string
	engine            *Engine
	global            bool
	allowRedefinition bool
	definitions       map[string]*Definition
	pending           map[string][]*dom.Node // in order of registration
	deferred          map[string]*Deferred
}

var _ dom.ElementRegistry = (*Registry)(nil)

func newRegistry(e *Engine, global bool) *Registry {
	r := &Registry{
		id:          uuid.New(),
		engine:      e,
		global:      global,
		definitions: make(map[string]*Definition),
		pending:     make(map[string][]*dom.Node),
		deferred:    make(map[string]*Deferred),
	}
	if global {
		r.name = "global"
	}
	return r
}

// ID returns the unique identity of r.
func (r *Registry) ID() uuid.UUID {
	return r.id
}

// Engine returns the engine r belongs to.
func (r *Registry) Engine() *Engine {
	return r.engine
}

// IsGlobal is true for the document-level registry.
func (r *Registry) IsGlobal() bool {
	return r.global
}

// Name returns the name r has been created with, or a short form of its ID.
func (r *Registry) Name() string {
	if r.name != "" {
		return r.name
	}
	return r.id.String()[:8]
}

func (r *Registry) String() string {
	return "registry(" + r.Name() + ")"
}

// Define defines tag as cls in r. It fails with ErrDuplicateDefinition if
// tag is already defined and r does not allow redefinition; a failed Define
// leaves r unchanged.
//
// Elements of r's scope waiting for tag are upgraded in the order they have
// been registered. Failing upgrades do not fail Define; they are reported to
// the engine's error handler. Callbacks waiting on WhenDefined(tag) run last.
func (r *Registry) Define(tag string, cls *Class, opts ...DefineOptions) (*Class, error) {
	tag = strings.ToLower(tag)
	if !dom.ValidCustomElementName(tag) {
		return nil, failure("define", tag, ErrInvalidName)
	}
	for _, o := range opts {
		if o.Extends != "" {
			return nil, failure("define", tag, ErrNotSupported)
		}
	}
	if cls == nil || cls.Construct == nil {
		return nil, failure("define", tag, ErrInvalidClass)
	}
	if _, exists := r.definitions[tag]; exists && !r.allowRedefinition {
		return nil, failure("define", tag, ErrDuplicateDefinition)
	}
	e := r.engine
	s, err := e.ensureStandIn(tag)
	if err != nil {
		return nil, failure("define", tag, err)
	}
	e.installAdapter(cls)
	def := newDefinition(r, tag, cls)
	r.definitions[tag] = def
	if r.global {
		def.standIn = s
		e.byClass[cls] = def
		e.metrics.definitions.WithLabelValues("global").Inc()
	} else {
		e.metrics.definitions.WithLabelValues("scoped").Inc()
	}
	tracer().Infof("%s: defined <%s> as %s", r, tag, cls)
	var callbacks []func()
	if d, ok := r.deferred[tag]; ok {
		callbacks = d.resolve()
	}
	r.replay(def)
	for _, cb := range callbacks {
		cb()
	}
	return cls, nil
}

// replay upgrades the elements waiting for def's tag. Hooks may define or
// construct further elements; the pending set is detached before iterating.
func (r *Registry) replay(def *Definition) {
	waiting := r.pending[def.tag]
	delete(r.pending, def.tag)
	e := r.engine
	for _, el := range waiting {
		if p, ok := e.pending.get(el); ok && p == r {
			e.pending.delete(el)
			e.metrics.pending.Dec()
		}
		if _, upgraded := e.definitionOf(el); upgraded {
			continue
		}
		if err := e.upgrade(el, def, pathDeferred); err != nil {
			e.reportError(err)
			continue
		}
		if el.IsConnected() && def.connected != nil {
			def.connected(e.InstanceOf(el))
		}
	}
}

// Get returns the class defined for tag in r.
func (r *Registry) Get(tag string) (*Class, bool) {
	if def, ok := r.definitions[strings.ToLower(tag)]; ok {
		return def.class, true
	}
	return nil, false
}

// Definition returns the definition of tag in r.
func (r *Registry) Definition(tag string) (*Definition, bool) {
	def, ok := r.definitions[strings.ToLower(tag)]
	return def, ok
}

// Definitions returns the tag names defined in r, sorted.
func (r *Registry) Definitions() []string {
	tags := make([]string, 0, len(r.definitions))
	for tag := range r.definitions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// WhenDefined returns the notification for the definition of tag in r.
// All calls for a tag return the same Deferred, before and after the tag
// has been defined.
func (r *Registry) WhenDefined(tag string) *Deferred {
	tag = strings.ToLower(tag)
	d, ok := r.deferred[tag]
	if !ok {
		d = newDeferred(tag)
		r.deferred[tag] = d
		if _, defined := r.definitions[tag]; defined {
			d.resolve()
		}
	}
	return d
}

// RegisterPendingUpgrade adds el to (shouldRegister) or removes el from the
// elements of r waiting for a definition of tag. Both directions are
// idempotent. An upgraded element is never registered.
func (r *Registry) RegisterPendingUpgrade(el *dom.Node, tag string, shouldRegister bool) {
	tag = strings.ToLower(tag)
	e := r.engine
	waiting := r.pending[tag]
	i := slices.Index(waiting, el)
	if !shouldRegister {
		if i >= 0 {
			r.pending[tag] = slices.Delete(waiting, i, i+1)
			if len(r.pending[tag]) == 0 {
				delete(r.pending, tag)
			}
			e.metrics.pending.Dec()
			tracer().Debugf("%s: %s no longer waits for a definition", r, el)
		}
		if p, ok := e.pending.get(el); ok && p == r {
			e.pending.delete(el)
		}
		return
	}
	if _, upgraded := e.definitionOf(el); upgraded {
		return
	}
	if p, ok := e.pending.get(el); ok && p != r {
		p.RegisterPendingUpgrade(el, tag, false)
	}
	e.pending.set(el, r)
	if i < 0 {
		r.pending[tag] = append(waiting, el)
		e.metrics.pending.Inc()
		tracer().Debugf("%s: %s waits for a definition", r, el)
	}
}

// Pending returns the elements waiting for a definition of tag, in the
// order they will be upgraded.
func (r *Registry) Pending(tag string) []*dom.Node {
	return slices.Clone(r.pending[strings.ToLower(tag)])
}

// Upgrade upgrades undefined elements among root's shadow-including
// inclusive descendants, with r as creation context for elements not
// inserted into any scope.
func (r *Registry) Upgrade(root *dom.Node) {
	e := r.engine
	_ = e.withContext(anchor{registry: r}, func() error {
		e.doc.Upgrade(root)
		return nil
	})
}
