/*
Package registry implements scoped custom element registries on top of the
single, flat element namespace of a dom.Document.

Overview

A host document knows exactly one constructor per custom element tag. This
package lets many registries coexist in one document, each visible only in
the tree it is installed on: the document itself, or a shadow tree attached
with

    sr, _ := host.AttachShadow(dom.ShadowRootInit{Registry: r})

For every tag defined in any registry, the engine registers one stand-in
constructor with the host. When the host constructs an element of that tag,
the stand-in resolves the registry owning the element (see "Scopes" below)
and either upgrades the element to the class defined there, or parks it as
pending until that registry defines the tag.

Classes

Element classes are described by a Class value. Construct is the class's
constructor. It receives the base element constructor `super`, which hands
out the element currently being upgraded, or allocates a fresh one for
direct construction through Engine.New:

    cls := &registry.Class{
        Name:               "FooElement",
        ObservedAttributes: []string{"state"},
        Construct: func(super registry.Super) (registry.Element, error) {
            el, err := super()
            if err != nil {
                return nil, err
            }
            return &Foo{HTMLElement: registry.HTMLElement{Node: el}}, nil
        },
        AttributeChangedCallback: func(el registry.Element, name string, old, new dom.AttrValue) {
            ...
        },
    }

Hooks are copied into a Definition when the class is defined; changing the
Class afterwards has no effect on existing definitions.

Scopes

An element belongs to the registry of its tree root: the document's global
registry, or the registry of its shadow root (the global one if the shadow
root has been attached without a registry). Elements not yet inserted
anywhere are resolved through the creation context: every host creation
primitive pushes the node it has been invoked on for its duration. If
neither yields a scope, construction fails with ErrNoValidScope.

Attributes

The host's attribute observation list is fixed when a tag is defined, which
happens once per tag for all registries. Attribute observation is therefore
simulated by an attribute interceptor installed on upgraded elements of
classes with observed attributes. On upgrade, every observed attribute
present is notified once, with a null old value.

The engine is not safe for concurrent use; like the host document it
expects a single goroutine.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package registry

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedreg.registry'.
func tracer() tracing.Trace {
	return tracing.Select("scopedreg.registry")
}
