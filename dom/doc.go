/*
Package dom implements the host document object model custom element
registries plug into.

Status

The DOM is deliberately small: documents, elements, text, comments,
shadow roots and fragments, with just enough of the W3C behaviour to host
custom elements. It is not a browser engine.

Overview

Nodes are built on top of the general purpose tree type of package tree.
A dom.Node embeds a tree.Node[*dom.Node] and sets its payload to point back
to itself, so tree operations and DOM operations work on the same value.

The host has exactly one flat namespace of custom element constructors per
document (see Document.DefineElement). Everything a custom element library
wants to do beyond that has to go through one of the documented extension
points:

  - ElementConstructor: the object the host calls to construct an element
    of a defined tag, and to deliver connected, disconnected and adopted
    reactions.
  - CreationInterceptor: wraps every creation primitive (CreateElement on a
    document or shadow root, SetInnerHTML, InsertAdjacentHTML, ImportNode,
    CloneNode) with the node it was invoked on.
  - AttributeInterceptor: installed per element, wraps SetAttribute and
    RemoveAttribute.
  - ShadowRootInit.Registry: an opaque registry value stored on a shadow root
    when it is attached.

Reactions run synchronously after a mutation completes, over a snapshot of
the affected elements in shadow-including tree order.

Markup is parsed and rendered with golang.org/x/net/html; selectors are
matched with github.com/andybalholm/cascadia.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedreg.dom'.
func tracer() tracing.Trace {
	return tracing.Select("scopedreg.dom")
}
