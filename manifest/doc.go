/*
Package manifest applies declarative sets of custom elements to a document.

A manifest is a YAML document naming registries, the components defined in
each, and mount points: elements of the document which receive a shadow tree
scoped to one of the registries.

    registries:
      - name: widgets
        components:
          - tag: x-card
            class: Card
            observed: [title]
            shadow:
              registry: parts
              styles: "header { font-weight: bold }"
              template: "<header><x-label></x-label></header>"
      - name: parts
        components:
          - tag: x-label
    mounts:
      - selector: "#app"
        registry: widgets
        template: "<x-card title=Hello></x-card>"

The registry named "global" is the document's registry. Mounts are rendered
before any component is defined, so components inside mounted trees are
upgraded when their registry defines them. Every construction and lifecycle
reaction of a component is recorded in an event log.

Styles are parsed with douceur and rendered as a <style> element at the
start of the shadow tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package manifest

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedreg.manifest'.
func tracer() tracing.Trace {
	return tracing.Select("scopedreg.manifest")
}
