package registry

import (
	"fmt"

	"github.com/npillmayer/scopedreg/dom"
	"github.com/npillmayer/scopedreg/dom/w3cdom"
)

// Annotate describes the registry state of an element, for use as a
// domdbg.Annotator:
//
//	Card@widgets      upgraded with class Card of registry widgets
//	pending@widgets   waiting for registry widgets to define its tag
//	failed            upgrade failed
//
// Other nodes are not annotated.
func (e *Engine) Annotate(w w3cdom.Node) string {
	n := dom.FromW3C(w)
	if n == nil || n.NodeType() != dom.ElementNode {
		return ""
	}
	if def, ok := e.definitionOf(n); ok {
		return fmt.Sprintf("%s@%s", def.class.Name, def.registry.Name())
	}
	if r, ok := e.pending.get(n); ok {
		return "pending@" + r.Name()
	}
	if _, failed := e.failures.get(n); failed {
		return "failed"
	}
	return ""
}
