package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// QuerySelectorAll returns the elements among the descendants of n matching
// a CSS selector, in document order. Shadow trees are not searched.
func (n *Node) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: selector %q: %v", ErrSyntax, selector, err)
	}
	h, back := mirror(n)
	var result []*Node
	for _, m := range sel.MatchAll(h) {
		if m == h { // the context node itself never matches
			continue
		}
		result = append(result, back[m])
	}
	return result, nil
}

// QuerySelector returns the first element among the descendants of n
// matching a CSS selector, or nil.
func (n *Node) QuerySelector(selector string) (*Node, error) {
	all, err := n.QuerySelectorAll(selector)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}
