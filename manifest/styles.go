package manifest

import (
	"fmt"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/scopedreg/dom"
)

// Stylesheet wraps a douceur stylesheet of a component.
type Stylesheet struct {
	css *css.Stylesheet
}

// ParseStyles parses CSS source.
func ParseStyles(src string) (*Stylesheet, error) {
	sheet, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing styles: %w", err)
	}
	return &Stylesheet{css: sheet}, nil
}

// Empty checks if this stylesheet contains any rules.
func (sheet *Stylesheet) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// Rules returns all the rules of a stylesheet.
func (sheet *Stylesheet) Rules() []Rule {
	rules := make([]Rule, len(sheet.css.Rules))
	for i, r := range sheet.css.Rules {
		rules[i] = Rule(*r)
	}
	return rules
}

// String returns the normalised CSS text.
func (sheet *Stylesheet) String() string {
	return sheet.css.String()
}

// Rule is a rule of a stylesheet.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// IsQualified is false for at-rules.
func (r Rule) IsQualified() bool {
	return r.Kind == css.QualifiedRule
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for key, e.g. "15px".
func (r Rule) Value(key string) string {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Value
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

// ExtractStyles collects the <style> elements of a tree, including shadow
// trees, and parses their content. Unparsable styles are skipped.
func ExtractStyles(root *dom.Node) []*Stylesheet {
	var sheets []*Stylesheet
	root.WalkShadowIncluding(func(n *dom.Node) {
		if n.NodeType() != dom.ElementNode || n.LocalName() != "style" {
			return
		}
		sheet, err := ParseStyles(n.TextContent())
		if err != nil {
			tracer().Infof("skipping <style>: %v", err)
			return
		}
		sheets = append(sheets, sheet)
	})
	return sheets
}

// RuleMatch counts the elements a rule's selector matches.
type RuleMatch struct {
	Selector string
	Count    int
}

// Match counts for every qualified rule of sheet the elements of scope
// matching its selector. Shadow trees below scope are not searched, like
// styles of a shadow tree do not apply to nested shadow trees.
func (sheet *Stylesheet) Match(scope *dom.Node) []RuleMatch {
	var matches []RuleMatch
	for _, r := range sheet.Rules() {
		if !r.IsQualified() {
			continue
		}
		found, err := scope.QuerySelectorAll(r.Selector())
		if err != nil {
			tracer().Debugf("selector %q: %v", r.Selector(), err)
			continue
		}
		matches = append(matches, RuleMatch{Selector: r.Selector(), Count: len(found)})
	}
	return matches
}
