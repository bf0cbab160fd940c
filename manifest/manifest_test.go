package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scopedreg/dom"
	"github.com/npillmayer/scopedreg/dom/domdbg"
	"github.com/npillmayer/scopedreg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cards = `
registries:
  - name: widgets
    components:
      - tag: x-card
        class: Card
        observed: [title]
        shadow:
          registry: parts
          styles: "header { font-weight: bold } x-label { color: red }"
          template: "<header><x-label></x-label></header>"
  - name: parts
    components:
      - tag: x-label
  - name: global
    components:
      - tag: x-label
        class: PageLabel
mounts:
  - selector: "#app"
    registry: widgets
    template: "<x-card title=Hello></x-card><x-label></x-label>"
`

const page = `<html><body><div id="app"></div><x-label></x-label></body></html>`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(cards))
	require.NoError(t, err)
	require.Len(t, m.Registries, 3)
	assert.Equal(t, "widgets", m.Registries[0].Name)
	assert.Equal(t, []string{"title"}, m.Registries[0].Components[0].Observed)
	require.Len(t, m.Mounts, 1)
	assert.Equal(t, "widgets", m.Mounts[0].Registry)
	assert.Contains(t, m.Mounts[0].Template, "x-card")
}

func TestLoadRejectsInvalidManifests(t *testing.T) {
	for name, src := range map[string]string{
		"unknown key":      "registries:\n  - name: a\n    colour: red\n",
		"bad tag":          "registries:\n  - name: a\n    components:\n      - tag: card\n",
		"unknown registry": "mounts:\n  - selector: body\n    registry: nowhere\n",
		"bad selector":     "mounts:\n  - selector: \"[[\"\n",
		"duplicate":        "registries:\n  - name: a\n  - name: a\n",
		"bad mode":         "mounts:\n  - selector: body\n    mode: half-open\n",
	} {
		_, err := Load(strings.NewReader(src))
		if !errors.Is(err, ErrInvalidManifest) {
			t.Logf("error = %v", err)
			t.Errorf("%s: expected manifest to be rejected", name)
		}
	}
}

func TestApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.manifest")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	m, err := Load(strings.NewReader(cards))
	require.NoError(t, err)
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)
	e := registry.Install(doc)
	set, err := Apply(e, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"global", "widgets", "parts"}, set.Names())
	t.Logf("\n%s", domdbg.PrintTree(dom.W3C(doc.Node()), nil))
	t.Logf("\n%s", set.Log())
	//
	app, _ := doc.Node().QuerySelector("#app")
	require.NotNil(t, app.ShadowRoot())
	card, _ := app.ShadowRoot().QuerySelector("x-card")
	require.NotNil(t, card)
	c, ok := registry.As[*Element](e, card)
	require.True(t, ok, "x-card must be upgraded by registry widgets")
	assert.Equal(t, "widgets", c.Registry)
	inner, _ := card.ShadowRoot().QuerySelector("x-label")
	l, ok := registry.As[*Element](e, inner)
	require.True(t, ok)
	assert.Equal(t, "parts", l.Registry, "x-label in the card's shadow tree belongs to parts")
	outer, _ := doc.Node().QuerySelector("x-label")
	l, ok = registry.As[*Element](e, outer)
	require.True(t, ok)
	assert.Equal(t, "PageLabel", l.Component.Class)
	unscoped, _ := app.ShadowRoot().QuerySelector("x-label")
	assert.Nil(t, e.InstanceOf(unscoped), "widgets does not define x-label")
	//
	log := set.Log()
	assert.Equal(t, 1, log.Count(Constructed, "x-card"))
	assert.Equal(t, 1, log.Count(Connected, "x-card"))
	assert.Equal(t, 1, log.Count(AttributeChanged, "x-card"))
	assert.Equal(t, 2, log.Count(Constructed, "x-label"))
	require.NoError(t, card.SetAttribute("title", "Bye"))
	events := log.Events()
	last := events[len(events)-1]
	assert.Equal(t, AttributeChanged, last.Kind)
	assert.Equal(t, `title: "Hello" → "Bye"`, last.Detail)
}

func TestStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.manifest")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	m, err := Load(strings.NewReader(cards))
	require.NoError(t, err)
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)
	e := registry.Install(doc)
	_, err = Apply(e, m)
	require.NoError(t, err)
	sheets := ExtractStyles(doc.Node())
	require.Len(t, sheets, 1)
	rules := sheets[0].Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "header", rules[0].Selector())
	assert.Equal(t, "bold", rules[0].Value("font-weight"))
	assert.Equal(t, []string{"font-weight"}, rules[0].Properties())
	card, _ := doc.Node().QuerySelector("#app")
	card, _ = card.ShadowRoot().QuerySelector("x-card")
	matches := sheets[0].Match(card.ShadowRoot())
	assert.Equal(t, []RuleMatch{{"header", 1}, {"x-label", 1}}, matches)
}

func TestClassName(t *testing.T) {
	for tag, want := range map[string]string{
		"x-card":        "XCard",
		"my-fancy-list": "MyFancyList",
		"a--b":          "AB",
	} {
		if got := className(tag); got != want {
			t.Errorf("className(%q) = %q, expected %q", tag, got, want)
		}
	}
}
