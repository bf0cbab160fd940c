package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scopedreg/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	name     string
	old, new dom.AttrValue
}

type fooElement struct {
	HTMLElement
	class        string
	changes      []change
	connected    int
	disconnected int
	adopted      int
}

func fooClass(name string, observed ...string) *Class {
	return &Class{
		Name:               name,
		ObservedAttributes: observed,
		Construct: func(super Super) (Element, error) {
			el, err := super()
			if err != nil {
				return nil, err
			}
			return &fooElement{HTMLElement: HTMLElement{Node: el}, class: name}, nil
		},
		ConnectedCallback: func(el Element) {
			el.(*fooElement).connected++
		},
		DisconnectedCallback: func(el Element) {
			el.(*fooElement).disconnected++
		},
		AdoptedCallback: func(el Element, _, _ *dom.Document) {
			el.(*fooElement).adopted++
		},
		AttributeChangedCallback: func(el Element, name string, old, new dom.AttrValue) {
			f := el.(*fooElement)
			f.changes = append(f.changes, change{name, old, new})
		},
	}
}

func newPage(t require.TestingT, opts ...Option) (*Engine, *dom.Node) {
	doc, err := dom.Parse(strings.NewReader("<html><head></head><body></body></html>"))
	require.NoError(t, err)
	e := Install(doc, opts...)
	body := doc.Body()
	require.NotNil(t, body)
	return e, body
}

// scopedShadow attaches a shadow root with registry r to a new element
// inserted into body.
func scopedShadow(t require.TestingT, e *Engine, body *dom.Node, r *Registry) *dom.Node {
	host, err := e.Document().CreateElement("div")
	require.NoError(t, err)
	require.NoError(t, body.AppendChild(host))
	var shadowInit dom.ShadowRootInit
	if r != nil {
		shadowInit.Registry = r
	}
	sr, err := host.AttachShadow(shadowInit)
	require.NoError(t, err)
	return sr
}

func TestDefineTwiceFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	r := e.NewRegistry()
	clsA := fooClass("A")
	cls, err := r.Define("x-foo", clsA)
	require.NoError(t, err)
	assert.Same(t, clsA, cls)
	_, err = r.Define("x-foo", clsA)
	if !errors.Is(err, ErrDuplicateDefinition) {
		t.Logf("error = %v", err)
		t.Error("expected second definition of x-foo to fail with ErrDuplicateDefinition")
	}
	var derr *DefinitionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "define", derr.Op)
	assert.Equal(t, "x-foo", derr.Name)
	got, ok := r.Get("x-foo")
	assert.True(t, ok)
	assert.Same(t, clsA, got, "registry must still map x-foo to the first class")
}

func TestDefineValidatesArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	r := e.Global()
	_, err := r.Define("foo", fooClass("A"))
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = r.Define("font-face", fooClass("A"))
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = r.Define("x-foo", nil)
	assert.ErrorIs(t, err, ErrInvalidClass)
	_, err = r.Define("x-foo", &Class{Name: "NoConstructor"})
	assert.ErrorIs(t, err, ErrInvalidClass)
	_, err = r.Define("x-foo", fooClass("A"), DefineOptions{Extends: "button"})
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Empty(t, r.Definitions(), "failed definitions must not leave state behind")
	_, err = r.Define("X-Foo", fooClass("A"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x-foo"}, r.Definitions())
}

func TestRedefinitionKeepsUpgradedInstances(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r := e.NewRegistry(AllowRedefinition())
	sr := scopedShadow(t, e, body, r)
	clsA, clsB := fooClass("A"), fooClass("B")
	_, err := r.Define("x-foo", clsA)
	require.NoError(t, err)
	first, err := sr.CreateElement("x-foo")
	require.NoError(t, err)
	_, err = r.Define("x-foo", clsB)
	require.NoError(t, err, "redefinition is allowed in this registry")
	second, err := sr.CreateElement("x-foo")
	require.NoError(t, err)
	f1, ok := As[*fooElement](e, first)
	require.True(t, ok)
	f2, ok := As[*fooElement](e, second)
	require.True(t, ok)
	assert.Equal(t, "A", f1.class, "already upgraded instance must keep its class")
	assert.Equal(t, "B", f2.class, "new instances must use the new definition")
	def, _ := e.Definition(first)
	assert.Same(t, clsA, def.Class())
}

func TestWhenDefinedResolvesOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	r := e.NewRegistry()
	before := r.WhenDefined("x-foo")
	assert.Same(t, before, r.WhenDefined("X-FOO"), "calls before definition must share the deferred value")
	calls := 0
	before.Then(func() { calls++ })
	assert.False(t, before.Resolved())
	_, err := r.Define("x-foo", fooClass("A"))
	require.NoError(t, err)
	assert.True(t, before.Resolved())
	assert.Equal(t, 1, calls)
	after := r.WhenDefined("x-foo")
	assert.Same(t, before, after)
	require.NoError(t, after.Wait(context.Background()))
	after.Then(func() { calls++ })
	assert.Equal(t, 2, calls, "callbacks on a resolved value run immediately")
	other := e.NewRegistry().WhenDefined("x-foo")
	assert.False(t, other.Resolved(), "definitions of other registries must not resolve")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, other.Wait(ctx), context.Canceled)
}

func TestWhenDefinedAfterDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	r := e.Global()
	_, err := r.Define("x-late", fooClass("A"))
	require.NoError(t, err)
	d := r.WhenDefined("x-late")
	select {
	case <-d.Done():
	default:
		t.Error("expected deferred value of a defined tag to be resolved")
	}
}

func TestImmediateUpgradeInScope(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r := e.NewRegistry()
	sr := scopedShadow(t, e, body, r)
	_, err := r.Define("x-foo", fooClass("A"))
	require.NoError(t, err)
	el, err := sr.CreateElement("x-foo")
	require.NoError(t, err)
	if _, ok := As[*fooElement](e, el); !ok {
		t.Error("expected element created in scope to be upgraded before CreateElement returns")
	}
	_, pending := e.PendingRegistry(el)
	assert.False(t, pending)
	def, ok := e.Definition(el)
	require.True(t, ok)
	assert.Same(t, r, def.Registry())
	assert.False(t, def.IsGlobal())
}

func TestPendingUntilRegistryDefines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r1, r2 := e.NewRegistry(Named("r1")), e.NewRegistry(Named("r2"))
	sr := scopedShadow(t, e, body, r2)
	_, err := r1.Define("x-foo", fooClass("A")) // stand-in now exists
	require.NoError(t, err)
	el, err := sr.CreateElement("x-foo")
	require.NoError(t, err)
	assert.Nil(t, e.InstanceOf(el), "r2 has no definition, element must stay a placeholder")
	p, ok := e.PendingRegistry(el)
	require.True(t, ok)
	assert.Same(t, r2, p)
	assert.Equal(t, []*dom.Node{el}, r2.Pending("x-foo"))
	_, err = r2.Define("x-foo", fooClass("B"))
	require.NoError(t, err)
	f, ok := As[*fooElement](e, el)
	require.True(t, ok)
	assert.Equal(t, "B", f.class)
	assert.Empty(t, r2.Pending("x-foo"))
	_, ok = e.PendingRegistry(el)
	assert.False(t, ok, "an element is either pending or upgraded, never both")
	assert.Equal(t, 0, f.connected, "element has never been connected")
}

func TestScopesAreIsolated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r1, r2 := e.NewRegistry(), e.NewRegistry()
	sr1 := scopedShadow(t, e, body, r1)
	sr2 := scopedShadow(t, e, body, r2)
	_, err := r1.Define("x-widget", fooClass("One"))
	require.NoError(t, err)
	_, err = r2.Define("x-widget", fooClass("Two"))
	require.NoError(t, err)
	require.NoError(t, sr1.SetInnerHTML("<x-widget></x-widget>"))
	require.NoError(t, sr2.SetInnerHTML("<p><x-widget></x-widget></p>"))
	w1, _ := sr1.QuerySelector("x-widget")
	w2, _ := sr2.QuerySelector("x-widget")
	f1, ok1 := As[*fooElement](e, w1)
	f2, ok2 := As[*fooElement](e, w2)
	require.True(t, ok1 && ok2)
	assert.Equal(t, "One", f1.class)
	assert.Equal(t, "Two", f2.class)
	assert.Equal(t, 1, f1.connected)
	assert.Equal(t, 1, f2.connected)
	_, ok := e.Global().Get("x-widget")
	assert.False(t, ok, "global registry must not see scoped definitions")
	light, err := e.Document().CreateElement("x-widget")
	require.NoError(t, err)
	assert.Nil(t, e.InstanceOf(light))
	p, _ := e.PendingRegistry(light)
	assert.Same(t, e.Global(), p)
}

func TestShadowRootWithoutRegistryUsesGlobal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	sr := scopedShadow(t, e, body, nil)
	_, err := e.Global().Define("x-foo", fooClass("G"))
	require.NoError(t, err)
	el, err := sr.CreateElement("x-foo")
	require.NoError(t, err)
	r, err := e.RegistryFor(sr)
	require.NoError(t, err)
	assert.Same(t, e.Global(), r)
	def, ok := e.Definition(el)
	require.True(t, ok)
	assert.True(t, def.IsGlobal())
}

func TestReplayObservedAttributesOnUpgrade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r := e.NewRegistry()
	sr := scopedShadow(t, e, body, r)
	require.NoError(t, sr.SetInnerHTML(`<x-foo state="a" other="b"></x-foo>`))
	el, _ := sr.QuerySelector("x-foo")
	require.NotNil(t, el)
	assert.Nil(t, e.InstanceOf(el))
	_, err := r.Define("x-foo", fooClass("Cls", "state"))
	require.NoError(t, err)
	f, ok := As[*fooElement](e, el)
	require.True(t, ok, "element must now be an instance of Cls")
	require.Len(t, f.changes, 1)
	assert.Equal(t, change{"state", dom.NullValue, dom.ValueOf("a")}, f.changes[0])
	assert.Equal(t, 1, f.connected, "connected element receives its connected hook after the upgrade")
}

func TestObservedAttributeSetWhilePending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r := e.NewRegistry()
	sr := scopedShadow(t, e, body, r)
	_, err := e.NewRegistry().Define("x-foo", fooClass("Other"))
	require.NoError(t, err)
	el, err := sr.CreateElement("x-foo")
	require.NoError(t, err)
	require.NoError(t, el.SetAttribute("state", "a"))
	require.NoError(t, el.SetAttribute("state", "b"))
	_, err = r.Define("x-foo", fooClass("Cls", "state"))
	require.NoError(t, err)
	f, ok := As[*fooElement](e, el)
	require.True(t, ok)
	if len(f.changes) != 1 {
		t.Logf("changes = %v", f.changes)
		t.Fatalf("expected exactly one notification, have %d", len(f.changes))
	}
	assert.Equal(t, change{"state", dom.NullValue, dom.ValueOf("b")}, f.changes[0])
}

func TestAttributeChangeAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	_, err := e.Global().Define("x-foo", fooClass("Cls", "State", "size"))
	require.NoError(t, err)
	el, err := e.Document().CreateElement("x-foo")
	require.NoError(t, err)
	f, ok := As[*fooElement](e, el)
	require.True(t, ok)
	require.NoError(t, el.SetAttribute("state", "on"))
	require.NoError(t, el.SetAttribute("state", "off"))
	require.NoError(t, el.SetAttribute("title", "not observed"))
	el.RemoveAttribute("state")
	el.RemoveAttribute("size") // absent
	want := []change{
		{"state", dom.NullValue, dom.ValueOf("on")},
		{"state", dom.ValueOf("on"), dom.ValueOf("off")},
		{"state", dom.ValueOf("off"), dom.NullValue},
	}
	assert.Equal(t, want, f.changes)
	title, _ := el.GetAttribute("title")
	assert.Equal(t, "not observed", title)
	assert.False(t, el.HasAttribute("state"))
}

func TestClassWithoutObservedAttributesGetsNoAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	cls := fooClass("Plain")
	_, err := e.Global().Define("x-plain", cls)
	require.NoError(t, err)
	el, err := e.Document().CreateElement("x-plain")
	require.NoError(t, err)
	assert.Nil(t, el.AttributeInterceptor())
	assert.NotContains(t, e.adapters, cls)
}

func TestConnectedHooksOfUpgradedElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	_, err := e.Global().Define("x-foo", fooClass("A"))
	require.NoError(t, err)
	el, err := e.Document().CreateElement("x-foo")
	require.NoError(t, err)
	f, _ := As[*fooElement](e, el)
	require.NoError(t, body.AppendChild(el))
	el.Remove()
	require.NoError(t, body.AppendChild(el))
	assert.Equal(t, 2, f.connected)
	assert.Equal(t, 1, f.disconnected)
	other := dom.NewDocument()
	require.NoError(t, other.AdoptNode(el))
	assert.Equal(t, 2, f.disconnected)
	assert.Equal(t, 1, f.adopted)
}

func TestMoveIntoScopeThatDefinesTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, body := newPage(t)
	r := e.NewRegistry()
	sr := scopedShadow(t, e, body, r)
	_, err := r.Define("x-foo", fooClass("Scoped"))
	require.NoError(t, err)
	el, err := e.Document().CreateElement("x-foo")
	require.NoError(t, err)
	p, _ := e.PendingRegistry(el)
	require.Same(t, e.Global(), p)
	require.NoError(t, sr.AppendChild(el))
	f, ok := As[*fooElement](e, el)
	require.True(t, ok, "element connected into r's scope must be upgraded by r")
	assert.Equal(t, "Scoped", f.class)
	assert.Equal(t, 1, f.connected)
	assert.Empty(t, e.Global().Pending("x-foo"))
}

func TestRegistryUpgradeOfDetachedTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e, _ := newPage(t)
	r := e.NewRegistry()
	frag := e.Document().CreateDocumentFragment()
	require.NoError(t, frag.SetInnerHTML("<div><x-late></x-late></div>"))
	el, _ := frag.QuerySelector("x-late")
	require.NotNil(t, el)
	assert.Equal(t, dom.StateUndefined, el.CustomElementState())
	_, err := r.Define("x-late", fooClass("Late"))
	require.NoError(t, err)
	assert.Nil(t, e.InstanceOf(el), "detached elements are not upgraded by a definition")
	r.Upgrade(frag)
	f, ok := As[*fooElement](e, el)
	require.True(t, ok)
	assert.Equal(t, "Late", f.class)
	assert.Equal(t, dom.StateCustom, el.CustomElementState())
}

func TestParsedDocumentIsUpgradedOnDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedreg.registry")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	doc, err := dom.Parse(strings.NewReader(`<body><x-foo state="a"></x-foo><x-foo></x-foo></body>`))
	require.NoError(t, err)
	e := Install(doc)
	_, err = e.Global().Define("x-foo", fooClass("A", "state"))
	require.NoError(t, err)
	all, err := doc.Node().QuerySelectorAll("x-foo")
	require.NoError(t, err)
	require.Len(t, all, 2)
	first, ok := As[*fooElement](e, all[0])
	require.True(t, ok)
	assert.Len(t, first.changes, 1)
	assert.Equal(t, 1, first.connected)
	second, ok := As[*fooElement](e, all[1])
	require.True(t, ok)
	assert.Empty(t, second.changes)
	assert.Equal(t, 1, second.connected)
}
