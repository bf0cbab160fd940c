/*
Package domdbg implements helpers to debug a DOM tree.

Trees are printed either as indented text (PrintTree) or as a GraphViz
diagram (ToGraphViz, Dotty). Shadow trees are included below their host
element. Clients may annotate every node with a short text, e.g. the custom
element state of an element; see type Annotator.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/scopedreg/dom/w3cdom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Annotator returns a short annotation for a node, or "" for none.
type Annotator func(w3cdom.Node) string

// PrintTree renders the tree under root as indented text.
func PrintTree(root w3cdom.Node, annotate Annotator) string {
	if root == nil {
		return "<empty>"
	}
	printer := tp.NewWithRoot(label(root, annotate))
	printChildren(printer, root, annotate)
	return printer.String()
}

func printChildren(printer tp.Tree, n w3cdom.Node, annotate Annotator) {
	if sr := n.ShadowRoot(); sr != nil {
		branch := printer.AddBranch("#shadow-root" + annotation(sr, annotate))
		printChildren(branch, sr, annotate)
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if !ch.HasChildNodes() && ch.ShadowRoot() == nil {
			printer.AddNode(label(ch, annotate))
			continue
		}
		branch := printer.AddBranch(label(ch, annotate))
		printChildren(branch, ch, annotate)
	}
}

func label(n w3cdom.Node, annotate Annotator) string {
	var s string
	switch n.NodeType() {
	case html.ElementNode:
		s = "<" + n.LocalName() + attributes(n) + ">"
	case html.TextNode:
		s = shortText(n)
	case html.CommentNode:
		s = "<!--" + n.NodeValue() + "-->"
	default:
		s = n.NodeName()
	}
	return s + annotation(n, annotate)
}

func annotation(n w3cdom.Node, annotate Annotator) string {
	if annotate == nil {
		return ""
	}
	if a := annotate(n); a != "" {
		return "  [" + a + "]"
	}
	return ""
}

func attributes(n w3cdom.Node) string {
	attrs := n.Attributes()
	var b strings.Builder
	for i := 0; i < attrs.Length(); i++ {
		a := attrs.Item(i)
		fmt.Fprintf(&b, " %s=%q", a.Key(), a.Value())
	}
	return b.String()
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	Annotate Annotator
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM, a Writer, and an optional annotator. Annotations are printed
// below the node name; shadow roots are connected to their hosts with
// dashed edges.
func ToGraphViz(doc w3cdom.Node, w io.Writer, annotate Annotator) {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica", Annotate: annotate}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"annotation":  gparams.annotation,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	err = tmpl.Execute(w, gparams)
	if err != nil {
		panic(err)
	}
	dict := make(map[w3cdom.Node]string, 1024)
	nodes(doc, w, dict, &gparams)
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a DOM node and a testing.T, it will
// create a Graphiviz image of the DOM tree under `doc` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(doc w3cdom.Node, annotate Annotator, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	ToGraphViz(doc, tmpfile, annotate)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Log("writing DOM tree image to tree.svg\n")
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    w3cdom.Node
	Name string
}

// W3C views are created on the fly; a node is keyed by the view it is
// visited with.
func nodes(n w3cdom.Node, w io.Writer, dict map[w3cdom.Node]string, gparams *graphParamsType) {
	domNode(n, w, dict, gparams)
	if sr := n.ShadowRoot(); sr != nil {
		nodes(sr, w, dict, gparams)
		domEdge(n, sr, true, w, dict, gparams)
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		nodes(ch, w, dict, gparams)
		domEdge(n, ch, false, w, dict, gparams)
	}
}

func domNode(n w3cdom.Node, w io.Writer, dict map[w3cdom.Node]string, gparams *graphParamsType) {
	name := dict[n]
	if name == "" {
		l := len(dict) + 1
		name = fmt.Sprintf("node%05d", l)
		dict[n] = name
	}
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		panic(err)
	}
}

type edge struct {
	N1, N2 node
	Shadow bool
}

func domEdge(n1, n2 w3cdom.Node, shadow bool, w io.Writer, dict map[w3cdom.Node]string,
	gparams *graphParamsType) {
	//
	name1 := dict[n1]
	name2 := dict[n2]
	e := edge{node{n1, name1}, node{n2, name2}, shadow}
	if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
		panic(err)
	}
}

func (gparams *graphParamsType) annotation(n w3cdom.Node) string {
	if gparams.Annotate == nil {
		return ""
	}
	return gparams.Annotate(n)
}

func shortText(n w3cdom.Node) string {
	data := n.NodeValue()
	s := "\"\\\""
	if len(data) > 10 {
		s += data[:10] + "...\\\"\""
	} else {
		s += data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.NodeName "#text" }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if eq .N.NodeName "#document-fragment" }}
{{ .Name }}	[ label="#shadow-root" shape=hexagon style=filled fillcolor=lightyellow ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%s\n%s" .N.NodeName (annotation .N) | printf "%q" }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1{{ if .Shadow }} style="dashed"{{ end }}] ;
`
