package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/scopedreg/dom"
	"github.com/npillmayer/scopedreg/dom/domdbg"
	"github.com/npillmayer/scopedreg/manifest"
	"github.com/npillmayer/scopedreg/registry"
	"github.com/spf13/cobra"
)

var errNoManifest = errors.New("no manifest given, use --manifest or a config file")

var inspectCmd = &cobra.Command{
	Use:   "inspect <page.html>",
	Short: "Apply a manifest to a page and print the upgraded document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var validateCmd = &cobra.Command{
	Use:   "validate <manifest.yaml>",
	Short: "Check a manifest without applying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.LoadFile(args[0])
		if err != nil {
			return err
		}
		n := 0
		for _, rs := range m.Registries {
			n += len(rs.Components)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d registries, %d components, %d mounts\n",
			args[0], len(m.Registries), n, len(m.Mounts))
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("dot", false, "print the document in GraphViz DOT format")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if cfg.Manifest == "" {
		return errNoManifest
	}
	m, err := manifest.LoadFile(cfg.Manifest)
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	var opts []registry.Option
	if cfg.Redefinition {
		opts = append(opts, registry.WithRedefinition())
	}
	var failures []error
	opts = append(opts, registry.WithErrorHandler(func(err error) {
		failures = append(failures, err)
	}))
	e := registry.Install(doc, opts...)
	set, err := manifest.Apply(e, m)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if dot, _ := cmd.Flags().GetBool("dot"); dot {
		domdbg.ToGraphViz(dom.W3C(doc.Node()), out, e.Annotate)
		return nil
	}
	report(out, doc, set, failures)
	return nil
}

func report(w io.Writer, doc *dom.Document, set *manifest.Set, failures []error) {
	fmt.Fprintln(w, "== document")
	fmt.Fprint(w, domdbg.PrintTree(dom.W3C(doc.Node()), set.Engine().Annotate))
	fmt.Fprintln(w, "== registries")
	for _, name := range set.Names() {
		r, _ := set.Registry(name)
		fmt.Fprintf(w, "%-12s %s\n", name, strings.Join(r.Definitions(), " "))
	}
	fmt.Fprintln(w, "== events")
	fmt.Fprint(w, set.Log())
	if len(failures) > 0 {
		fmt.Fprintln(w, "== errors")
		for _, err := range failures {
			fmt.Fprintln(w, err)
		}
	}
}
