/*
Command scopedreg applies a component manifest to an HTML page and prints
the resulting document, including shadow trees, annotated with the
registry every custom element has been upgraded by.

	scopedreg inspect page.html --manifest components.yaml
	scopedreg inspect page.html --manifest components.yaml --dot | dot -Tsvg > page.svg
	scopedreg validate components.yaml

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
