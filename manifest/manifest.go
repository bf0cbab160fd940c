package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/scopedreg/dom"
	"gopkg.in/yaml.v3"
)

// GlobalRegistry is the name of the document's registry in a manifest.
const GlobalRegistry = "global"

// ErrInvalidManifest is returned for manifests which cannot be applied.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is a set of registries and mount points.
type Manifest struct {
	Registries []RegistrySpec `yaml:"registries"`
	Mounts     []Mount        `yaml:"mounts"`
}

// RegistrySpec describes a registry and its components.
type RegistrySpec struct {
	Name       string      `yaml:"name"`
	Redefine   bool        `yaml:"redefine"`
	Components []Component `yaml:"components"`
}

// Component describes a custom element class.
type Component struct {
	Tag      string   `yaml:"tag"`
	Class    string   `yaml:"class"`
	Observed []string `yaml:"observed"`
	Shadow   *Shadow  `yaml:"shadow"`
}

// Shadow describes a shadow tree to render.
type Shadow struct {
	Mode     string `yaml:"mode"`
	Registry string `yaml:"registry"` // empty for the document's registry
	Styles   string `yaml:"styles"`
	Template string `yaml:"template"`
}

// Mount renders a shadow tree into every element matching Selector.
type Mount struct {
	Selector string `yaml:"selector"`
	Shadow   `yaml:",inline"`
}

// Load reads a manifest. Unknown keys are errors.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	m := &Manifest{}
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads a manifest from a file.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks names, registry references and selectors.
func (m *Manifest) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidManifest}, args...)...))
	}
	names := map[string]bool{GlobalRegistry: true}
	for _, rs := range m.Registries {
		if rs.Name == "" {
			invalid("registry without name")
			continue
		}
		if names[rs.Name] && rs.Name != GlobalRegistry {
			invalid("registry %q declared twice", rs.Name)
		}
		names[rs.Name] = true
	}
	checkShadow := func(where string, sh *Shadow) {
		if sh == nil {
			return
		}
		if sh.Registry != "" && !names[sh.Registry] {
			invalid("%s: unknown registry %q", where, sh.Registry)
		}
		if sh.Mode != "" && sh.Mode != "open" && sh.Mode != "closed" {
			invalid("%s: shadow mode %q", where, sh.Mode)
		}
		if sh.Styles != "" {
			if _, err := ParseStyles(sh.Styles); err != nil {
				invalid("%s: %v", where, err)
			}
		}
	}
	for _, rs := range m.Registries {
		for _, c := range rs.Components {
			if !dom.ValidCustomElementName(strings.ToLower(c.Tag)) {
				invalid("registry %q: %q is not a valid custom element name", rs.Name, c.Tag)
			}
			checkShadow("<"+c.Tag+">", c.Shadow)
		}
	}
	for i, mnt := range m.Mounts {
		if _, err := cascadia.Compile(mnt.Selector); err != nil {
			invalid("mount #%d: selector %q: %v", i, mnt.Selector, err)
		}
		checkShadow(fmt.Sprintf("mount #%d", i), &mnt.Shadow)
	}
	return errors.Join(errs...)
}
