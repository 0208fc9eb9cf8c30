package loader

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/vdom/pkg/errors"
)

// SupportedMajor is the document format major version this package reads.
const SupportedMajor = "v1"

// Document is a decoded description document.
type Document struct {
	Version    string               `yaml:"version"`
	Components map[string]*Template `yaml:"components,omitempty"`
	Root       *Node                `yaml:"root"`
}

// Template defines a component whose output is a node tree.
type Template struct {
	Defaults map[string]any `yaml:"defaults,omitempty"`
	Render   *Node          `yaml:"render"`
}

// Node is one entry of a document tree.
type Node struct {
	Tag       string         `yaml:"tag,omitempty"`
	Component string         `yaml:"component,omitempty"`
	Text      *string        `yaml:"text,omitempty"`
	Slot      bool           `yaml:"slot,omitempty"`
	Key       any            `yaml:"key,omitempty"`
	Props     map[string]any `yaml:"props,omitempty"`
	Children  []*Node        `yaml:"children,omitempty"`
}

// Decode reads a document from r and validates its version and shape.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, invalid("empty document")
		}
		return nil, &errors.Error{Op: "loader.Decode", Kind: errors.KindConfig, Err: fmt.Errorf("failed to parse document: %w", err)}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks the version and that every node has exactly one kind.
func (d *Document) Validate() error {
	if !semver.IsValid(d.Version) {
		return invalid("version %q is not a semantic version", d.Version)
	}
	if major := semver.Major(d.Version); major != SupportedMajor {
		return invalid("version %s is not supported (want %s.x)", d.Version, SupportedMajor)
	}
	if d.Root == nil {
		return invalid("document has no root")
	}
	for name, tmpl := range d.Components {
		if tmpl == nil || tmpl.Render == nil {
			return invalid("component %s has no render node", name)
		}
		if err := tmpl.Render.validate("components."+name, true); err != nil {
			return err
		}
	}
	return d.Root.validate("root", false)
}

func (n *Node) validate(path string, inTemplate bool) error {
	if n == nil {
		return invalid("%s: empty node", path)
	}
	kinds := 0
	for _, set := range []bool{n.Tag != "", n.Component != "", n.Text != nil, n.Slot} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return invalid("%s: node must set exactly one of tag, component, text or slot", path)
	}
	if n.Slot && !inTemplate {
		return invalid("%s: slot is only valid inside a component template", path)
	}
	if (n.Text != nil || n.Slot) && (len(n.Props) > 0 || len(n.Children) > 0) {
		return invalid("%s: text and slot nodes take no props or children", path)
	}
	for i, child := range n.Children {
		if err := child.validate(fmt.Sprintf("%s.children[%d]", path, i), inTemplate); err != nil {
			return err
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return &errors.Error{Op: "loader.Validate", Kind: errors.KindConfig, Err: fmt.Errorf(format, args...)}
}
