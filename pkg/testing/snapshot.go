package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-drift/vdom/pkg/dom"
)

// UpdateSnapshotsEnv names the environment variable that makes MatchesFile
// rewrite golden files instead of comparing against them.
const UpdateSnapshotsEnv = "VDOM_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the host tree structure and the owning components.
type Snapshot struct {
	Tree *SnapshotNode `json:"tree"`
	HTML string        `json:"html"`
}

// SnapshotNode represents a node in the serialized host tree.
type SnapshotNode struct {
	ID        string            `json:"id"`
	Tag       string            `json:"tag,omitempty"`
	Text      string            `json:"text,omitempty"`
	Owner     string            `json:"owner,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Listeners []string          `json:"listeners,omitempty"`
	Children  []*SnapshotNode   `json:"children,omitempty"`
}

// CaptureSnapshot captures the current host tree.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{HTML: t.HTML()}
	if t.node != nil {
		counter := &typeCounter{}
		snap.Tree = t.captureNode(t.node, counter)
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When VDOM_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "div#0", "div#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(name string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[name]
	c.counts[name] = n + 1
	return fmt.Sprintf("%s#%d", name, n)
}

func (t *Tester) captureNode(n dom.Node, counter *typeCounter) *SnapshotNode {
	node := &SnapshotNode{ID: counter.next(n.NodeName())}
	if owner := t.renderer.OwnerOf(n); owner != nil {
		node.Owner = owner.Type().Name
	}

	switch v := n.(type) {
	case dom.Text:
		node.Text = v.Text()
		return node
	case *dom.MemElement:
		node.Tag = v.NodeName()
		for _, a := range v.Attributes() {
			if a.Namespace == "" && a.Name == "style" {
				continue
			}
			if node.Attrs == nil {
				node.Attrs = make(map[string]string)
			}
			name := a.Name
			if a.Namespace == dom.XLinkNamespace {
				name = "xlink:" + name
			}
			node.Attrs[name] = a.Value
		}
		if css := v.InlineStyle(); css != "" {
			if node.Attrs == nil {
				node.Attrs = make(map[string]string)
			}
			node.Attrs["style"] = css
		}
		var types []string
		for typ := range v.Data().Listeners {
			types = append(types, typ)
		}
		slices.Sort(types)
		for _, typ := range types {
			if v.Data().Listeners[typ] != nil {
				node.Listeners = append(node.Listeners, typ)
			}
		}
	default:
		node.Tag = n.NodeName()
	}

	for _, child := range n.ChildNodes() {
		node.Children = append(node.Children, t.captureNode(child, counter))
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
