package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/depviz/internal/graph"
	"github.com/specialistvlad/depviz/internal/nodeid"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatDOT, FormatJSON}

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	switch f {
	case FormatText, FormatDOT, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q, allowed values: text, dot, json", name)
	}
}

// Graph writes g in the given format.
func Graph(w io.Writer, format Format, g *graph.Graph, root nodeid.Identity) error {
	switch format {
	case FormatText:
		return Text(w, g, root)
	case FormatDOT:
		return DOT(w, g, root)
	case FormatJSON:
		return JSON(w, g, root)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text writes one block per node with sorted keys, each dependency on its
// own line in declaration order.
func Text(w io.Writer, g *graph.Graph, root nodeid.Identity) error {
	st := newStyles(w)
	var b strings.Builder

	fmt.Fprintln(&b, st.title(fmt.Sprintf("Dependency graph of %s (%d packages, %d edges)", root, g.Len(), g.EdgeCount())))
	for _, key := range g.SortedKeys() {
		deps, _ := g.Deps(key)
		b.WriteString(key)
		b.WriteByte('\n')
		if len(deps) == 0 {
			fmt.Fprintf(&b, "  %s\n", st.note("(no dependencies)"))
			continue
		}
		for _, dep := range deps {
			fmt.Fprintf(&b, "  -> %s\n", dep)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DOT writes g as a Graphviz digraph.
func DOT(w io.Writer, g *graph.Graph, root nodeid.Identity) error {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", strconv.Quote(root.String()))
	b.WriteString("  node [shape=box];\n")
	for _, key := range g.SortedKeys() {
		fmt.Fprintf(&b, "  %s;\n", strconv.Quote(key))
		deps, _ := g.Deps(key)
		for _, dep := range deps {
			fmt.Fprintf(&b, "  %s -> %s;\n", strconv.Quote(key), strconv.Quote(dep.String()))
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonGraph struct {
	Root  string     `json:"root"`
	Nodes []jsonNode `json:"nodes"`
}

type jsonNode struct {
	ID           string        `json:"id"`
	Dependencies []nodeid.Spec `json:"dependencies"`
}

// JSON writes g as an indented JSON document with nodes sorted by id.
func JSON(w io.Writer, g *graph.Graph, root nodeid.Identity) error {
	doc := jsonGraph{Root: root.String(), Nodes: make([]jsonNode, 0, g.Len())}
	for _, key := range g.SortedKeys() {
		deps, _ := g.Deps(key)
		if deps == nil {
			deps = []nodeid.Spec{}
		}
		doc.Nodes = append(doc.Nodes, jsonNode{ID: key, Dependencies: deps})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// Reverse writes the packages depending on target, sorted by key.
func Reverse(w io.Writer, target nodeid.Identity, dependers []nodeid.Identity) error {
	st := newStyles(w)
	dependers = slices.Clone(dependers)
	slices.SortFunc(dependers, func(a, b nodeid.Identity) int {
		return strings.Compare(a.String(), b.String())
	})
	var b strings.Builder

	if len(dependers) == 0 {
		fmt.Fprintln(&b, st.note(fmt.Sprintf("no packages depend on %s", target)))
	} else {
		fmt.Fprintln(&b, st.title(fmt.Sprintf("Packages depending on %s (%d)", target, len(dependers))))
		for _, d := range dependers {
			fmt.Fprintf(&b, "  <- %s\n", d)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
