// Package render writes a dependency graph and reverse-dependency answers in
// the output formats of the CLI: a plain text listing, Graphviz DOT and JSON.
package render
