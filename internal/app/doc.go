// Package app contains the core application logic. It wires the configuration,
// the metadata source, the graph builder and the renderers into one run,
// decoupled from any specific entrypoint like a CLI.
package app
