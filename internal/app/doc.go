// Package app contains the core application logic. It wires the capability
// registry, the descriptor catalogs and the artifact factory together, and
// owns the long-running display server, decoupled from any specific
// entrypoint like a CLI.
package app
